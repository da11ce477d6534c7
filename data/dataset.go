package data

import (
	"sort"

	"github.com/skn123/GenSVM/errors"
)

// Dataset holds a feature matrix with optional labels. Exactly one of X and
// Sparse is set at any time: X is a dense row-major n*m matrix, Sparse is the
// CSR form of the same shape. Y is nil for unlabeled test data.
type Dataset struct {
	X      []float64
	Sparse *CSR

	Y []int

	// N is the number of samples, M the number of features.
	N int
	M int

	// Classes is the number of distinct labels, set by CheckLabels for
	// training data.
	Classes int
}

// IsSparse reports whether the dataset currently holds its features in CSR
// form.
func (d *Dataset) IsSparse() bool {
	return d.Sparse != nil
}

// At returns feature j of sample i.
func (d *Dataset) At(i, j int) float64 {
	if d.Sparse != nil {
		return d.Sparse.At(i, j)
	}
	return d.X[i*d.M+j]
}

// Row returns the dense feature row of sample i. For sparse datasets the row
// is materialized into a fresh slice.
func (d *Dataset) Row(i int) []float64 {
	if d.Sparse != nil {
		row := make([]float64, d.M)
		d.Sparse.scatterRow(i, row)
		return row
	}
	return d.X[i*d.M : (i+1)*d.M]
}

// Rows returns all feature rows. Dense rows are views into X; sparse rows
// are materialized.
func (d *Dataset) Rows() [][]float64 {
	rows := make([][]float64, d.N)
	for i := range rows {
		rows[i] = d.Row(i)
	}
	return rows
}

// ToDense materializes a sparse dataset into its dense form, releasing the
// CSR representation. It is a no-op for datasets that are already dense.
func (d *Dataset) ToDense() {
	if d.Sparse == nil {
		return
	}
	d.X = d.Sparse.Dense()
	d.Sparse = nil
}

// WidenTo grows the feature dimension to m by appending zero-valued
// features. Readers size M by the widest row they see, so a test file that
// never mentions the training data's highest feature comes in narrower than
// the model expects. Widening past what a model was trained on is not
// possible, so asking to shrink is an error.
func (d *Dataset) WidenTo(m int) error {
	if m < d.M {
		return errors.Errorf("dataset has %d features, more than the %d supported", d.M, m)
	}
	if m == d.M {
		return nil
	}
	if d.Sparse != nil {
		d.Sparse.Cols = m
	} else {
		x := make([]float64, d.N*m)
		for i := 0; i < d.N; i++ {
			copy(x[i*m:i*m+d.M], d.X[i*d.M:(i+1)*d.M])
		}
		d.X = x
	}
	d.M = m
	return nil
}

// CheckLabels verifies that the labels are contiguous positive integers
// starting at 1 and records the class count. Training data with gaps in its
// label set cannot be used: the simplex coding indexes classes densely.
func (d *Dataset) CheckLabels() error {
	if d.Y == nil {
		return errors.Errorf("dataset has no labels")
	}
	seen := make(map[int]bool)
	for _, y := range d.Y {
		if y < 1 {
			return errors.Errorf("class label %d out of range: labels must start from 1", y)
		}
		seen[y] = true
	}
	labels := make([]int, 0, len(seen))
	for y := range seen {
		labels = append(labels, y)
	}
	sort.Ints(labels)
	for i, y := range labels {
		if y != i+1 {
			return errors.Errorf("class labels should start from 1 and have no gaps, got label set %v", labels)
		}
	}
	d.Classes = len(labels)
	return nil
}
