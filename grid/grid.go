package grid

import (
	"github.com/skn123/GenSVM/errors"
)

// Kernel identifies the kernel family used for every task in a search.
type Kernel int

// Supported kernel families.
const (
	Linear Kernel = iota
	Poly
	RBF
	Sigmoid
)

var kernelNames = map[Kernel]string{
	Linear:  "LINEAR",
	Poly:    "POLY",
	RBF:     "RBF",
	Sigmoid: "SIGMOID",
}

func (k Kernel) String() string {
	if s, ok := kernelNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseKernel maps a kernel token from a grid file to its Kernel.
func ParseKernel(s string) (Kernel, error) {
	for k, name := range kernelNames {
		if s == name {
			return k, nil
		}
	}
	return Linear, errors.Errorf("unknown kernel specified: %s", s)
}

// UsesGamma reports whether the gamma parameter applies to the kernel.
func (k Kernel) UsesGamma() bool { return k != Linear }

// UsesCoef reports whether the coef parameter applies to the kernel.
func (k Kernel) UsesCoef() bool { return k == Poly || k == Sigmoid }

// UsesDegree reports whether the degree parameter applies to the kernel.
func (k Kernel) UsesDegree() bool { return k == Poly }

// Grid is the parsed form of a grid file: the candidate values for every
// hyperparameter plus the global search options. A Grid is built by Read and
// consumed by the task expander.
type Grid struct {
	TrainFile string
	TestFile  string

	// Candidate values per hyperparameter. The cross product of these
	// (plus the applicable kernel parameters) is the search space.
	Ps         []float64
	Lambdas    []float64
	Kappas     []float64
	Epsilons   []float64
	WeightIdxs []int

	Kernel  Kernel
	Gammas  []float64
	Coefs   []float64
	Degrees []float64

	Folds      int
	Repeats    int
	Percentile float64
}

// Default returns a Grid with the documented default search options: 10-fold
// cross validation, no consistency repeats, 95th percentile threshold, linear
// kernel.
func Default() *Grid {
	return &Grid{
		Folds:      10,
		Percentile: 95.0,
		Kernel:     Linear,
	}
}

// Validate checks the Grid for problems that would make a search meaningless.
// All problems are reported at once.
func (g *Grid) Validate() error {
	var errs errors.Errors
	if g.TrainFile == "" {
		errs = errors.Append(errs, errors.Errorf("no training data file specified"))
	}
	if len(g.Ps) == 0 {
		errs = errors.Append(errs, errors.Errorf("no values specified for field \"p\""))
	}
	if len(g.Lambdas) == 0 {
		errs = errors.Append(errs, errors.Errorf("no values specified for field \"lambda\""))
	}
	if len(g.Kappas) == 0 {
		errs = errors.Append(errs, errors.Errorf("no values specified for field \"kappa\""))
	}
	if len(g.Epsilons) == 0 {
		errs = errors.Append(errs, errors.Errorf("no values specified for field \"epsilon\""))
	}
	if len(g.WeightIdxs) == 0 {
		errs = errors.Append(errs, errors.Errorf("no values specified for field \"weight\""))
	}
	for _, w := range g.WeightIdxs {
		if w != 1 && w != 2 {
			errs = errors.Append(errs, errors.Errorf("invalid weight specification %d, must be 1 (unit) or 2 (group size)", w))
		}
	}
	for _, p := range g.Ps {
		if p < 1.0 || p > 2.0 {
			errs = errors.Append(errs, errors.Errorf("value %g for field \"p\" outside [1.0, 2.0]", p))
		}
	}
	if g.Folds < 2 {
		errs = errors.Append(errs, errors.Errorf("field \"folds\" must be at least 2, got %d", g.Folds))
	}
	if g.Repeats < 0 {
		errs = errors.Append(errs, errors.Errorf("field \"repeats\" must be nonnegative, got %d", g.Repeats))
	}
	if g.Percentile < 0 || g.Percentile > 100 {
		errs = errors.Append(errs, errors.Errorf("field \"percentile\" must be in [0, 100], got %g", g.Percentile))
	}
	if errs == nil {
		return nil
	}
	return errs
}
