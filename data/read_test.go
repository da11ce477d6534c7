package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const denseLabeled = `3 2
1.0 2.0 1
0.5 -1.0 2
0.0 3.5 1
`

func TestReadDenseLabeled(t *testing.T) {
	ds, err := readDense(strings.NewReader(denseLabeled))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.N)
	assert.Equal(t, 2, ds.M)
	assert.Equal(t, []int{1, 2, 1}, ds.Y)
	assert.Equal(t, []float64{1.0, 2.0, 0.5, -1.0, 0.0, 3.5}, ds.X)
}

func TestReadDenseUnlabeled(t *testing.T) {
	ds, err := readDense(strings.NewReader("2 2\n1 2\n3 4\n"))
	require.NoError(t, err)
	assert.Nil(t, ds.Y)
	assert.Equal(t, []float64{1, 2, 3, 4}, ds.X)
}

func TestReadDenseMixedRows(t *testing.T) {
	_, err := readDense(strings.NewReader("2 2\n1 2 1\n3 4\n"))
	require.Error(t, err)
}

func TestReadDenseBadFieldCount(t *testing.T) {
	_, err := readDense(strings.NewReader("1 3\n1 2\n"))
	require.Error(t, err)
}

func TestReadLibSVM(t *testing.T) {
	in := "1 1:0.5 3:2.0\n2 2:1.5\n1 1:1.0 2:1.0 3:1.0\n"
	ds, err := readLibSVM(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.N)
	assert.Equal(t, 3, ds.M)
	assert.Equal(t, []int{1, 2, 1}, ds.Y)
	require.True(t, ds.IsSparse())
	assert.Equal(t, 6, ds.Sparse.NNZ())
	assert.Equal(t, 0.5, ds.At(0, 0))
	assert.Equal(t, 0.0, ds.At(0, 1))
	assert.Equal(t, 2.0, ds.At(0, 2))
	assert.Equal(t, 1.5, ds.At(1, 1))
}

func TestReadLibSVMUnlabeled(t *testing.T) {
	ds, err := readLibSVM(strings.NewReader("1:0.5 2:1.0\n2:3.0\n"))
	require.NoError(t, err)
	assert.Nil(t, ds.Y)
	assert.Equal(t, 2, ds.N)
	assert.Equal(t, 2, ds.M)
}

func TestReadLibSVMNonIncreasingIndex(t *testing.T) {
	_, err := readLibSVM(strings.NewReader("1 2:1.0 2:2.0\n"))
	require.Error(t, err)
}

func TestToDensePreservesValues(t *testing.T) {
	ds, err := readLibSVM(strings.NewReader("1 1:0.5 3:2.0\n2 2:1.5\n"))
	require.NoError(t, err)

	want := [][]float64{{0.5, 0, 2.0}, {0, 1.5, 0}}
	ds.ToDense()
	require.False(t, ds.IsSparse())
	for i, row := range want {
		for j, v := range row {
			if ds.At(i, j) != v {
				t.Errorf("expected %f at (%d,%d), got %f", v, i, j, ds.At(i, j))
			}
		}
	}
}

func TestWidenToDense(t *testing.T) {
	ds := &Dataset{N: 2, M: 2, X: []float64{1, 2, 3, 4}}
	require.NoError(t, ds.WidenTo(3))

	assert.Equal(t, 3, ds.M)
	assert.Equal(t, []float64{1, 2, 0, 3, 4, 0}, ds.X)
	assert.Equal(t, []float64{3, 4, 0}, ds.Row(1))
}

func TestWidenToSparse(t *testing.T) {
	ds, err := readLibSVM(strings.NewReader("1 1:0.5\n2 2:1.5\n"))
	require.NoError(t, err)
	require.NoError(t, ds.WidenTo(4))

	assert.Equal(t, 4, ds.M)
	require.True(t, ds.IsSparse())
	assert.Equal(t, []float64{0.5, 0, 0, 0}, ds.Row(0))
	assert.Equal(t, 0.0, ds.At(1, 3))
}

func TestWidenToNarrower(t *testing.T) {
	ds := &Dataset{N: 1, M: 3, X: []float64{1, 2, 3}}
	require.Error(t, ds.WidenTo(2))
	require.NoError(t, ds.WidenTo(3))
	assert.Equal(t, []float64{1, 2, 3}, ds.X)
}

func TestCheckLabels(t *testing.T) {
	ds := &Dataset{N: 3, M: 1, X: []float64{0, 0, 0}, Y: []int{1, 2, 3}}
	require.NoError(t, ds.CheckLabels())
	assert.Equal(t, 3, ds.Classes)

	gap := &Dataset{N: 3, M: 1, X: []float64{0, 0, 0}, Y: []int{1, 2, 4}}
	require.Error(t, gap.CheckLabels())

	zero := &Dataset{N: 2, M: 1, X: []float64{0, 0}, Y: []int{0, 1}}
	require.Error(t, zero.CheckLabels())

	unlabeled := &Dataset{N: 2, M: 1, X: []float64{0, 0}}
	require.Error(t, unlabeled.CheckLabels())
}
