package train

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skn123/GenSVM/data"
	"github.com/skn123/GenSVM/grid"
)

func TestSimplexGeometry(t *testing.T) {
	for _, k := range []int{2, 3, 5} {
		u := simplex(k)
		require.Len(t, u, k)

		// vertices are equidistant from the origin
		norm := func(v []float64) float64 {
			var s float64
			for _, x := range v {
				s += x * x
			}
			return math.Sqrt(s)
		}
		r := norm(u[0])
		for j := 1; j < k; j++ {
			assert.InDelta(t, r, norm(u[j]), 1e-12, "vertex %d of %d-simplex", j, k)
		}

		// centroid at the origin
		for c := 0; c < k-1; c++ {
			var s float64
			for j := 0; j < k; j++ {
				s += u[j][c]
			}
			assert.InDelta(t, 0, s, 1e-12)
		}
	}
}

func TestHuberHinge(t *testing.T) {
	kappa := 0.5

	// far side of the margin: linear region
	h, dh := huber(-1.0, kappa)
	assert.InDelta(t, 1.0+1.0-(kappa+1.0)/2.0, h, 1e-12)
	assert.Equal(t, -1.0, dh)

	// inside the margin: quadratic region
	h, dh = huber(0.5, kappa)
	assert.InDelta(t, 0.25/(2.0*1.5), h, 1e-12)
	assert.InDelta(t, -0.5/1.5, dh, 1e-12)

	// beyond the margin: no loss
	h, dh = huber(2.0, kappa)
	assert.Equal(t, 0.0, h)
	assert.Equal(t, 0.0, dh)
}

func TestClassWeights(t *testing.T) {
	y := []int{1, 1, 1, 2}

	unit := classWeights(1, y, 2)
	assert.Equal(t, []float64{1, 1}, unit)

	group := classWeights(2, y, 2)
	assert.InDelta(t, 4.0/(3.0*2.0), group[0], 1e-12)
	assert.InDelta(t, 4.0/(1.0*2.0), group[1], 1e-12)
}

func TestKernelValues(t *testing.T) {
	x := []float64{1, 2}
	y := []float64{3, -1}

	lin := Params{Kernel: grid.Linear}
	assert.InDelta(t, 1.0, kernelValue(lin, x, y), 1e-12)

	poly := Params{Kernel: grid.Poly, Gamma: 2, Coef: 1, Degree: 2}
	assert.InDelta(t, 9.0, kernelValue(poly, x, y), 1e-12)

	rbf := Params{Kernel: grid.RBF, Gamma: 0.5}
	assert.InDelta(t, math.Exp(-0.5*13.0), kernelValue(rbf, x, y), 1e-12)

	sig := Params{Kernel: grid.Sigmoid, Gamma: 1, Coef: -1}
	assert.InDelta(t, math.Tanh(0.0), kernelValue(sig, x, y), 1e-12)
}

func TestKernelCacheSharesAcrossLossParams(t *testing.T) {
	basis := [][]float64{{1, 0}, {0, 1}}
	kc := NewKernelCache(4)

	a := Params{Kernel: grid.RBF, Gamma: 1.0, Lambda: 1e-6}
	b := Params{Kernel: grid.RBF, Gamma: 1.0, Lambda: 1e-2}
	c := Params{Kernel: grid.RBF, Gamma: 2.0}

	ma := kc.matrix(a, basis)
	mb := kc.matrix(b, basis)
	kc.matrix(c, basis)

	assert.Equal(t, 2, kc.Len(), "lambda must not affect the cache key")
	if &ma[0][0] != &mb[0][0] {
		t.Error("expected cache hit to return the same matrix")
	}
}

func TestParamsKeyIdentity(t *testing.T) {
	a := Params{P: 1.5, Lambda: 1e-6, Kernel: grid.RBF, Gamma: 0.1}
	b := Params{P: 1.5, Lambda: 1e-6, Kernel: grid.RBF, Gamma: 0.1}
	c := Params{P: 1.5, Lambda: 1e-5, Kernel: grid.RBF, Gamma: 0.1}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

// two well separated clusters in one dimension
func separableDataset() *data.Dataset {
	x := []float64{-2.0, -1.8, -2.2, -1.9, 2.0, 1.8, 2.2, 2.1}
	y := []int{1, 1, 1, 1, 2, 2, 2, 2}
	ds := &data.Dataset{X: x, Y: y, N: 8, M: 1}
	if err := ds.CheckLabels(); err != nil {
		panic(err)
	}
	return ds
}

func defaultParams() Params {
	return Params{P: 1.0, Lambda: 1e-6, Kappa: 0.0, Epsilon: 1e-9, WeightIdx: 1}
}

func TestTrainSeparable(t *testing.T) {
	ds := separableDataset()
	tr := NewGradTrainer()

	model, err := tr.Train(defaultParams(), ds, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	pred := model.Predict(rowsOf(ds))
	assert.Equal(t, ds.Y, pred)
}

func TestTrainDeterministic(t *testing.T) {
	ds := separableDataset()
	tr := NewGradTrainer()

	m1, err := tr.Train(defaultParams(), ds, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	m2, err := tr.Train(defaultParams(), ds, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, m1.V, m2.V)
}

func TestTrainTestScoresHeldOut(t *testing.T) {
	ds := separableDataset()
	test := &data.Dataset{X: []float64{-2.1, 1.9}, Y: []int{1, 2}, N: 2, M: 1}
	tr := NewGradTrainer()

	_, score, err := tr.TrainTest(defaultParams(), ds, test, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}

func TestTrainTestUnlabeled(t *testing.T) {
	ds := separableDataset()
	test := &data.Dataset{X: []float64{-2.1, 1.9}, N: 2, M: 1}
	tr := NewGradTrainer()

	model, score, err := tr.TrainTest(defaultParams(), ds, test, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, 0.0, score)
}

func TestCrossValidateSeparable(t *testing.T) {
	ds := separableDataset()
	tr := NewGradTrainer()

	score, err := tr.CrossValidate(defaultParams(), ds, 4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}

func TestCrossValidateRejectsSingleFold(t *testing.T) {
	ds := separableDataset()
	tr := NewGradTrainer()

	_, err := tr.CrossValidate(defaultParams(), ds, 1, rand.New(rand.NewSource(3)))
	require.Error(t, err)
}

func TestTrainRBFSeparable(t *testing.T) {
	ds := separableDataset()
	tr := NewGradTrainer()

	p := defaultParams()
	p.Kernel = grid.RBF
	p.Gamma = 0.5

	model, err := tr.Train(p, ds, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	require.NotNil(t, model.Basis, "non-linear model must retain its kernel basis")

	pred := model.Predict(rowsOf(ds))
	assert.Equal(t, ds.Y, pred)
}

func TestHitRate(t *testing.T) {
	assert.Equal(t, 50.0, HitRate([]int{1, 2, 1, 2}, []int{1, 1, 2, 2}))
	assert.Equal(t, 0.0, HitRate(nil, nil))
}
