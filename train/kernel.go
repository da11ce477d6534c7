package train

import (
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/skn123/GenSVM/grid"
)

// kernelValue evaluates the kernel function on a pair of feature vectors.
func kernelValue(p Params, x, y []float64) float64 {
	switch p.Kernel {
	case grid.Poly:
		return math.Pow(p.Gamma*dot(x, y)+p.Coef, p.Degree)
	case grid.RBF:
		var d float64
		for i := range x {
			diff := x[i] - y[i]
			d += diff * diff
		}
		return math.Exp(-p.Gamma * d)
	case grid.Sigmoid:
		return math.Tanh(p.Gamma*dot(x, y) + p.Coef)
	default:
		return dot(x, y)
	}
}

func dot(x, y []float64) float64 {
	var s float64
	for i := range x {
		s += x[i] * y[i]
	}
	return s
}

// kernelMap computes the empirical kernel map of rows against basis: row i of
// the result is [k(rows[i], basis[0]), ..., k(rows[i], basis[n-1])]. During
// training rows == basis and the result is the full kernel matrix; at
// prediction time rows are the test samples.
func kernelMap(p Params, rows, basis [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(basis))
		for j, b := range basis {
			out[i][j] = kernelValue(p, r, b)
		}
	}
	return out
}

// KernelCache caches training-side kernel matrices across tasks. Within one
// search run every task shares the same training set, so the cache is keyed
// by the kernel parameters alone; tasks differing only in loss
// hyperparameters hit the same entry. A cache must not be reused across
// different training sets.
type KernelCache struct {
	cache *lru.Cache
}

// NewKernelCache creates a cache holding up to size kernel matrices.
func NewKernelCache(size int) *KernelCache {
	c, err := lru.New(size)
	if err != nil {
		// lru.New only fails for a nonpositive size
		panic(err)
	}
	return &KernelCache{cache: c}
}

func (kc *KernelCache) matrix(p Params, basis [][]float64) [][]float64 {
	if kc == nil {
		return kernelMap(p, basis, basis)
	}
	key := p.kernelKey()
	if m, ok := kc.cache.Get(key); ok {
		return m.([][]float64)
	}
	m := kernelMap(p, basis, basis)
	kc.cache.Add(key, m)
	return m
}

// Len returns the number of cached matrices.
func (kc *KernelCache) Len() int {
	return kc.cache.Len()
}
