package train

import (
	"math"
	"math/rand"

	"github.com/skn123/GenSVM/errors"
)

// Model is a fitted simplex-encoded multiclass classifier. V holds the
// augmented coefficient matrix: row 0 is the translation vector, rows 1..m
// the feature weights, each row of width Classes-1. For non-linear kernels
// Basis retains the training rows so test samples can be mapped through the
// same empirical kernel map.
type Model struct {
	Params

	Classes  int
	Features int
	V        []float64

	Basis [][]float64
}

func newModel(p Params, classes, features int) *Model {
	return &Model{
		Params:   p,
		Classes:  classes,
		Features: features,
		V:        make([]float64, (features+1)*(classes-1)),
	}
}

// huber evaluates the Huber-smoothed hinge loss and its derivative at q.
func huber(q, kappa float64) (h, dh float64) {
	switch {
	case q <= -kappa:
		return 1.0 - q - (kappa+1.0)/2.0, -1.0
	case q <= 1.0:
		d := 1.0 - q
		return d * d / (2.0 * (kappa + 1.0)), -d / (kappa + 1.0)
	default:
		return 0, 0
	}
}

// classWeights returns the per-class instance weights for the configured
// weighting scheme: unit weights, or group-size weights n/(n_k*K) which
// upweight small classes.
func classWeights(idx int, y []int, classes int) []float64 {
	rho := make([]float64, classes)
	if idx != 2 {
		for k := range rho {
			rho[k] = 1.0
		}
		return rho
	}
	counts := make([]int, classes)
	for _, yi := range y {
		counts[yi-1]++
	}
	n := float64(len(y))
	for k := range rho {
		if counts[k] > 0 {
			rho[k] = n / (float64(counts[k]) * float64(classes))
		}
	}
	return rho
}

// fit trains the model on the given feature rows and 1-based labels with
// gradient descent on the regularized loss. The step size adapts by
// backtracking; iteration stops when the relative loss decrease falls below
// Epsilon or maxIter is reached. rows must already be kernel-mapped for
// non-linear kernels.
func (m *Model) fit(rows [][]float64, y []int, rng *rand.Rand, maxIter int) error {
	n := len(rows)
	if n == 0 {
		return errors.Errorf("cannot train on empty dataset")
	}
	kk := m.Classes - 1
	if kk < 1 {
		return errors.Errorf("need at least 2 classes, got %d", m.Classes)
	}

	// small random start so repeated runs explore different optima
	for i := range m.V {
		m.V[i] = (rng.Float64()*2.0 - 1.0) * 1e-2
	}

	u := simplex(m.Classes)
	rho := classWeights(m.WeightIdx, y, m.Classes)

	grad := make([]float64, len(m.V))
	trial := make([]float64, len(m.V))

	loss := m.lossAndGrad(rows, y, u, rho, grad)
	eta := 0.1
	for iter := 0; iter < maxIter; iter++ {
		var next float64
		for {
			for i := range trial {
				trial[i] = m.V[i] - eta*grad[i]
			}
			next = m.loss(rows, y, u, rho, trial)
			if next <= loss {
				break
			}
			if eta < 1e-14 {
				// no descent direction left at this scale
				return nil
			}
			eta /= 2.0
		}
		copy(m.V, trial)

		if loss > 0 && (loss-next)/loss < m.Epsilon {
			break
		}
		eta *= 1.05
		loss = m.lossAndGrad(rows, y, u, rho, grad)
	}
	return nil
}

// scores computes z'V for the augmented row z = [1 x].
func scoresFor(v []float64, x []float64, kk int, out []float64) {
	for c := 0; c < kk; c++ {
		out[c] = v[c]
	}
	for j, xj := range x {
		if xj == 0 {
			continue
		}
		base := (j + 1) * kk
		for c := 0; c < kk; c++ {
			out[c] += xj * v[base+c]
		}
	}
}

func (m *Model) loss(rows [][]float64, y []int, u [][]float64, rho []float64, v []float64) float64 {
	return m.eval(rows, y, u, rho, v, nil)
}

func (m *Model) lossAndGrad(rows [][]float64, y []int, u [][]float64, rho []float64, grad []float64) float64 {
	return m.eval(rows, y, u, rho, m.V, grad)
}

// eval computes the regularized loss at v and, when grad is non-nil, the
// gradient into grad.
func (m *Model) eval(rows [][]float64, y []int, u [][]float64, rho []float64, v []float64, grad []float64) float64 {
	n := len(rows)
	kk := m.Classes - 1
	if grad != nil {
		for i := range grad {
			grad[i] = 0
		}
	}

	s := make([]float64, kk)
	hs := make([]float64, m.Classes)
	dhs := make([]float64, m.Classes)

	var total float64
	for i, x := range rows {
		yi := y[i] - 1
		scoresFor(v, x, kk, s)

		var a float64
		for j := 0; j < m.Classes; j++ {
			if j == yi {
				continue
			}
			var q float64
			for c := 0; c < kk; c++ {
				q += s[c] * (u[yi][c] - u[j][c])
			}
			hs[j], dhs[j] = huber(q, m.Kappa)
			a += math.Pow(hs[j], m.P)
		}
		if a <= 0 {
			continue
		}
		total += rho[yi] * math.Pow(a, 1.0/m.P)

		if grad == nil {
			continue
		}
		coefA := math.Pow(a, 1.0/m.P-1.0)
		for j := 0; j < m.Classes; j++ {
			if j == yi || hs[j] <= 0 {
				continue
			}
			w := rho[yi] / float64(n) * coefA * math.Pow(hs[j], m.P-1.0) * dhs[j]
			for c := 0; c < kk; c++ {
				d := w * (u[yi][c] - u[j][c])
				grad[c] += d
				for k, xk := range x {
					if xk != 0 {
						grad[(k+1)*kk+c] += d * xk
					}
				}
			}
		}
	}
	total /= float64(n)

	// lambda penalty on the weight rows, not the translation
	var pen float64
	for r := 1; r <= m.Features; r++ {
		for c := 0; c < kk; c++ {
			w := v[r*kk+c]
			pen += w * w
			if grad != nil {
				grad[r*kk+c] += 2.0 * m.Lambda * w
			}
		}
	}
	return total + m.Lambda*pen
}

// Predict returns the 1-based label of each raw feature row: the class whose
// simplex vertex is nearest to the sample's projection. Rows are passed
// through the kernel map when the model was trained with one.
func (m *Model) Predict(rows [][]float64) []int {
	if m.Basis != nil {
		rows = kernelMap(m.Params, rows, m.Basis)
	}
	kk := m.Classes - 1
	u := simplex(m.Classes)
	s := make([]float64, kk)

	out := make([]int, len(rows))
	for i, x := range rows {
		scoresFor(m.V, x, kk, s)
		best, bestDist := 0, math.Inf(1)
		for j := 0; j < m.Classes; j++ {
			var d float64
			for c := 0; c < kk; c++ {
				diff := s[c] - u[j][c]
				d += diff * diff
			}
			if d < bestDist {
				best, bestDist = j, d
			}
		}
		out[i] = best + 1
	}
	return out
}
