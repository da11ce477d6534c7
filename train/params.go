package train

import (
	"fmt"

	"github.com/skn123/GenSVM/grid"
)

// Params is one fully resolved hyperparameter combination. The search engine
// treats two Params with equal fields as the same configuration, independent
// of the task ID they were evaluated under.
type Params struct {
	// P is the exponent of the Lp norm aggregating the per-class hinge
	// errors, in [1.0, 2.0].
	P float64
	// Lambda is the regularization strength.
	Lambda float64
	// Kappa is the Huber hinge smoothing parameter, > -1.
	Kappa float64
	// Epsilon is the relative stopping tolerance of the solver.
	Epsilon float64
	// WeightIdx selects the per-class weighting scheme: 1 for unit
	// weights, 2 for group-size weights.
	WeightIdx int

	Kernel grid.Kernel
	Gamma  float64
	Coef   float64
	Degree float64
}

// Key returns a string identifying the configuration across search runs.
func (p Params) Key() string {
	return fmt.Sprintf("p=%g,l=%g,k=%g,e=%g,w=%d,kern=%s,g=%g,c=%g,d=%g",
		p.P, p.Lambda, p.Kappa, p.Epsilon, p.WeightIdx,
		p.Kernel, p.Gamma, p.Coef, p.Degree)
}

// kernelKey identifies the kernel portion of the parameters, used for kernel
// matrix caching: tasks that differ only in loss hyperparameters share the
// same kernel matrix.
func (p Params) kernelKey() string {
	return fmt.Sprintf("%s,g=%g,c=%g,d=%g", p.Kernel, p.Gamma, p.Coef, p.Degree)
}
