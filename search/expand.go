package search

import (
	"github.com/skn123/GenSVM/grid"
	"github.com/skn123/GenSVM/train"
)

// Default kernel parameters, used when an applicable parameter has no values
// in the grid file and for parameters the chosen kernel ignores.
const (
	defaultGamma  = 1.0
	defaultCoef   = 0.0
	defaultDegree = 2.0
)

// Expand enumerates the cross product of the grid's hyperparameter values
// into a queue of tasks. The enumeration order is fixed: lambda varies
// slowest, then kappa, p, weight, epsilon, gamma, coef, and degree fastest.
// Task IDs are assigned densely from 0 in this order; the order is
// load-bearing for tie-breaking and for matching configurations across
// consistency repeats.
//
// Kernel parameters that do not apply to the chosen kernel contribute a
// single default element to the product, never zero.
func Expand(g *grid.Grid, hasTest bool) *Queue {
	mode := CrossValidation
	if hasTest {
		mode = TrainTest
	}

	gammas := applicableOr(g.Gammas, g.Kernel.UsesGamma(), defaultGamma)
	coefs := applicableOr(g.Coefs, g.Kernel.UsesCoef(), defaultCoef)
	degrees := applicableOr(g.Degrees, g.Kernel.UsesDegree(), defaultDegree)

	q := &Queue{}
	id := 0
	for _, lambda := range g.Lambdas {
		for _, kappa := range g.Kappas {
			for _, p := range g.Ps {
				for _, w := range g.WeightIdxs {
					for _, eps := range g.Epsilons {
						for _, gamma := range gammas {
							for _, coef := range coefs {
								for _, degree := range degrees {
									q.Tasks = append(q.Tasks, &Task{
										ID: id,
										Params: train.Params{
											P:         p,
											Lambda:    lambda,
											Kappa:     kappa,
											Epsilon:   eps,
											WeightIdx: w,
											Kernel:    g.Kernel,
											Gamma:     gamma,
											Coef:      coef,
											Degree:    degree,
										},
										Mode:  mode,
										Folds: g.Folds,
									})
									id++
								}
							}
						}
					}
				}
			}
		}
	}
	return q
}

func applicableOr(vals []float64, applicable bool, def float64) []float64 {
	if !applicable || len(vals) == 0 {
		return []float64{def}
	}
	return vals
}
