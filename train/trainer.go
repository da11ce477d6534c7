package train

import (
	"math/rand"

	"github.com/skn123/GenSVM/data"
	"github.com/skn123/GenSVM/errors"
)

// Trainer fits one model given one hyperparameter combination and one
// dataset. Implementations must be deterministic given a fixed rng.
type Trainer interface {
	// Train fits a model on the full dataset.
	Train(p Params, ds *data.Dataset, rng *rand.Rand) (*Model, error)
	// TrainTest fits a model on the training set and returns its hit rate
	// on the test set.
	TrainTest(p Params, train, test *data.Dataset, rng *rand.Rand) (*Model, float64, error)
	// CrossValidate estimates out-of-sample performance by k-fold cross
	// validation and returns the aggregate hit rate over all folds.
	CrossValidate(p Params, ds *data.Dataset, folds int, rng *rand.Rand) (float64, error)
}

// GradTrainer trains models by gradient descent on the simplex hinge loss.
type GradTrainer struct {
	// MaxIter bounds the descent iterations per fit.
	MaxIter int
	// Cache, when set, reuses training kernel matrices across tasks that
	// share kernel parameters. It must only be used with a single
	// training set per search run.
	Cache *KernelCache
}

// NewGradTrainer returns a GradTrainer with the default iteration budget and
// a kernel cache.
func NewGradTrainer() *GradTrainer {
	return &GradTrainer{
		MaxIter: 5000,
		Cache:   NewKernelCache(32),
	}
}

func rowsOf(ds *data.Dataset) [][]float64 {
	return ds.Rows()
}

// Train implements Trainer.
func (t *GradTrainer) Train(p Params, ds *data.Dataset, rng *rand.Rand) (*Model, error) {
	if ds.Classes < 2 {
		return nil, errors.Errorf("training data must have at least 2 classes, got %d", ds.Classes)
	}
	rows := rowsOf(ds)

	var model *Model
	var feat [][]float64
	if p.Kernel.UsesGamma() {
		feat = t.Cache.matrix(p, rows)
		model = newModel(p, ds.Classes, len(rows))
		model.Basis = rows
	} else {
		feat = rows
		model = newModel(p, ds.Classes, ds.M)
	}

	if err := model.fit(feat, ds.Y, rng, t.MaxIter); err != nil {
		return nil, err
	}
	return model, nil
}

// TrainTest implements Trainer. An unlabeled test set yields a zero score.
func (t *GradTrainer) TrainTest(p Params, trainSet, testSet *data.Dataset, rng *rand.Rand) (*Model, float64, error) {
	model, err := t.Train(p, trainSet, rng)
	if err != nil {
		return nil, 0, err
	}
	if testSet.Y == nil {
		return model, 0, nil
	}
	pred := model.Predict(rowsOf(testSet))
	return model, HitRate(testSet.Y, pred), nil
}

// CrossValidate implements Trainer. Folds are assigned from a random
// permutation of the samples so fold sizes differ by at most one; the score
// is the hit rate pooled over all held-out folds.
func (t *GradTrainer) CrossValidate(p Params, ds *data.Dataset, folds int, rng *rand.Rand) (float64, error) {
	if folds < 2 {
		return 0, errors.Errorf("cross validation requires at least 2 folds, got %d", folds)
	}
	if folds > ds.N {
		folds = ds.N
	}
	if ds.Classes < 2 {
		return 0, errors.Errorf("training data must have at least 2 classes, got %d", ds.Classes)
	}

	rows := rowsOf(ds)
	perm := rng.Perm(ds.N)
	fold := make([]int, ds.N)
	for i, idx := range perm {
		fold[idx] = i % folds
	}

	var hits int
	for f := 0; f < folds; f++ {
		var trainRows, testRows [][]float64
		var trainY, testY []int
		for i := 0; i < ds.N; i++ {
			if fold[i] == f {
				testRows = append(testRows, rows[i])
				testY = append(testY, ds.Y[i])
			} else {
				trainRows = append(trainRows, rows[i])
				trainY = append(trainY, ds.Y[i])
			}
		}

		model := newModel(p, ds.Classes, len(trainRows[0]))
		feat := trainRows
		if p.Kernel.UsesGamma() {
			// fold subsets differ every repeat, so no caching here
			feat = kernelMap(p, trainRows, trainRows)
			model = newModel(p, ds.Classes, len(trainRows))
			model.Basis = trainRows
		}
		if err := model.fit(feat, trainY, rng, t.MaxIter); err != nil {
			return 0, errors.Wrapf(err, "fold %d", f)
		}

		pred := model.Predict(testRows)
		for i, y := range testY {
			if pred[i] == y {
				hits++
			}
		}
	}
	return 100.0 * float64(hits) / float64(ds.N), nil
}

// HitRate returns the percentage of predictions matching the reference
// labels.
func HitRate(y, pred []int) float64 {
	if len(y) == 0 {
		return 0
	}
	var hits int
	for i := range y {
		if pred[i] == y[i] {
			hits++
		}
	}
	return 100.0 * float64(hits) / float64(len(y))
}
