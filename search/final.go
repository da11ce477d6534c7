package search

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/skn123/GenSVM/data"
	"github.com/skn123/GenSVM/diag"
	"github.com/skn123/GenSVM/errors"
	"github.com/skn123/GenSVM/train"
)

// FinalResult holds the outcome of the final retrain-and-predict pass.
type FinalResult struct {
	Model       *train.Model
	Predictions []int

	// Performance is the test-set hit rate; valid only when Scored is
	// true (labeled test data).
	Performance float64
	Scored      bool
}

// Finalize retrains the winning task's configuration on the full training
// set and predicts labels for the test set. Sparse test data is densified
// first when the kernel is non-linear, with a warning; the conversion
// replaces the sparse form in place. Finalize itself performs no output
// beyond diagnostics; the caller decides where predictions go.
func Finalize(best *Task, trainSet, testSet *data.Dataset, tr train.Trainer, log diag.Interface, seed int64) (*FinalResult, error) {
	if best == nil {
		return nil, errors.Errorf("no winning task to finalize")
	}

	rng := rand.New(rand.NewSource(taskSeed(seed, best.ID)))
	model, err := tr.Train(best.Params, trainSet, rng)
	if err != nil {
		return nil, errors.Wrapf(err, "retraining winning task %d", best.ID)
	}

	res := &FinalResult{Model: model}
	if testSet == nil {
		return res, nil
	}

	if err := testSet.WidenTo(trainSet.M); err != nil {
		return nil, errors.Wrapf(err, "test data does not match the training data")
	}
	if testSet.IsSparse() && best.Params.Kernel.UsesGamma() {
		log.Warnf("sparse matrices with nonlinear kernels are not supported, using a dense matrix")
		testSet.ToDense()
	}

	res.Predictions = model.Predict(testSet.Rows())
	if testSet.Y != nil {
		res.Performance = train.HitRate(testSet.Y, res.Predictions)
		res.Scored = true
		log.Notef("predictive performance: %3.2f%%", res.Performance)
	}
	return res, nil
}

// WriteLabels writes one predicted label per line.
func WriteLabels(w io.Writer, labels []int) error {
	bw := bufio.NewWriter(w)
	for _, y := range labels {
		if _, err := fmt.Fprintln(bw, y); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WrapfOrNil(bw.Flush(), "flushing predictions")
}
