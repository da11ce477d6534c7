package search

import (
	"math/rand"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/skn123/GenSVM/data"
	"github.com/skn123/GenSVM/diag"
	"github.com/skn123/GenSVM/errors"
	"github.com/skn123/GenSVM/train"
	"github.com/skn123/GenSVM/workerpool"
)

// FailurePolicy controls what the evaluator does when training one task
// fails.
type FailurePolicy int

const (
	// FailFast aborts the whole run on the first trainer failure.
	FailFast FailurePolicy = iota
	// SkipWithPenalty records a penalty score for the failed task and
	// continues with the rest of the grid.
	SkipWithPenalty
)

// PenaltyScore is recorded for tasks skipped under SkipWithPenalty. It is
// below any attainable hit rate, so a skipped task can never be selected.
const PenaltyScore = -1.0

// Evaluator trains every task in a queue and writes the resulting score and
// model back onto the task.
type Evaluator struct {
	Trainer train.Trainer
	Log     diag.Interface

	// Workers sets the number of concurrent trainings; values below 2
	// evaluate sequentially in queue order.
	Workers int

	Policy FailurePolicy
}

// taskSeed derives the seed of a task's private random stream. Giving every
// task its own stream keeps results identical between the sequential and the
// parallel path.
func taskSeed(runSeed int64, id int) int64 {
	return runSeed + int64(id)*0x9e3779b9
}

// Run evaluates every task in q against the datasets. Each task is evaluated
// exactly once; tasks already done are skipped.
func (e *Evaluator) Run(q *Queue, trainSet, testSet *data.Dataset, runSeed int64) error {
	start := time.Now()
	e.Log.Notef("starting training of %s tasks", humanize.Comma(int64(q.Len())))

	var err error
	if e.Workers > 1 {
		err = e.runParallel(q, trainSet, testSet, runSeed)
	} else {
		err = e.runSequential(q, trainSet, testSet, runSeed)
	}
	if err != nil {
		return err
	}

	e.Log.Notef("training finished in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func (e *Evaluator) runSequential(q *Queue, trainSet, testSet *data.Dataset, runSeed int64) error {
	for _, t := range q.Tasks {
		if err := e.evalTask(t, trainSet, testSet, runSeed, q.Len()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) runParallel(q *Queue, trainSet, testSet *data.Dataset, runSeed int64) error {
	pool := workerpool.New(e.Workers)
	defer pool.Stop()

	jobs := make([]workerpool.Job, 0, q.Len())
	for _, t := range q.Tasks {
		t := t
		jobs = append(jobs, func() error {
			return e.evalTask(t, trainSet, testSet, runSeed, q.Len())
		})
	}
	pool.Add(jobs)
	return pool.Wait()
}

func (e *Evaluator) evalTask(t *Task, trainSet, testSet *data.Dataset, runSeed int64, total int) error {
	if t.done {
		return nil
	}
	rng := rand.New(rand.NewSource(taskSeed(runSeed, t.ID)))
	start := time.Now()

	var err error
	switch t.Mode {
	case TrainTest:
		t.Model, t.Performance, err = e.Trainer.TrainTest(t.Params, trainSet, testSet, rng)
	default:
		t.Performance, err = e.Trainer.CrossValidate(t.Params, trainSet, t.Folds, rng)
	}

	if err != nil {
		if e.Policy == SkipWithPenalty {
			e.Log.Warnf("task %d failed, continuing with penalty score: %v", t.ID, err)
			t.Performance = PenaltyScore
			t.Model = nil
			t.done = true
			return nil
		}
		return errors.Wrapf(err, "task %d", t.ID)
	}

	t.done = true
	e.Log.Notef("(%03d/%03d)\teps = %g, p = %g, kappa = %g, lambda = %g, "+
		"gamma = %g\ttime: %s\tperf: %3.2f%%",
		t.ID+1, total, t.Params.Epsilon, t.Params.P, t.Params.Kappa,
		t.Params.Lambda, t.Params.Gamma,
		time.Since(start).Round(time.Millisecond), t.Performance)
	return nil
}
