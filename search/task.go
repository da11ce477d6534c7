package search

import (
	"github.com/skn123/GenSVM/train"
)

// Mode selects how a task's performance is estimated.
type Mode int

const (
	// CrossValidation estimates performance by k-fold cross validation on
	// the training set.
	CrossValidation Mode = iota
	// TrainTest trains on the full training set and scores on the test
	// set.
	TrainTest
)

func (m Mode) String() string {
	if m == TrainTest {
		return "train/test"
	}
	return "cross-validation"
}

// Task is one fully resolved hyperparameter combination in a search. The
// descriptor fields are fixed at expansion time; the result slot is written
// exactly once by the evaluator.
type Task struct {
	ID     int
	Params train.Params
	Mode   Mode
	Folds  int

	// result slot
	Performance float64
	Model       *train.Model

	done bool
}

// Done reports whether the task has been evaluated.
func (t *Task) Done() bool {
	return t.done
}

// Queue is the ordered set of tasks of one search run. Order is the
// enumeration order of the grid expansion and determines both ID assignment
// and tie-breaking.
type Queue struct {
	Tasks []*Task
}

// Len returns the number of tasks.
func (q *Queue) Len() int {
	return len(q.Tasks)
}

// Best returns the task with the greatest performance score. Ties resolve to
// the earliest task in queue order.
func (q *Queue) Best() *Task {
	var best *Task
	maxPerf := -1.0
	for _, t := range q.Tasks {
		if t.Performance > maxPerf {
			maxPerf = t.Performance
			best = t
		}
	}
	return best
}

// ByID returns the task with the given ID, or nil.
func (q *Queue) ByID(id int) *Task {
	for _, t := range q.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
