package main

import (
	"fmt"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"

	"github.com/skn123/GenSVM/data"
	"github.com/skn123/GenSVM/diag"
	"github.com/skn123/GenSVM/grid"
	"github.com/skn123/GenSVM/search"
	"github.com/skn123/GenSVM/train"
)

type args struct {
	GridFile string `arg:"positional,required" help:"file describing the parameter grid and search options"`
	Output   string `arg:"-o,--output" help:"write predictions of test data to file (stdout if not provided)"`
	Quiet    bool   `arg:"-q,--quiet" help:"quiet mode (no progress output, not even errors)"`
	LibSVM   bool   `arg:"-x,--libsvm" help:"data files are in LibSVM/SVMlight format"`
	Seed     int64  `arg:"-z,--seed" help:"seed for the random number generator"`
	Workers  int    `arg:"--workers" help:"number of concurrent trainings (1 = sequential)"`
	Skip     bool   `arg:"--skip-failures" help:"skip tasks whose training fails instead of aborting"`
}

func (args) Description() string {
	return "gensvmgrid runs a hyperparameter grid search for a multiclass classifier"
}

func main() {
	a := args{
		Seed:    time.Now().Unix(),
		Workers: 1,
	}
	arg.MustParse(&a)

	log := diag.Basic
	if a.Quiet {
		log = diag.Quiet
	}

	log.Notef("reading grid file")
	g, err := grid.ReadFile(a.GridFile, log)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := g.Validate(); err != nil {
		log.Fatalf("invalid grid file %s:\n%v", a.GridFile, err)
	}

	readData := data.ReadDense
	if a.LibSVM {
		readData = data.ReadLibSVM
	}

	log.Notef("reading data from %s", g.TrainFile)
	trainSet, err := readData(g.TrainFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := trainSet.CheckLabels(); err != nil {
		log.Fatalf("%v", err)
	}

	var testSet *data.Dataset
	if g.TestFile != "" {
		log.Notef("reading data from %s", g.TestFile)
		testSet, err = readData(g.TestFile)
		if err != nil {
			log.Fatalf("%v", err)
		}
		// the readers size the feature dimension per file
		if err := testSet.WidenTo(trainSet.M); err != nil {
			log.Fatalf("test data %s does not match the training data: %v", g.TestFile, err)
		}
	}

	// sparse feature matrices only work with the linear kernel
	if trainSet.IsSparse() && g.Kernel.UsesGamma() {
		log.Warnf("sparse matrices with nonlinear kernels are not supported, using a dense matrix")
		trainSet.ToDense()
	}

	policy := search.FailFast
	if a.Skip {
		policy = search.SkipWithPenalty
	}
	ev := &search.Evaluator{
		Trainer: train.NewGradTrainer(),
		Log:     log,
		Workers: a.Workers,
		Policy:  policy,
	}

	log.Notef("creating queue")
	q := search.Expand(g, testSet != nil)
	if err := ev.Run(q, trainSet, testSet, a.Seed); err != nil {
		log.Fatalf("%v", err)
	}

	sel := &search.Selector{Eval: ev, Log: log}
	bestID, err := sel.SelectBest(g, q, trainSet, testSet, a.Seed)
	if err != nil {
		log.Fatalf("%v", err)
	}
	best := q.ByID(bestID)
	log.Notef("best task: %d (%s)", bestID, best.Params.Key())

	if testSet == nil {
		log.Notef("done")
		return
	}

	res, err := search.Finalize(best, trainSet, testSet, ev.Trainer, log, a.Seed)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if a.Output != "" {
		f, err := os.Create(a.Output)
		if err != nil {
			log.Fatalf("error opening output file %s: %v", a.Output, err)
		}
		if err := search.WriteLabels(f, res.Predictions); err != nil {
			f.Close()
			log.Fatalf("%v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("%v", err)
		}
		log.Notef("prediction written to: %s", a.Output)
	} else {
		for i, y := range res.Predictions {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(y)
		}
		fmt.Println()
	}
	log.Notef("done")
}
