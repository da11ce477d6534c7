package workerpool

import (
	"sync"
)

// Job is a unit of work submitted to a Pool.
type Job func() error

// Pool runs submitted jobs on a fixed number of goroutines. The evaluator
// uses it to train independent grid tasks concurrently; each job writes its
// result to a slot assigned before submission, so completion order never
// leaks into the search results.
type Pool struct {
	jobs chan Job
	done chan struct{}

	m        sync.Mutex
	wg       sync.WaitGroup
	feeders  sync.WaitGroup
	firstErr error
	stopped  bool
}

// New creates a Pool running jobs on n goroutines.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs: make(chan Job, n),
		done: make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for {
		select {
		case job := <-p.jobs:
			p.exec(job)
		case <-p.done:
			return
		}
	}
}

func (p *Pool) exec(job Job) {
	if err := job(); err != nil {
		p.m.Lock()
		if p.firstErr == nil {
			p.firstErr = err
		}
		p.m.Unlock()
	}
	p.wg.Done()
}

// Add submits jobs to the pool without blocking the caller.
func (p *Pool) Add(jobs []Job) {
	p.wg.Add(len(jobs))
	p.feeders.Add(1)
	go func() {
		defer p.feeders.Done()
		for i, job := range jobs {
			select {
			case p.jobs <- job:
			case <-p.done:
				// release the counts of jobs that will never run so
				// Wait does not block on them
				for range jobs[i:] {
					p.wg.Done()
				}
				return
			}
		}
	}()
}

// AddBlocking submits jobs to the pool, blocking until all of them have been
// handed to a worker.
func (p *Pool) AddBlocking(jobs []Job) {
	p.wg.Add(len(jobs))
	for _, job := range jobs {
		p.jobs <- job
	}
}

// Wait blocks until all submitted jobs have finished and returns the first
// error any job reported.
func (p *Pool) Wait() error {
	p.wg.Wait()
	p.m.Lock()
	defer p.m.Unlock()
	return p.firstErr
}

// Stop shuts down the worker goroutines. Jobs already queued complete;
// jobs an Add has not yet handed to the pool are dropped. No further jobs
// may be added.
func (p *Pool) Stop() {
	p.m.Lock()
	if p.stopped {
		p.m.Unlock()
		return
	}
	p.stopped = true
	close(p.done)
	p.m.Unlock()

	// workers stop receiving once done is closed, so jobs a feeder managed
	// to buffer before seeing done would strand their Wait counts; run them
	// here once every feeder has exited
	go func() {
		p.feeders.Wait()
		for {
			select {
			case job := <-p.jobs:
				p.exec(job)
			default:
				return
			}
		}
	}()
}
