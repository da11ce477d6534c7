package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_RunJobs(t *testing.T) {
	pool := New(5)
	defer pool.Stop()

	var jobs []Job
	var completed int32
	for i := 0; i < 15; i++ {
		jobs = append(jobs, func() error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&completed, 1)
			return nil
		})
	}

	pool.Add(jobs)
	require.NoError(t, pool.Wait())
	require.EqualValues(t, len(jobs), completed, "expected all jobs to be completed")
}

func Test_WaitReturnsFirstError(t *testing.T) {
	pool := New(2)
	defer pool.Stop()

	jobs := []Job{
		func() error { return nil },
		func() error { return errFailed },
		func() error { return nil },
	}

	pool.AddBlocking(jobs)
	require.Equal(t, errFailed, pool.Wait())
}

func Test_StopUnblocksPendingAdd(t *testing.T) {
	pool := New(1)

	gate := make(chan struct{})
	var started int32
	jobs := []Job{func() error {
		atomic.AddInt32(&started, 1)
		<-gate
		return nil
	}}
	for i := 0; i < 8; i++ {
		jobs = append(jobs, func() error { return nil })
	}

	pool.Add(jobs)
	// wait until the single worker is parked on the gated job, leaving the
	// feeder blocked with jobs still in hand
	for atomic.LoadInt32(&started) == 0 {
		time.Sleep(time.Millisecond)
	}

	pool.Stop()
	close(gate)

	done := make(chan error, 1)
	go func() { done <- pool.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Stop")
	}
}

var errFailed = errTest("job failed")

type errTest string

func (e errTest) Error() string { return string(e) }
