package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dsamastery/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsEveryJob(t *testing.T) {
	pool := worker.NewPool(3, 10)
	pool.Start(context.Background())

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		ok := pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			defer wg.Done()
			ran.Add(1)
			return nil
		}})
		require.True(t, ok)
	}
	wg.Wait()
	pool.Stop()

	assert.EqualValues(t, 20, ran.Load())
}

func TestPool_FailingAndPanickingJobsDoNotKillWorkers(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	done := make(chan struct{})
	pool.Submit(funcJob{name: "fail", fn: func(context.Context) error { return errors.New("nope") }})
	pool.Submit(funcJob{name: "panic", fn: func(context.Context) error { panic("boom") }})
	pool.Submit(funcJob{name: "after", fn: func(context.Context) error {
		close(done)
		return nil
	}})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a failing job")
	}
}

func TestPool_TrySubmitWhenFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	// not started: nothing drains the queue
	job := funcJob{name: "noop", fn: func(context.Context) error { return nil }}

	assert.True(t, pool.TrySubmit(job))
	assert.Equal(t, 1, pool.QueueSize())
	assert.False(t, pool.TrySubmit(job))
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	job := funcJob{name: "late", fn: func(context.Context) error { return nil }}
	assert.False(t, pool.Submit(job))
	assert.False(t, pool.TrySubmit(job))
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())

	started := make(chan struct{})
	var cancelled atomic.Bool
	pool.Submit(funcJob{name: "wait", fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}})

	<-started
	pool.Stop()
	assert.True(t, cancelled.Load())
}
