package gridlist

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

const defaultTaskLimit = 5

// TaskRunner runs tasks with at most Limit of them active at once. Waiting
// tasks start in the order they were added.
type TaskRunner struct {
	limit  int
	sem    *semaphore.Weighted
	active *atomic.Int32
	queued *atomic.Int32
	wg     sync.WaitGroup
}

// NewTaskRunner creates a runner allowing limit concurrent tasks.
func NewTaskRunner(limit int) (*TaskRunner, error) {
	if limit < 1 {
		return nil, fmt.Errorf("new task runner: limit %d: %w", limit, ErrInvalidLimit)
	}
	return &TaskRunner{
		limit:  limit,
		sem:    semaphore.NewWeighted(int64(limit)),
		active: atomic.NewInt32(0),
		queued: atomic.NewInt32(0),
	}, nil
}

// Limit returns the concurrency limit.
func (r *TaskRunner) Limit() int { return r.limit }

// Active returns the number of running tasks.
func (r *TaskRunner) Active() int { return int(r.active.Load()) }

// Queued returns the number of tasks waiting for a free slot.
func (r *TaskRunner) Queued() int { return int(r.queued.Load()) }

// Do runs fn once a slot is free, blocking the caller until fn returns or
// ctx is cancelled while waiting.
func (r *TaskRunner) Do(ctx context.Context, name string, fn func(context.Context) error) error {
	r.queued.Inc()
	err := r.sem.Acquire(ctx, 1)
	r.queued.Dec()
	if err != nil {
		return fmt.Errorf("task %s: %w", name, err)
	}
	r.active.Inc()
	defer func() {
		r.active.Dec()
		r.sem.Release(1)
	}()

	Logger().Debug("gridlist: task running", "task", name)
	if err := fn(ctx); err != nil {
		Logger().Debug("gridlist: task failed", "task", name, "err", err)
		return fmt.Errorf("task %s: %w", name, err)
	}
	Logger().Debug("gridlist: task finished", "task", name)
	return nil
}

// Go runs fn on a new goroutine through Do. done, if non-nil, receives the
// result on that goroutine.
func (r *TaskRunner) Go(ctx context.Context, name string, fn func(context.Context) error, done func(error)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.Do(ctx, name, fn)
		if done != nil {
			done(err)
		}
	}()
}

// Wait blocks until every task started with Go has returned.
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}
