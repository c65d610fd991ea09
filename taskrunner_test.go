package gridlist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/atomic"
)

func TestNewTaskRunnerInvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -3} {
		if _, err := NewTaskRunner(limit); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("NewTaskRunner(%d) err = %v, want ErrInvalidLimit", limit, err)
		}
	}
	r, err := NewTaskRunner(3)
	if err != nil {
		t.Fatalf("NewTaskRunner(3): %v", err)
	}
	if r.Limit() != 3 {
		t.Errorf("Limit = %d, want 3", r.Limit())
	}
}

func TestTaskRunnerBoundsConcurrency(t *testing.T) {
	const limit, tasks = 2, 6
	r, err := NewTaskRunner(limit)
	if err != nil {
		t.Fatal(err)
	}
	cur := atomic.NewInt32(0)
	peak := atomic.NewInt32(0)
	started := make(chan struct{}, tasks)
	release := make(chan struct{})
	finished := atomic.NewInt32(0)

	for i := range tasks {
		r.Go(context.Background(), fmt.Sprintf("task-%d", i), func(context.Context) error {
			n := cur.Inc()
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			started <- struct{}{}
			<-release
			cur.Dec()
			return nil
		}, func(err error) {
			if err == nil {
				finished.Inc()
			}
		})
	}

	for range limit {
		<-started
	}
	if got := r.Active(); got != limit {
		t.Errorf("Active = %d, want %d", got, limit)
	}
	close(release)
	r.Wait()

	if got := peak.Load(); got > limit {
		t.Errorf("peak concurrency = %d, want <= %d", got, limit)
	}
	if got := finished.Load(); got != tasks {
		t.Errorf("finished = %d, want %d", got, tasks)
	}
	if r.Active() != 0 || r.Queued() != 0 {
		t.Errorf("Active/Queued = %d/%d after Wait, want 0/0", r.Active(), r.Queued())
	}
}

func TestTaskRunnerWrapsErrors(t *testing.T) {
	r, _ := NewTaskRunner(1)
	boom := errors.New("boom")
	err := r.Do(context.Background(), "load", func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapping boom", err)
	}
}

func TestTaskRunnerCancelledWhileWaiting(t *testing.T) {
	r, _ := NewTaskRunner(1)
	hold := make(chan struct{})
	running := make(chan struct{})
	r.Go(context.Background(), "holder", func(context.Context) error {
		close(running)
		<-hold
		return nil
	}, nil)
	<-running

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	err := r.Do(ctx, "waiter", func(context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if ran {
		t.Error("cancelled task ran")
	}
	close(hold)
	r.Wait()
}
