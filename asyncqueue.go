package gridlist

import "slices"

// NextFunc finishes the calling step of an [AsyncQueue] and hands args to
// the next task. Only the first call counts, and calls made after the step
// was cleared are ignored.
type NextFunc func(args any)

// AsyncCallback is one step of an [AsyncQueue]. params is the value given
// when the task was queued; args is what the previous task passed to next.
type AsyncCallback func(next NextFunc, params, args any)

// lastTaskID numbers queued tasks across all queues. Game thread only.
var lastTaskID uint64

type asyncTask struct {
	id        uint64
	callbacks []AsyncCallback
	params    any
}

// AsyncQueue runs tasks one after another, each starting once the previous
// one calls its next function. A task may hold several callbacks; they are
// started together and the task ends when all of them have called next.
//
// With a Scheduler the next task starts on the following Update instead of
// inside the next call, which keeps long chains off the stack.
type AsyncQueue struct {
	sched *Scheduler

	tasks      []*asyncTask
	running    uint64
	processing bool
	disabled   bool
	step       TaskHandle

	onComplete func(args any)
}

// NewAsyncQueue returns an enabled, empty queue. sched may be nil, in which
// case tasks advance synchronously.
func NewAsyncQueue(sched *Scheduler) *AsyncQueue {
	return &AsyncQueue{sched: sched}
}

// Push queues a single-callback task and starts the queue if it is idle. It
// returns the task's id.
func (q *AsyncQueue) Push(callback AsyncCallback, params any) uint64 {
	if callback == nil {
		panic("gridlist: nil async callback")
	}
	return q.Append(params, callback)
}

// Append queues a task whose callbacks run in parallel, and starts the queue
// if it is idle. The next task receives a []any holding each callback's
// next args by callback position. A task with no callbacks passes its args
// straight through.
func (q *AsyncQueue) Append(params any, callbacks ...AsyncCallback) uint64 {
	lastTaskID++
	q.tasks = append(q.tasks, &asyncTask{
		id:        lastTaskID,
		callbacks: slices.Clone(callbacks),
		params:    params,
	})
	q.Execute(nil)
	return lastTaskID
}

// Execute starts the next queued task with args. It does nothing while a
// task is running or the queue is disabled. On an empty queue it fires the
// complete callback with args.
func (q *AsyncQueue) Execute(args any) {
	if q.processing || q.disabled {
		return
	}
	if len(q.tasks) == 0 {
		q.complete(args)
		return
	}
	t := q.tasks[0]
	q.tasks = slices.Delete(q.tasks, 0, 1)
	q.processing = true
	q.running = t.id

	switch len(t.callbacks) {
	case 0:
		q.advance(t.id, args)
	case 1:
		done := false
		t.callbacks[0](func(next any) {
			if done {
				return
			}
			done = true
			q.advance(t.id, next)
		}, t.params, args)
	default:
		results := make([]any, len(t.callbacks))
		remaining := len(t.callbacks)
		for i, cb := range t.callbacks {
			done := false
			cb(func(next any) {
				if done || q.running != t.id {
					return
				}
				done = true
				results[i] = next
				if remaining--; remaining == 0 {
					q.advance(t.id, results)
				}
			}, t.params, args)
		}
	}
}

// Remove drops a queued task. The running task cannot be removed; Remove
// logs a warning and reports false for it.
func (q *AsyncQueue) Remove(id uint64) bool {
	if q.processing && q.running == id {
		Logger().Warn("gridlist: cannot remove running async task", "task", id)
		return false
	}
	i := slices.IndexFunc(q.tasks, func(t *asyncTask) bool { return t.id == id })
	if i < 0 {
		return false
	}
	q.tasks = slices.Delete(q.tasks, i, i+1)
	return true
}

// Clear drops every queued task and forgets the running one, whose next
// calls are then ignored. The complete callback does not fire.
func (q *AsyncQueue) Clear() {
	q.tasks = nil
	q.running = 0
	q.processing = false
	q.step.Cancel()
	q.step = TaskHandle{}
}

// SetEnabled pauses or resumes the queue. A paused queue finishes its
// running task but starts no new one; re-enabling does not restart it, call
// Execute or queue another task.
func (q *AsyncQueue) SetEnabled(enabled bool) { q.disabled = !enabled }

// Enabled reports whether the queue may start tasks.
func (q *AsyncQueue) Enabled() bool { return !q.disabled }

// IsProcessing reports whether a task is running or about to start.
func (q *AsyncQueue) IsProcessing() bool { return q.processing }

// Len returns the number of tasks waiting to start.
func (q *AsyncQueue) Len() int { return len(q.tasks) }

// OnComplete sets the callback fired with the last task's args whenever
// Execute finds the queue empty.
func (q *AsyncQueue) OnComplete(fn func(args any)) { q.onComplete = fn }

func (q *AsyncQueue) advance(id uint64, args any) {
	if q.running != id {
		return
	}
	q.running = 0
	if q.sched == nil {
		q.processing = false
		q.Execute(args)
		return
	}
	// processing stays set so tasks pushed before the next tick queue up
	// behind instead of starting with nil args.
	q.step = q.sched.Once(func() {
		q.step = TaskHandle{}
		q.processing = false
		q.Execute(args)
	})
}

func (q *AsyncQueue) complete(args any) {
	q.running = 0
	if q.onComplete != nil {
		q.onComplete(args)
	}
}
