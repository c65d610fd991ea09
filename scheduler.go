package gridlist

// scheduledTask is one deferred callback.
type scheduledTask struct {
	at        float64
	fn        func()
	cancelled bool
}

// TaskHandle allows cancelling a scheduled callback.
type TaskHandle struct {
	task *scheduledTask
}

// Cancel prevents the callback from running. No-op if it already ran.
func (h TaskHandle) Cancel() {
	if h.task != nil {
		h.task.cancelled = true
	}
}

// Scheduler runs deferred callbacks on later Update calls. It is driven by
// the game loop and never runs callbacks on its own.
//
// Callbacks scheduled while Update is running are never run by that same
// Update, so Once always means "on the next tick".
type Scheduler struct {
	now     float64
	tasks   []*scheduledTask
	running []*scheduledTask
}

// Once schedules fn for the next Update.
func (s *Scheduler) Once(fn func()) TaskHandle {
	return s.After(0, fn)
}

// After schedules fn to run on the first Update at least seconds from now.
func (s *Scheduler) After(seconds float64, fn func()) TaskHandle {
	t := &scheduledTask{at: s.now + seconds, fn: fn}
	s.tasks = append(s.tasks, t)
	return TaskHandle{task: t}
}

// Pending returns the number of callbacks waiting to run.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Clear cancels every pending callback.
func (s *Scheduler) Clear() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	for _, t := range s.running {
		t.cancelled = true
	}
	s.tasks = nil
}

// Update advances the clock by dt seconds and runs due callbacks in the
// order they were scheduled.
func (s *Scheduler) Update(dt float64) {
	s.now += dt
	due := s.tasks
	s.tasks = nil
	s.running = due
	var keep []*scheduledTask
	for _, t := range due {
		if t.cancelled {
			continue
		}
		if t.at > s.now {
			keep = append(keep, t)
			continue
		}
		t.cancelled = true
		t.fn()
	}
	s.running = nil
	// Tasks added during this pass go after the ones still waiting.
	s.tasks = append(keep, s.tasks...)
}
