package promise

import "sync"

// Scheduler is a FIFO microtask queue standing in for the host's event
// loop ("microtasks are drained between synchronous steps by an
// external scheduler"). Nothing in this package drains a Scheduler on its
// own initiative — a promise settling or a reaction running only ever
// enqueues more work. Callers own when to call Drain, the way an
// embedding host owns when to run a turn of its event loop.
type Scheduler struct {
	mu    sync.Mutex
	tasks []func()
}

// NewScheduler returns an empty microtask queue.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) enqueue(task func()) {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
}

// Drain runs every queued microtask to completion, in FIFO order,
// including tasks a running task itself enqueues — exactly how a
// Promise.then reaction enqueues the next link in a chain while the
// current one is still draining.
func (s *Scheduler) Drain() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.mu.Unlock()
		task()
	}
}

// Pending reports whether any microtask is currently queued.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks) > 0
}
