package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInterval reports a non-positive task period
	ErrInvalidInterval = errors.New("task interval must be positive")
)

// Task runs on each due tick, returning false stops it
type Task func(now time.Time) bool

type scheduledTask struct {
	id       uint64
	gen      uint64
	interval time.Duration
	next     time.Time
	fn       Task
}

// Scheduler runs periodic tasks from the frame loop goroutine
// Tasks never run concurrently with each other or with the caller of Run
type Scheduler struct {
	clock  TimeProvider
	tasks  []*scheduledTask
	nextID uint64
	gen    uint64
}

// NewScheduler creates a scheduler reading clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{clock: clock}
}

// TaskHandle stops a scheduled task
type TaskHandle struct {
	s   *Scheduler
	id  uint64
	gen uint64
}

// Every schedules fn to run every interval, first run one interval from now
func (s *Scheduler) Every(interval time.Duration, fn Task) (*TaskHandle, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	s.nextID++
	t := &scheduledTask{
		id:       s.nextID,
		gen:      s.gen,
		interval: interval,
		next:     s.clock.Now().Add(interval),
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return &TaskHandle{s: s, id: t.id, gen: s.gen}, nil
}

// Run executes every due task once and returns how many ran
// A task that falls more than two intervals behind skips ahead instead of
// bursting to catch up
func (s *Scheduler) Run() int {
	now := s.clock.Now()
	ran := 0

	// Tasks scheduled from inside a task wait for the next Run
	pending := s.tasks
	for _, t := range pending {
		if !s.live(t) || now.Before(t.next) {
			continue
		}
		ran++
		if !t.fn(now) {
			s.remove(t.id)
			continue
		}
		t.next = t.next.Add(t.interval)
		if now.Sub(t.next) > 2*t.interval {
			t.next = now.Add(t.interval)
		}
	}
	return ran
}

// Reset cancels every task; handles issued before Reset become inert
func (s *Scheduler) Reset() {
	s.gen++
	s.tasks = nil
}

// Len returns the number of scheduled tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

func (s *Scheduler) live(t *scheduledTask) bool {
	if t.gen != s.gen {
		return false
	}
	for _, x := range s.tasks {
		if x == t {
			return true
		}
	}
	return false
}

func (s *Scheduler) remove(id uint64) {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Cancel stops the task, safe to call more than once or after Reset
func (h *TaskHandle) Cancel() {
	if h == nil || h.gen != h.s.gen {
		return
	}
	h.s.remove(h.id)
}

// Active reports whether the task is still scheduled
func (h *TaskHandle) Active() bool {
	if h == nil || h.gen != h.s.gen {
		return false
	}
	for _, t := range h.s.tasks {
		if t.id == h.id {
			return true
		}
	}
	return false
}
