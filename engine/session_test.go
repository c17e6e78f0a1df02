package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestSession(t *testing.T, d time.Duration) (*Session, *Scheduler, *fakeClock) {
	t.Helper()
	mock := newFakeClock()
	s, err := NewSession(mock, d, 0.25)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s, NewScheduler(mock), mock
}

func TestNewSession_InvalidDuration(t *testing.T) {
	mock := newFakeClock()
	if _, err := NewSession(mock, 0, 0.25); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("Expected ErrInvalidDuration, got %v", err)
	}
}

func TestSession_IDUnique(t *testing.T) {
	a, _, _ := newTestSession(t, time.Second)
	b, _, _ := newTestSession(t, time.Second)
	if a.ID == uuid.Nil || a.ID == b.ID {
		t.Errorf("Expected distinct non-nil ids, got %s and %s", a.ID, b.ID)
	}
}

func TestSession_RecordCut(t *testing.T) {
	s, _, _ := newTestSession(t, time.Second)
	for i := 1; i <= 3; i++ {
		if got := s.RecordCut(); got != i {
			t.Errorf("RecordCut %d returned %d", i, got)
		}
	}
	if s.Score() != 3 {
		t.Errorf("Expected score 3, got %d", s.Score())
	}
}

func TestSession_RemainingClamped(t *testing.T) {
	s, _, mock := newTestSession(t, time.Second)
	mock.Advance(400 * time.Millisecond)
	if got := s.Remaining(mock.Now()); got != 600*time.Millisecond {
		t.Errorf("Expected 600ms remaining, got %v", got)
	}
	mock.Advance(2 * time.Second)
	if got := s.Remaining(mock.Now()); got != 0 {
		t.Errorf("Expected 0 remaining, got %v", got)
	}
	if f := s.Fraction(mock.Now()); f != 0 {
		t.Errorf("Expected fraction 0, got %v", f)
	}
}

func TestSession_TimerLifecycle(t *testing.T) {
	s, sched, mock := newTestSession(t, time.Second)

	ticks, critical, expired := 0, 0, -1
	hooks := TimerHooks{
		OnTick:     func(time.Duration) { ticks++ },
		OnCritical: func() { critical++ },
		OnExpire:   func(score int) { expired = score },
	}
	if err := s.StartTimer(sched, 100*time.Millisecond, hooks); err != nil {
		t.Fatalf("StartTimer failed: %v", err)
	}
	if !s.TimerActive() {
		t.Fatal("Expected timer active")
	}

	s.RecordCut()
	s.RecordCut()

	for i := 0; i < 12; i++ {
		mock.Advance(100 * time.Millisecond)
		sched.Run()
	}

	if ticks != 10 {
		t.Errorf("Expected 10 ticks, got %d", ticks)
	}
	if critical != 1 {
		t.Errorf("Expected critical exactly once, got %d", critical)
	}
	if expired != 2 {
		t.Errorf("Expected expire with score 2, got %d", expired)
	}
	if !s.Over() || !s.Critical() {
		t.Error("Expected session over and critical")
	}
	if s.TimerActive() {
		t.Error("Expected timer inactive after expiry")
	}

	// Score is frozen after the session ends
	if got := s.RecordCut(); got != 2 {
		t.Errorf("Expected frozen score 2, got %d", got)
	}
	if err := s.StartTimer(sched, 100*time.Millisecond, hooks); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Expected ErrSessionOver, got %v", err)
	}
}

func TestSession_DuplicateTimerRejected(t *testing.T) {
	s, sched, _ := newTestSession(t, time.Second)
	if err := s.StartTimer(sched, 100*time.Millisecond, TimerHooks{}); err != nil {
		t.Fatalf("StartTimer failed: %v", err)
	}
	if err := s.StartTimer(sched, 100*time.Millisecond, TimerHooks{}); !errors.Is(err, ErrTimerRunning) {
		t.Errorf("Expected ErrTimerRunning, got %v", err)
	}
	if sched.Len() != 1 {
		t.Errorf("Expected a single countdown task, got %d", sched.Len())
	}
}

func TestSession_StopTimer(t *testing.T) {
	s, sched, mock := newTestSession(t, time.Second)
	ticks := 0
	s.StartTimer(sched, 100*time.Millisecond, TimerHooks{OnTick: func(time.Duration) { ticks++ }})

	s.StopTimer()
	s.StopTimer()

	mock.Advance(300 * time.Millisecond)
	sched.Run()
	if ticks != 0 {
		t.Errorf("Expected no ticks after stop, got %d", ticks)
	}

	// Stopped timer may be restarted
	if err := s.StartTimer(sched, 100*time.Millisecond, TimerHooks{}); err != nil {
		t.Errorf("Expected restart after stop, got %v", err)
	}
}

func TestSession_PausedClockFreezesCountdown(t *testing.T) {
	mock := newFakeClock()
	clock := NewPausableClock(mock)
	s, _ := NewSession(clock, time.Second, 0.25)

	mock.Advance(200 * time.Millisecond)
	clock.Pause()
	mock.Advance(5 * time.Second)
	clock.Resume()

	if got := s.Remaining(clock.Now()); got != 800*time.Millisecond {
		t.Errorf("Expected 800ms remaining, got %v", got)
	}
}
