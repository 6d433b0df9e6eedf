package sched

import (
	"sync"
	"testing"
	"time"
)

func TestManualSchedulerTimerOrdering(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewManualScheduler(clock)

	var order []string
	s.AfterFunc(20*time.Millisecond, func() { order = append(order, "late") })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, "early") })

	s.Step(5 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("timers fired before their due time: %v", order)
	}

	s.Step(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("firing order = %v, want [early late]", order)
	}
}

func TestManualSchedulerCancelledTimerNeverFires(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewManualScheduler(clock)

	fired := false
	cancel := s.AfterFunc(10*time.Millisecond, func() { fired = true })
	cancel()
	cancel() // idempotent

	s.Step(50 * time.Millisecond)
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestManualSchedulerFrameChainsWaitOneStep(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewManualScheduler(clock)

	frames := 0
	var chain func()
	chain = func() {
		frames++
		s.RequestFrame(chain)
	}
	s.RequestFrame(chain)

	// One frame per step: a frame queued by a frame must wait.
	for i := 0; i < 4; i++ {
		s.Step(16 * time.Millisecond)
	}
	if frames != 4 {
		t.Errorf("ran %d frames over 4 steps, want 4", frames)
	}
	if s.PendingFrames() != 1 {
		t.Errorf("pending frames = %d, want 1", s.PendingFrames())
	}
}

func TestManualSchedulerTimersFireBeforeFrames(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewManualScheduler(clock)

	var order []string
	s.RequestFrame(func() { order = append(order, "frame") })
	s.AfterFunc(time.Millisecond, func() { order = append(order, "timer") })

	s.Step(16 * time.Millisecond)
	if len(order) != 2 || order[0] != "timer" || order[1] != "frame" {
		t.Errorf("order = %v, want [timer frame]", order)
	}
}

func TestLoopSchedulerDeliversFrames(t *testing.T) {
	s := NewLoopScheduler(200)
	defer s.Stop()

	var mu sync.Mutex
	done := make(chan struct{})
	fired := false

	s.RequestFrame(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("frame callback never ran")
	}

	mu.Lock()
	defer mu.Unlock()
	if !fired {
		t.Error("frame flag not set")
	}
}

func TestLoopSchedulerCancelledFrameDropped(t *testing.T) {
	s := NewLoopScheduler(200)
	defer s.Stop()

	var mu sync.Mutex
	fired := false
	cancel := s.RequestFrame(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	cancel()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Error("cancelled frame ran")
	}
}

func TestLoopSchedulerAfterFuncRunsOnLoop(t *testing.T) {
	s := NewLoopScheduler(200)
	defer s.Stop()

	done := make(chan struct{})
	s.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer callback never ran")
	}
}

func TestLoopSchedulerStopDropsPending(t *testing.T) {
	s := NewLoopScheduler(5) // slow ticker so Stop wins the race
	var mu sync.Mutex
	fired := false
	s.RequestFrame(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	s.Stop()

	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Error("frame ran after Stop")
	}
}
