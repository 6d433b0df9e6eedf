// Package sched abstracts wall-clock time and frame scheduling so the
// engine's timers and animation chains can run against the real clock in a
// live host and be stepped deterministically in tests and the offline
// previewer.
package sched

import (
	"sync"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Scheduler dispatches delayed callbacks and animation-frame callbacks.
// Cancel funcs are idempotent; a cancelled callback never fires.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) (cancel func())
	// RequestFrame runs fn on the next animation frame.
	RequestFrame(fn func()) (cancel func())
}

// SystemClock reads the real monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// LoopScheduler is a real-time Scheduler that approximates animation frames
// with a fixed-rate ticker. All callbacks run on one internal goroutine, so
// engine state never sees concurrent access.
type LoopScheduler struct {
	mu      sync.Mutex
	frame   time.Duration
	frames  []*frameReq
	stop    chan struct{}
	stopped bool
}

type frameReq struct {
	fn        func()
	cancelled bool
}

// NewLoopScheduler creates a running scheduler firing frames at fps.
func NewLoopScheduler(fps int) *LoopScheduler {
	if fps <= 0 {
		fps = 30
	}
	s := &LoopScheduler{
		frame: time.Second / time.Duration(fps),
		stop:  make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *LoopScheduler) loop() {
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.runFrames()
		}
	}
}

func (s *LoopScheduler) runFrames() {
	s.mu.Lock()
	pending := s.frames
	s.frames = nil
	s.mu.Unlock()

	for _, req := range pending {
		if !req.cancelled {
			req.fn()
		}
	}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, func() {
		// Route through the frame queue so the callback shares the loop
		// goroutine with every other engine callback.
		s.mu.Lock()
		if !s.stopped {
			s.frames = append(s.frames, &frameReq{fn: fn})
		}
		s.mu.Unlock()
	})
	return func() { timer.Stop() }
}

func (s *LoopScheduler) RequestFrame(fn func()) func() {
	req := &frameReq{fn: fn}
	s.mu.Lock()
	if !s.stopped {
		s.frames = append(s.frames, req)
	}
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		req.cancelled = true
		s.mu.Unlock()
	}
}

// Stop halts the loop. Pending callbacks are dropped.
func (s *LoopScheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stop)
		s.frames = nil
	}
	s.mu.Unlock()
}
