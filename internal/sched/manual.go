package sched

import (
	"sort"
	"time"
)

// ManualClock is a controllable time source for tests and the offline
// previewer, after the mock provider pattern.
type ManualClock struct {
	current time.Time
}

// NewManualClock creates a manual clock starting at startTime.
func NewManualClock(startTime time.Time) *ManualClock {
	return &ManualClock{current: startTime}
}

func (c *ManualClock) Now() time.Time { return c.current }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

// ManualScheduler queues timers and frame requests and fires them only when
// stepped, giving tests and the previewer full control over ordering.
// It must be paired with the ManualClock that drives it.
type ManualScheduler struct {
	clock  *ManualClock
	timers []*manualTimer
	frames []*frameReq
}

type manualTimer struct {
	due       time.Time
	fn        func()
	cancelled bool
}

// NewManualScheduler creates a stepped scheduler over clock.
func NewManualScheduler(clock *ManualClock) *ManualScheduler {
	return &ManualScheduler{clock: clock}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &manualTimer{due: s.clock.Now().Add(d), fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *ManualScheduler) RequestFrame(fn func()) func() {
	req := &frameReq{fn: fn}
	s.frames = append(s.frames, req)
	return func() { req.cancelled = true }
}

// Step advances the clock by d, fires every timer due by the new time in
// order, then runs one round of pending frame callbacks. Frames queued by
// the callbacks themselves wait for the next step, matching how a real host
// delivers at most one animation frame per tick.
func (s *ManualScheduler) Step(d time.Duration) {
	s.clock.Advance(d)
	now := s.clock.Now()

	var due, rest []*manualTimer
	for _, t := range s.timers {
		if !t.cancelled && !t.due.After(now) {
			due = append(due, t)
		} else if !t.cancelled {
			rest = append(rest, t)
		}
	}
	s.timers = rest
	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		if !t.cancelled {
			t.fn()
		}
	}

	pending := s.frames
	s.frames = nil
	for _, req := range pending {
		if !req.cancelled {
			req.fn()
		}
	}
}

// PendingFrames reports how many frame callbacks await the next step.
func (s *ManualScheduler) PendingFrames() int {
	n := 0
	for _, req := range s.frames {
		if !req.cancelled {
			n++
		}
	}
	return n
}
