package gravity

import (
	"math"
	"testing"
	"time"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/layout"
	"github.com/ivlev/scrollwave/internal/sched"
	"github.com/ivlev/scrollwave/internal/view"
)

type harness struct {
	view    *view.Fake
	clock   *sched.ManualClock
	sched   *sched.ManualScheduler
	machine *Machine
	cfg     config.Config
}

// newHarness wires a machine over a fake view with slide centers at
// progress 0, 0.5 and 1 (scroll offsets 0, 500 and 1000 for the default
// geometry) and a manually stepped clock.
func newHarness(slides, transitions int, viewportH, contentH float64) *harness {
	cfg := config.Default()
	cfg.GravityIdleDelay = 250 * time.Millisecond
	cfg.GravityDuration = 600 * time.Millisecond
	cfg.MinSnapDistance = 2.0

	v := view.NewFake(slides, transitions, 1, viewportH, contentH)
	v.EchoScroll = true
	clock := sched.NewManualClock(time.Unix(1000, 0))
	scheduler := sched.NewManualScheduler(clock)
	m := NewMachine(cfg, v, layout.New(slides, transitions), clock, scheduler)
	m.Start()

	return &harness{view: v, clock: clock, sched: scheduler, machine: m, cfg: cfg}
}

// step advances in frame-sized slices so timers and frame chains interleave
// the way a live host would run them.
func (h *harness) step(total time.Duration) {
	const frame = 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < total; elapsed += frame {
		h.sched.Step(frame)
	}
}

func TestSnapToNearestCenter(t *testing.T) {
	// Two slides, one transition: centers at scroll 0 and 1000.
	h := newHarness(3, 2, 800, 1800)

	// User scrolls to progress 0.46 and stops.
	h.view.Scroll = 460
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	if h.machine.Phase() != PhaseWaiting {
		t.Fatalf("expected Waiting after scroll, got %v", h.machine.Phase())
	}

	// Idle delay elapses; snap target is the nearer center at 0.5.
	h.step(h.cfg.GravityIdleDelay + 20*time.Millisecond)
	if h.machine.Phase() != PhaseAnimating {
		t.Fatalf("expected Animating after idle delay, got %v", h.machine.Phase())
	}

	h.step(h.cfg.GravityDuration + 50*time.Millisecond)
	if h.machine.Phase() != PhaseIdle {
		t.Fatalf("expected Idle after animation, got %v", h.machine.Phase())
	}

	final := h.view.Scroll
	if math.Abs(final-500) > 1e-6 {
		t.Errorf("final scroll = %v, expected 500 (center 0.5 of max 1000)", final)
	}

	// The animation must move monotonically from start to target.
	prev := 460.0
	for _, w := range h.view.ScrollWrites {
		if w < prev-1e-9 {
			t.Fatalf("scroll write %v went backwards (prev %v)", w, prev)
		}
		prev = w
	}
}

func TestWheelInterruptsAnimation(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)

	h.view.Scroll = 460
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 20*time.Millisecond)
	if h.machine.Phase() != PhaseAnimating {
		t.Fatalf("expected Animating, got %v", h.machine.Phase())
	}

	// Let a few frames run, then the user spins the wheel.
	h.step(100 * time.Millisecond)
	writesBefore := len(h.view.ScrollWrites)
	h.view.Dispatch(view.Event{Kind: view.EventWheel})

	if h.machine.Phase() != PhaseWaiting && h.machine.Phase() != PhaseIdle {
		t.Fatalf("expected snap cancelled, got %v", h.machine.Phase())
	}

	// No further scroll writes after the interruption.
	h.step(h.cfg.GravityDuration)
	if got := len(h.view.ScrollWrites); got != writesBefore {
		t.Errorf("scroll writes continued after interruption: %d -> %d", writesBefore, got)
	}

	// Interruption listeners must not leak.
	if n := h.view.ListenerCount(view.EventWheel); n != 0 {
		t.Errorf("%d wheel listeners left attached", n)
	}
}

func TestRescrollRestartsIdleTimer(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)

	h.view.Scroll = 460
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(150 * time.Millisecond)

	// New scroll before the delay elapses pushes the deadline out.
	h.view.Scroll = 470
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(150 * time.Millisecond)
	if h.machine.Phase() != PhaseWaiting {
		t.Fatalf("timer fired despite restart: %v", h.machine.Phase())
	}

	h.step(150 * time.Millisecond)
	if h.machine.Phase() != PhaseAnimating {
		t.Fatalf("expected Animating after full delay, got %v", h.machine.Phase())
	}
}

func TestPressedSuppressesSnap(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)

	h.view.Dispatch(view.Event{Kind: view.EventTouchStart})
	h.view.Scroll = 460
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 50*time.Millisecond)

	if h.machine.Phase() != PhaseIdle {
		t.Fatalf("expected Idle while pressed, got %v", h.machine.Phase())
	}
	if len(h.view.ScrollWrites) != 0 {
		t.Errorf("no scroll writes expected while pressed, got %v", h.view.ScrollWrites)
	}

	// Release and scroll again: snapping resumes.
	h.view.Dispatch(view.Event{Kind: view.EventTouchEnd})
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 20*time.Millisecond)
	if h.machine.Phase() != PhaseAnimating {
		t.Fatalf("expected Animating after release, got %v", h.machine.Phase())
	}
}

func TestNoScrollableRange(t *testing.T) {
	// Content fits the viewport: maxScroll <= 0, gravity must not act.
	h := newHarness(3, 2, 800, 600)

	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 50*time.Millisecond)

	if h.machine.Phase() != PhaseIdle {
		t.Fatalf("expected Idle with no scrollable range, got %v", h.machine.Phase())
	}
	if len(h.view.ScrollWrites) != 0 {
		t.Errorf("unexpected scroll writes: %v", h.view.ScrollWrites)
	}
}

func TestMicroJitterBelowThreshold(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)

	// 1 pixel off a center, under MinSnapDistance.
	h.view.Scroll = 501
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 50*time.Millisecond)

	if h.machine.Phase() != PhaseIdle {
		t.Fatalf("expected Idle for micro offset, got %v", h.machine.Phase())
	}
	if len(h.view.ScrollWrites) != 0 {
		t.Errorf("micro-jitter snap happened: %v", h.view.ScrollWrites)
	}
}

func TestSelfScrollEventsIgnoredWhileAnimating(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)

	h.view.Scroll = 460
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 20*time.Millisecond)

	// EchoScroll makes every SetScrollTop dispatch a scroll event back into
	// the machine; if those were honored the machine would bounce back to
	// Waiting and never finish.
	h.step(h.cfg.GravityDuration + 50*time.Millisecond)
	if h.machine.Phase() != PhaseIdle {
		t.Fatalf("echoed scroll events disturbed the animation: %v", h.machine.Phase())
	}
	if math.Abs(h.view.Scroll-500) > 1e-6 {
		t.Errorf("final scroll = %v, expected 500", h.view.Scroll)
	}
}

func TestStopCleansUp(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)

	h.view.Scroll = 460
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 20*time.Millisecond)
	if h.machine.Phase() != PhaseAnimating {
		t.Fatalf("expected Animating, got %v", h.machine.Phase())
	}

	h.machine.Stop()
	if h.machine.Phase() != PhaseIdle {
		t.Fatalf("expected Idle after Stop, got %v", h.machine.Phase())
	}

	writes := len(h.view.ScrollWrites)
	h.step(time.Second)
	if got := len(h.view.ScrollWrites); got != writes {
		t.Errorf("callbacks fired after Stop: %d -> %d writes", writes, got)
	}
	for _, kind := range []view.EventKind{view.EventScroll, view.EventWheel, view.EventTouchStart, view.EventKeyDown} {
		if n := h.view.ListenerCount(kind); n != 0 {
			t.Errorf("event kind %d: %d listeners left after Stop", kind, n)
		}
	}
}

func TestBiasSelectsForwardCenter(t *testing.T) {
	h := newHarness(3, 2, 800, 1800)
	h.machine.Stop()

	h.cfg.GravityBias = 0.1
	h.machine = NewMachine(h.cfg, h.view, layout.New(3, 2), h.clock, h.sched)
	h.machine.Start()

	// 0.45 is nearer to 0.5 already; with positive bias even 0.41 snaps up.
	h.view.Scroll = 410
	h.view.Dispatch(view.Event{Kind: view.EventScroll})
	h.step(h.cfg.GravityIdleDelay + 20*time.Millisecond)
	h.step(h.cfg.GravityDuration + 50*time.Millisecond)

	if math.Abs(h.view.Scroll-500) > 1e-6 {
		t.Errorf("final scroll = %v, expected 500 with forward bias", h.view.Scroll)
	}
}
