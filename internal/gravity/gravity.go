// Package gravity implements the scroll-idle snap state machine: once
// scrolling goes quiet, the scroll position glides to the nearest slide
// center, and any user input mid-glide hands control straight back.
package gravity

import (
	"time"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/easing"
	"github.com/ivlev/scrollwave/internal/layout"
	"github.com/ivlev/scrollwave/internal/sched"
	"github.com/ivlev/scrollwave/internal/view"
)

// Phase identifies which state variant is live.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaiting
	PhaseAnimating
)

// state is a closed tagged union: exactly one variant is live at a time and
// the transition methods are its only mutators. Keeping the timer and frame
// handles inside their variants means a handle cannot survive into a state
// it does not belong to.
type state interface {
	phase() Phase
}

type idleState struct{}

type waitingState struct {
	cancelTimer func()
}

type animatingState struct {
	startTime   time.Time
	startScroll float64
	target      float64
	cancelFrame func()
}

func (idleState) phase() Phase      { return PhaseIdle }
func (waitingState) phase() Phase   { return PhaseWaiting }
func (animatingState) phase() Phase { return PhaseAnimating }

// Machine is the gravity state machine. It owns its state exclusively; the
// host must deliver all events on one goroutine (the scheduler's loop).
type Machine struct {
	cfg    config.Config
	view   view.View
	layout layout.Layout
	clock  sched.Clock
	sched  sched.Scheduler

	state   state
	pressed bool

	offBaseline []func() // scroll + press listeners, attached for the machine's lifetime
	offInput    []func() // wheel/touchstart/keydown, attached only while animating
}

// NewMachine creates a stopped machine. Call Start to attach listeners.
func NewMachine(cfg config.Config, v view.View, l layout.Layout, clock sched.Clock, scheduler sched.Scheduler) *Machine {
	return &Machine{
		cfg:    cfg,
		view:   v,
		layout: l,
		clock:  clock,
		sched:  scheduler,
		state:  idleState{},
	}
}

// Phase reports the live state variant.
func (m *Machine) Phase() Phase {
	return m.state.phase()
}

// Start attaches the baseline scroll listener and the always-on press
// tracking pair. The press flag lives outside the state machine so a finger
// resting on the screen suppresses snapping in any state.
func (m *Machine) Start() {
	m.offBaseline = append(m.offBaseline,
		m.view.On(view.EventScroll, func(view.Event) { m.OnScroll() }),
		m.view.On(view.EventTouchStart, func(view.Event) { m.pressed = true }),
		m.view.On(view.EventTouchEnd, func(view.Event) { m.pressed = false }),
		m.view.On(view.EventTouchCancel, func(view.Event) { m.pressed = false }),
		m.view.On(view.EventMouseDown, func(view.Event) { m.pressed = true }),
		m.view.On(view.EventMouseUp, func(view.Event) { m.pressed = false }),
	)
}

// OnScroll restarts the idle timer. Scroll events arriving while animating
// are the machine's own writes echoed back and are ignored to avoid a
// feedback loop.
func (m *Machine) OnScroll() {
	switch s := m.state.(type) {
	case animatingState:
		return
	case waitingState:
		s.cancelTimer()
	}
	m.state = waitingState{
		cancelTimer: m.sched.AfterFunc(m.cfg.GravityIdleDelay, m.onIdle),
	}
}

// onIdle fires when scrolling has been quiet for the configured delay.
func (m *Machine) onIdle() {
	if m.state.phase() != PhaseWaiting {
		return
	}
	if m.pressed {
		m.state = idleState{}
		return
	}

	maxScroll := view.MaxScroll(m.view)
	if maxScroll <= 0 {
		m.state = idleState{}
		return
	}

	current := m.view.ScrollTop()
	progress := easing.Clamp01(current / maxScroll)
	target := m.layout.NearestCenterTowards(progress, m.cfg.GravityBias) * maxScroll

	dist := target - current
	if dist < 0 {
		dist = -dist
	}
	if dist <= m.cfg.MinSnapDistance {
		m.state = idleState{}
		return
	}

	if m.cfg.GravityDuration <= 0 {
		m.view.SetScrollTop(target)
		m.state = idleState{}
		return
	}

	m.attachInputListeners()
	anim := animatingState{
		startTime:   m.clock.Now(),
		startScroll: current,
		target:      target,
	}
	anim.cancelFrame = m.sched.RequestFrame(m.onFrame)
	m.state = anim
}

// onFrame advances the snap animation by one frame.
func (m *Machine) onFrame() {
	anim, ok := m.state.(animatingState)
	if !ok {
		return
	}

	elapsed := m.clock.Now().Sub(anim.startTime)
	if elapsed > m.cfg.GravityDuration {
		elapsed = m.cfg.GravityDuration
	}

	t := float64(elapsed) / float64(m.cfg.GravityDuration)
	m.view.SetScrollTop(easing.Lerp(anim.startScroll, anim.target, easing.Ease(t)))

	if elapsed >= m.cfg.GravityDuration {
		m.detachInputListeners()
		m.state = idleState{}
		return
	}

	anim.cancelFrame = m.sched.RequestFrame(m.onFrame)
	m.state = anim
}

// interrupt cancels an in-flight snap in response to user input. This is a
// normal transition, not an error: the user takes the wheel back.
func (m *Machine) interrupt() {
	anim, ok := m.state.(animatingState)
	if !ok {
		return
	}
	anim.cancelFrame()
	m.detachInputListeners()
	m.state = idleState{}
}

// attachInputListeners wires the inputs that may cancel an animation. They
// exist only while animating.
func (m *Machine) attachInputListeners() {
	interrupt := func(view.Event) { m.interrupt() }
	m.offInput = append(m.offInput,
		m.view.On(view.EventWheel, interrupt),
		m.view.On(view.EventTouchStart, interrupt),
		m.view.On(view.EventKeyDown, interrupt),
	)
}

func (m *Machine) detachInputListeners() {
	for _, off := range m.offInput {
		off()
	}
	m.offInput = nil
}

// Stop cancels whatever the live variant holds and detaches every listener,
// leaving no callback able to fire afterwards.
func (m *Machine) Stop() {
	switch s := m.state.(type) {
	case waitingState:
		s.cancelTimer()
	case animatingState:
		s.cancelFrame()
		m.detachInputListeners()
	}
	m.state = idleState{}

	for _, off := range m.offBaseline {
		off()
	}
	m.offBaseline = nil
	m.pressed = false
}
