// Package controller orchestrates the transition engine: it samples scroll
// position once per animation frame, derives the segment position, and
// writes motif and slide state back to the hosting view.
package controller

import (
	"fmt"
	"log"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/easing"
	"github.com/ivlev/scrollwave/internal/gravity"
	"github.com/ivlev/scrollwave/internal/layout"
	"github.com/ivlev/scrollwave/internal/motif"
	"github.com/ivlev/scrollwave/internal/sched"
	"github.com/ivlev/scrollwave/internal/segment"
	"github.com/ivlev/scrollwave/internal/view"
	"github.com/ivlev/scrollwave/internal/visibility"
)

// Controller wires the pure calculators to a view and owns every listener,
// timer and frame handle it creates. All rate-limiting state lives on the
// instance and is reset by Destroy.
type Controller struct {
	cfg     config.Config
	view    view.View
	calc    segment.Calculator
	vis     visibility.Calculator
	motifs  []motif.Motif
	gravity *gravity.Machine
	sched   sched.Scheduler

	framePending bool
	cancelFrame  func()
	cancelResize func()
	offListeners []func()
	started      bool
}

// New assembles a controller over a view with the given motif preset.
// Nothing is wired until Init.
func New(cfg config.Config, v view.View, preset motif.Preset, clock sched.Clock, scheduler sched.Scheduler) *Controller {
	totalSlides := len(v.Slides())
	totalTransitions := len(v.TransitionElements())
	l := layout.New(totalSlides, totalTransitions)

	motifs := make([]motif.Motif, totalTransitions)
	for i := range motifs {
		motifs[i] = motif.New(cfg, preset)
	}

	return &Controller{
		cfg:     cfg,
		view:    v,
		calc:    segment.NewCalculator(l),
		vis:     visibility.NewCalculator(cfg, totalSlides),
		motifs:  motifs,
		gravity: gravity.NewMachine(cfg, v, l, clock, scheduler),
		sched:   scheduler,
	}
}

// Init validates the view's shape, wires listeners, starts gravity and runs
// the first computation. Shape problems short of an empty slide set are
// diagnostics, not failures: the engine degrades rather than breaking the
// hosting page.
func (c *Controller) Init() error {
	if c.started {
		return nil
	}
	slides := c.view.Slides()
	if len(slides) == 0 {
		return fmt.Errorf("no slides supplied to the transition controller")
	}
	if got, want := len(c.view.TransitionElements()), len(slides)-1; got != want {
		log.Printf("[!] transition count %d does not match %d slides (expected %d); extra entries are ignored", got, len(slides), want)
	}

	c.offListeners = append(c.offListeners,
		c.view.On(view.EventScroll, func(view.Event) { c.scheduleFrame() }),
		c.view.On(view.EventResize, func(view.Event) { c.onResize() }),
	)
	c.gravity.Start()
	c.started = true

	c.update()
	return nil
}

// scheduleFrame requests one render update. The pending flag keeps frames
// from queuing more than one deep under scroll event bursts.
func (c *Controller) scheduleFrame() {
	if !c.started || c.framePending {
		return
	}
	c.framePending = true
	c.cancelFrame = c.sched.RequestFrame(func() {
		c.framePending = false
		c.cancelFrame = nil
		c.update()
	})
}

// onResize coalesces resize bursts into a single trailing update.
func (c *Controller) onResize() {
	if !c.started {
		return
	}
	if c.cancelResize != nil {
		c.cancelResize()
	}
	c.cancelResize = c.sched.AfterFunc(c.cfg.ResizeDebounce, func() {
		c.cancelResize = nil
		c.update()
	})
}

// update performs one frame's work from a single sampled scroll value:
// segment computation first, then position and visibility writes, so all
// writes within the frame are mutually consistent.
func (c *Controller) update() {
	progress := c.Progress()
	info := c.calc.Locate(progress)

	transitions := c.view.TransitionElements()
	for ti, elems := range transitions {
		if ti >= len(c.motifs) {
			break
		}
		states := c.motifs[ti].States(ti, info.TransitionIndex, info.Within)
		for j, el := range elems {
			if j < len(states) {
				el.SetState(states[j])
			}
		}
	}

	slides := c.view.Slides()
	for i, op := range c.vis.Opacities(info) {
		if i >= len(slides) {
			break
		}
		slides[i].SetState(motif.ElementState{Scale: 1, Opacity: op})
		slides[i].SetVisible(op > 0)
	}

	if bar := c.view.ProgressBar(); bar != nil {
		// The bar stretches horizontally with overall progress.
		bar.SetState(motif.ElementState{Scale: progress, Opacity: 1})
	}
}

// Progress returns the current overall scroll progress in [0,1]. A view
// with no scrollable range reports 0 rather than dividing by zero.
func (c *Controller) Progress() float64 {
	maxScroll := view.MaxScroll(c.view)
	if maxScroll <= 0 {
		return 0
	}
	return easing.Clamp01(c.view.ScrollTop() / maxScroll)
}

// Gravity exposes the snap state machine, mainly for hosts that surface
// its phase.
func (c *Controller) Gravity() *gravity.Machine {
	return c.gravity
}

// Destroy tears everything down: listeners detached, pending frame and
// resize timer cancelled, gravity stopped. No callback created by this
// controller can fire afterwards.
func (c *Controller) Destroy() {
	if !c.started {
		return
	}
	for _, off := range c.offListeners {
		off()
	}
	c.offListeners = nil
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
	if c.cancelResize != nil {
		c.cancelResize()
		c.cancelResize = nil
	}
	c.framePending = false
	c.gravity.Stop()
	c.started = false
}
