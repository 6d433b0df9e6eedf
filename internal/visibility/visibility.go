package visibility

import (
	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/easing"
	"github.com/ivlev/scrollwave/internal/segment"
)

// Calculator computes per-slide text opacity from a segment position.
// The outgoing slide fades once the motif passes the configured trigger
// position; the incoming slide ramps up after the trailing edge.
type Calculator struct {
	cfg         config.Config
	totalSlides int
}

// NewCalculator creates a Calculator for totalSlides slides.
func NewCalculator(cfg config.Config, totalSlides int) Calculator {
	return Calculator{cfg: cfg, totalSlides: totalSlides}
}

// Opacities returns one opacity per slide for the given segment position.
// While dwelling only the settled slide is opaque; during a transition the
// outgoing and incoming slides follow their fade curves and every other
// slide is fully hidden.
func (c Calculator) Opacities(info segment.Info) []float64 {
	out := make([]float64, c.totalSlides)
	if c.totalSlides == 0 {
		return out
	}

	if info.InDwell || info.TransitionIndex < 0 {
		idx := info.SlideIndex
		if idx >= 0 && idx < c.totalSlides {
			out[idx] = 1
		}
		return out
	}

	active := info.TransitionIndex
	for i := range out {
		switch i {
		case active:
			out[i] = c.outgoing(info.Within)
		case active + 1:
			out[i] = c.incoming(info.Within)
		}
	}
	return out
}

// outgoing holds at 1 until the motif reaches the opacity trigger, then
// fades linearly to 0 by the leading edge. The trigger is expressed in
// travel units and converted to a raw progress threshold through the
// inverse easing of the motif's horizontal motion.
func (c Calculator) outgoing(within float64) float64 {
	fadeFrom := c.triggerProgress()
	fadeTo := easing.Clamp01(c.cfg.LeadingEdge)

	if within <= fadeFrom {
		return 1
	}
	if within >= fadeTo || fadeTo <= fadeFrom {
		return 0
	}
	return 1 - (within-fadeFrom)/(fadeTo-fadeFrom)
}

// incoming stays at 0 until the trailing edge, then ramps linearly to 1 by
// the end of the transition.
func (c Calculator) incoming(within float64) float64 {
	from := easing.Clamp01(c.cfg.TrailingEdge)
	if within <= from {
		return 0
	}
	if from >= 1 {
		return 1
	}
	return easing.Clamp01((within - from) / (1 - from))
}

// triggerProgress converts the travel-space opacity trigger into the raw
// within-transition progress at which the motif crosses it.
func (c Calculator) triggerProgress() float64 {
	span := c.cfg.TravelEnd - c.cfg.TravelStart
	if span == 0 {
		return 0
	}
	easedThreshold := easing.Clamp01((c.cfg.OpacityTrigger - c.cfg.TravelStart) / span)
	return easing.InverseEase(easedThreshold)
}
