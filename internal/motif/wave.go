package motif

import (
	"math"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/easing"
)

// Wave drives a set of undulating wave elements across the viewport.
// Each element follows the transition with its own stagger, vertical offset,
// scale ramp and sinusoidal undulation.
type Wave struct {
	cfg      config.Config
	elements []WaveElement
}

// NewWave creates a wave motif from an immutable element table. An empty
// table falls back to the default preset.
func NewWave(cfg config.Config, elements []WaveElement) *Wave {
	if len(elements) == 0 {
		elements = DefaultPreset().Elements
	}
	return &Wave{cfg: cfg, elements: elements}
}

func (w *Wave) ElementCount() int {
	return len(w.elements)
}

// States computes the per-element states for transition t. Elements of
// earlier transitions rest past the viewport fully faded; elements of later
// transitions rest before it at full configured opacity.
func (w *Wave) States(t, active int, within float64) []ElementState {
	states := make([]ElementState, len(w.elements))
	for i, e := range w.elements {
		switch {
		case active >= 0 && t < active:
			st := w.elementAt(e, 1)
			st.Opacity = 0
			states[i] = st
		case t > active || active < 0:
			states[i] = w.elementAt(e, 0)
		default:
			states[i] = w.elementAt(e, staggeredProgress(within, e.Stagger))
		}
	}
	return states
}

// elementAt evaluates one element at a staggered progress value. Horizontal
// travel uses the eased progress; scale ramps on the raw staggered progress,
// which keeps growth linear while the sweep decelerates.
func (w *Wave) elementAt(e WaveElement, staggered float64) ElementState {
	eased := easing.Ease(staggered)

	undulation := w.cfg.Amplitude * math.Sin(staggered*2*math.Pi*w.cfg.Frequency+e.Phase)

	return ElementState{
		TranslateX: easing.Lerp(w.cfg.TravelStart, w.cfg.TravelEnd, eased),
		TranslateY: e.OffsetY + undulation + e.Slope*staggered,
		Scale:      easing.Lerp(e.StartScale, e.EndScale, staggered),
		Opacity:    fadeOpacity(easing.Clamp01(e.Opacity), staggered, w.cfg.FadeStart),
	}
}
