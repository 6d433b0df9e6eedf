package motif

import (
	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/easing"
)

// Wipe is the degenerate single-element motif: one rigid edge swept across
// the viewport with eased horizontal travel and no stagger, undulation or
// scaling.
type Wipe struct {
	cfg config.Config
}

// NewWipe creates a wipe motif.
func NewWipe(cfg config.Config) *Wipe {
	return &Wipe{cfg: cfg}
}

func (w *Wipe) ElementCount() int {
	return 1
}

func (w *Wipe) States(t, active int, within float64) []ElementState {
	st := ElementState{Scale: 1, Opacity: 1}
	switch {
	case active >= 0 && t < active:
		st.TranslateX = w.cfg.TravelEnd
	case t > active || active < 0:
		st.TranslateX = w.cfg.TravelStart
	default:
		st.TranslateX = easing.Lerp(w.cfg.TravelStart, w.cfg.TravelEnd, easing.Ease(easing.Clamp01(within)))
	}
	return []ElementState{st}
}
