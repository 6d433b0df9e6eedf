package motif

import (
	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/easing"
)

// ElementState is the computed visual state for one motif element.
// Translations are fractions of the viewport (X in widths, Y in heights);
// the host view converts them to pixels.
type ElementState struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	Opacity    float64
}

// Motif computes per-element states for the motif belonging to one
// transition, given the active transition index and the within-transition
// progress. Implementations are stateless; all motion derives from the
// arguments and the immutable configuration.
type Motif interface {
	// States returns one state per motif element for transition t.
	States(t, active int, within float64) []ElementState
	// ElementCount reports how many elements the motif drives.
	ElementCount() int
}

// New creates a motif for the preset's variant: a wave set, or the
// degenerate single-element wipe.
func New(cfg config.Config, preset Preset) Motif {
	if preset.Variant == VariantWipe {
		return NewWipe(cfg)
	}
	return NewWave(cfg, preset.Elements)
}

// staggeredProgress applies a per-element stagger to the transition's
// overall progress. Stagger is clamped to [0,1]; a stagger of 1 collapses
// the element's motion to a step at the transition end.
func staggeredProgress(within, stagger float64) float64 {
	s := easing.Clamp01(stagger)
	if s >= 1 {
		if within >= 1 {
			return 1
		}
		return 0
	}
	return easing.Clamp01((within - s) / (1 - s))
}

// fadeOpacity holds base opacity until fadeStart of the staggered progress,
// then fades linearly to zero by progress 1.
func fadeOpacity(base, staggered, fadeStart float64) float64 {
	fs := easing.Clamp01(fadeStart)
	if staggered <= fs {
		return base
	}
	if fs >= 1 {
		return base
	}
	return base * (1 - (staggered-fs)/(1-fs))
}
