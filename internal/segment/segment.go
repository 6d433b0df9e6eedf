package segment

import (
	"github.com/ivlev/scrollwave/internal/easing"
	"github.com/ivlev/scrollwave/internal/layout"
)

// Info is the structured position derived from a single overall scroll
// progress value. It is recomputed every frame and never persisted.
// Exactly one of InDwell or a valid TransitionIndex holds.
type Info struct {
	InDwell         bool
	SlideIndex      int
	TransitionIndex int // -1 while dwelling
	Within          float64
}

// Calculator maps overall scroll progress to an Info.
type Calculator struct {
	Layout layout.Layout
}

// NewCalculator creates a Calculator over the given layout.
func NewCalculator(l layout.Layout) Calculator {
	return Calculator{Layout: l}
}

// Locate maps overallProgress (pre-clamped to [0,1] by the caller) to a
// segment position. Transition i occupies [i·span, (i+1)·span); progress at
// or past the end of the last transition dwells on the final slide with
// Within = 1. Zero transitions yield a single dwell covering the whole range.
func (c Calculator) Locate(overallProgress float64) Info {
	n := c.Layout.TotalTransitions
	if n <= 0 {
		return Info{InDwell: true, SlideIndex: 0, TransitionIndex: -1, Within: 0}
	}

	span := c.Layout.TransitionSpan()
	for i := 0; i < n; i++ {
		start := float64(i) * span
		end := start + span
		if overallProgress >= start && overallProgress < end {
			return Info{
				SlideIndex:      i,
				TransitionIndex: i,
				Within:          easing.Clamp01((overallProgress - start) / span),
			}
		}
	}

	// Past the last transition: settled on the final slide.
	return Info{
		InDwell:         true,
		SlideIndex:      n,
		TransitionIndex: -1,
		Within:          1,
	}
}
