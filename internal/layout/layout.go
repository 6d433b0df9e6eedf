package layout

import (
	"math"

	"github.com/ivlev/scrollwave/internal/easing"
)

// Layout describes how slides and the transitions between them divide the
// overall scroll progress range. Transitions are laid out contiguously;
// dwelling on a slide is expressed by the edge thresholds inside a
// transition, not by a separate span.
type Layout struct {
	TotalSlides      int
	TotalTransitions int
}

// New creates a Layout for the given slide and transition counts.
func New(totalSlides, totalTransitions int) Layout {
	return Layout{TotalSlides: totalSlides, TotalTransitions: totalTransitions}
}

// TransitionSpan returns the progress fraction occupied by one transition.
// With zero transitions the whole range is a single dwell, so the span is 1.
func (l Layout) TransitionSpan() float64 {
	if l.TotalTransitions <= 0 {
		return 1
	}
	return 1 / float64(l.TotalTransitions)
}

// SlideCenter returns the overall progress at which slide i sits centered.
func (l Layout) SlideCenter(i int) float64 {
	if l.TotalTransitions <= 0 {
		return 0
	}
	return easing.Clamp01(float64(i) / float64(l.TotalTransitions))
}

// NearestCenterTowards returns the slide center minimizing
// |progress − center + bias| over all slide centers. A positive bias pulls
// the choice toward the next slide, a negative one toward the previous;
// this is an asymmetric tie-break, not a plain nearest-neighbor search.
func (l Layout) NearestCenterTowards(progress, bias float64) float64 {
	best := 0.0
	bestDist := math.Inf(1)
	for i := 0; i < l.TotalSlides; i++ {
		center := l.SlideCenter(i)
		dist := math.Abs(progress - center + bias)
		if dist < bestDist {
			bestDist = dist
			best = center
		}
	}
	return best
}
