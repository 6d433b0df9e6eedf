package layout

import (
	"math"
	"testing"
)

func TestTransitionSpan(t *testing.T) {
	tests := []struct {
		name        string
		slides      int
		transitions int
		expected    float64
	}{
		{"three slides", 3, 2, 0.5},
		{"five slides", 5, 4, 0.25},
		{"single slide", 1, 0, 1.0}, // degenerate: whole range is one dwell
		{"two slides", 2, 1, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.slides, tt.transitions)
			if got := l.TransitionSpan(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("TransitionSpan() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSlideCenter(t *testing.T) {
	l := New(3, 2)

	tests := []struct {
		index    int
		expected float64
	}{
		{0, 0.0},
		{1, 0.5},
		{2, 1.0},
		{3, 1.0}, // clamped past the last slide
	}

	for _, tt := range tests {
		if got := l.SlideCenter(tt.index); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("SlideCenter(%d) = %v, expected %v", tt.index, got, tt.expected)
		}
	}

	// Zero transitions: only center is 0.
	if got := New(1, 0).SlideCenter(0); got != 0 {
		t.Errorf("SlideCenter(0) with no transitions = %v, expected 0", got)
	}
}

func TestNearestCenterTowards(t *testing.T) {
	l := New(3, 2) // centers at 0, 0.5, 1

	tests := []struct {
		name     string
		progress float64
		bias     float64
		expected float64
	}{
		{"near first", 0.1, 0, 0.0},
		{"near middle", 0.46, 0, 0.5},
		{"near last", 0.9, 0, 1.0},
		{"exact center", 0.5, 0, 0.5},
		{"positive bias pulls forward", 0.24, 0.05, 0.5},
		{"negative bias pulls back", 0.26, -0.05, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.NearestCenterTowards(tt.progress, tt.bias); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("NearestCenterTowards(%v, %v) = %v, expected %v", tt.progress, tt.bias, got, tt.expected)
			}
		})
	}
}
