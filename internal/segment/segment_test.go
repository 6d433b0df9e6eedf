package segment

import (
	"math"
	"testing"

	"github.com/ivlev/scrollwave/internal/layout"
)

func TestLocate(t *testing.T) {
	calc := NewCalculator(layout.New(3, 2)) // spans: [0,0.5) and [0.5,1)

	tests := []struct {
		name       string
		progress   float64
		inDwell    bool
		slide      int
		transition int
		within     float64
	}{
		{"start", 0.0, false, 0, 0, 0.0},
		{"quarter into first", 0.125, false, 0, 0, 0.25},
		{"middle of first", 0.25, false, 0, 0, 0.5},
		{"start of second", 0.5, false, 1, 1, 0.0},
		{"middle of second", 0.75, false, 1, 1, 0.5},
		{"end", 1.0, true, 2, -1, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := calc.Locate(tt.progress)
			if info.InDwell != tt.inDwell {
				t.Errorf("InDwell = %v, expected %v", info.InDwell, tt.inDwell)
			}
			if info.SlideIndex != tt.slide {
				t.Errorf("SlideIndex = %d, expected %d", info.SlideIndex, tt.slide)
			}
			if info.TransitionIndex != tt.transition {
				t.Errorf("TransitionIndex = %d, expected %d", info.TransitionIndex, tt.transition)
			}
			if math.Abs(info.Within-tt.within) > 1e-9 {
				t.Errorf("Within = %v, expected %v", info.Within, tt.within)
			}
		})
	}
}

func TestLocateInvariants(t *testing.T) {
	calc := NewCalculator(layout.New(4, 3))

	for i := 0; i <= 1000; i++ {
		progress := float64(i) / 1000
		info := calc.Locate(progress)

		if info.Within < 0 || info.Within > 1 {
			t.Fatalf("progress %v: Within %v out of [0,1]", progress, info.Within)
		}

		// Exactly one of InDwell / valid TransitionIndex.
		validTransition := info.TransitionIndex >= 0 && info.TransitionIndex < 3
		if info.InDwell == validTransition {
			t.Fatalf("progress %v: InDwell=%v with TransitionIndex=%d", progress, info.InDwell, info.TransitionIndex)
		}
	}
}

func TestLocateMonotonic(t *testing.T) {
	calc := NewCalculator(layout.New(5, 4))

	prev := -1
	for i := 0; i <= 1000; i++ {
		info := calc.Locate(float64(i) / 1000)
		idx := info.TransitionIndex
		if info.InDwell {
			idx = calc.Layout.TotalTransitions // terminal dwell sorts after every transition
		}
		if idx < prev {
			t.Fatalf("active transition decreased: %d after %d at progress %v", idx, prev, float64(i)/1000)
		}
		prev = idx
	}
}

func TestLocateZeroTransitions(t *testing.T) {
	calc := NewCalculator(layout.New(1, 0))

	for _, progress := range []float64{0, 0.5, 1} {
		info := calc.Locate(progress)
		if !info.InDwell {
			t.Errorf("progress %v: expected dwell", progress)
		}
		if info.SlideIndex != 0 {
			t.Errorf("progress %v: SlideIndex = %d, expected 0", progress, info.SlideIndex)
		}
		if info.TransitionIndex != -1 {
			t.Errorf("progress %v: TransitionIndex = %d, expected -1", progress, info.TransitionIndex)
		}
	}
}
