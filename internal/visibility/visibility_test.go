package visibility

import (
	"math"
	"testing"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/segment"
)

func boundaryConfig() config.Config {
	cfg := config.Default()
	cfg.LeadingEdge = 0.4
	cfg.TrailingEdge = 0.6
	return cfg
}

func TestOpacitiesBoundaryScenario(t *testing.T) {
	// Three slides, two transitions, leading 0.4 / trailing 0.6.
	calc := NewCalculator(boundaryConfig(), 3)

	// At progress 0 (transition 0, within 0): slide 0 fully visible.
	ops := calc.Opacities(segment.Info{SlideIndex: 0, TransitionIndex: 0, Within: 0})
	assertOpacities(t, "start", ops, []float64{1, 0, 0})

	// At the midpoint of transition 0 the motif covers the viewport center:
	// both neighboring slides fully hidden.
	ops = calc.Opacities(segment.Info{SlideIndex: 0, TransitionIndex: 0, Within: 0.5})
	assertOpacities(t, "covered midpoint", ops, []float64{0, 0, 0})

	// At within=1 on transition 0 the incoming slide is fully revealed.
	ops = calc.Opacities(segment.Info{SlideIndex: 0, TransitionIndex: 0, Within: 1})
	assertOpacities(t, "revealed", ops, []float64{0, 1, 0})
}

func TestOpacitiesDwellOverridesCurves(t *testing.T) {
	calc := NewCalculator(boundaryConfig(), 3)

	for idx := 0; idx < 3; idx++ {
		ops := calc.Opacities(segment.Info{InDwell: true, SlideIndex: idx, TransitionIndex: -1, Within: 1})
		for i, op := range ops {
			want := 0.0
			if i == idx {
				want = 1.0
			}
			if math.Abs(op-want) > 1e-9 {
				t.Errorf("dwell on %d: slide %d opacity = %v, expected %v", idx, i, op, want)
			}
		}
	}
}

func TestOutgoingFadeMonotonic(t *testing.T) {
	calc := NewCalculator(boundaryConfig(), 3)

	prev := math.Inf(1)
	for i := 0; i <= 100; i++ {
		within := float64(i) / 100
		op := calc.Opacities(segment.Info{SlideIndex: 0, TransitionIndex: 0, Within: within})[0]
		if op > prev+1e-12 {
			t.Fatalf("outgoing opacity increased at within=%v: %v after %v", within, op, prev)
		}
		prev = op
	}
}

func TestIncomingRamp(t *testing.T) {
	calc := NewCalculator(boundaryConfig(), 3)

	tests := []struct {
		within   float64
		expected float64
	}{
		{0.0, 0.0},
		{0.6, 0.0}, // exactly at the trailing edge
		{0.8, 0.5}, // halfway through the ramp
		{1.0, 1.0},
	}

	for _, tt := range tests {
		op := calc.Opacities(segment.Info{SlideIndex: 0, TransitionIndex: 0, Within: tt.within})[1]
		if math.Abs(op-tt.expected) > 1e-9 {
			t.Errorf("incoming at within=%v: opacity = %v, expected %v", tt.within, op, tt.expected)
		}
	}
}

func TestNonNeighborSlidesHidden(t *testing.T) {
	calc := NewCalculator(boundaryConfig(), 5)

	ops := calc.Opacities(segment.Info{SlideIndex: 1, TransitionIndex: 1, Within: 0.5})
	for _, i := range []int{0, 3, 4} {
		if ops[i] != 0 {
			t.Errorf("slide %d opacity = %v, expected 0", i, ops[i])
		}
	}
}

func TestOpacitiesZeroSlides(t *testing.T) {
	calc := NewCalculator(boundaryConfig(), 0)
	if got := calc.Opacities(segment.Info{InDwell: true, SlideIndex: 0, TransitionIndex: -1}); len(got) != 0 {
		t.Errorf("expected empty opacity slice, got %v", got)
	}
}

func assertOpacities(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d opacities, expected %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: slide %d opacity = %v, expected %v", name, i, got[i], want[i])
		}
	}
}
