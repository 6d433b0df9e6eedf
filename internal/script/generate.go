package script

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/layout"
)

// Generator builds walkthrough scripts that visit every slide in order.
type Generator struct {
	DragDuration float64 // seconds per transition drag
	ReadPause    float64 // seconds spent resting on each slide
	Undershoot   float64 // fraction of a transition span left for the snap to cover
}

// NewGenerator creates a Generator with default pacing
func NewGenerator() *Generator {
	return &Generator{
		DragDuration: 1.5,
		ReadPause:    2.0,
		Undershoot:   0.06,
	}
}

// Walkthrough generates a session that drags through every transition.
// All drags but the last stop slightly short of the slide center so the
// idle snap finishes the approach; on the next-to-last transition (when
// there are at least two) a wheel impulse lands mid-snap to exercise
// interruption.
// Drags imply a press for their duration, so no explicit press/release
// pairs are emitted here.
func (g *Generator) Walkthrough(lay layout.Layout, cfg config.Config) (*Script, error) {
	if lay.TotalSlides <= 0 {
		return nil, fmt.Errorf("no slides to walk through")
	}

	idle := cfg.GravityIdleDelay.Seconds()
	snap := cfg.GravityDuration.Seconds()

	interrupted := -1
	if lay.TotalTransitions >= 2 {
		interrupted = lay.TotalTransitions - 2
	}

	var gestures []Gesture
	t := g.ReadPause

	for i := 0; i < lay.TotalTransitions; i++ {
		target := lay.SlideCenter(i + 1)
		stop := target
		if i < lay.TotalTransitions-1 {
			stop = target - g.Undershoot*lay.TransitionSpan()
		}

		gestures = append(gestures, Gesture{
			At:       t,
			Kind:     KindDrag,
			To:       stop,
			Duration: g.DragDuration,
		})
		t += g.DragDuration

		if i == interrupted {
			// Knock the snap off course halfway through, then settle by hand.
			t += idle + snap/2
			gestures = append(gestures, Gesture{At: t, Kind: KindWheel})
			t += 0.5
			gestures = append(gestures, Gesture{
				At:       t,
				Kind:     KindDrag,
				To:       target,
				Duration: g.DragDuration / 2,
			})
			t += g.DragDuration / 2
		}

		t += idle + snap + g.ReadPause
	}

	return &Script{Version: "1.0", Gestures: gestures}, nil
}

// GeneratePath creates a timestamped script filename
func GeneratePath() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("scripts", fmt.Sprintf("session_%s.yaml", timestamp))
}
