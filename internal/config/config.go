package config

import "time"

// Config holds the numeric thresholds and motion parameters of the
// transition engine. It is supplied once at construction and read-only for
// the controller's lifetime. Fractional fields are clamped to [0,1] at use
// sites rather than trusted from input.
type Config struct {
	// LeadingEdge and TrailingEdge are progress fractions marking when the
	// motif visually covers and then reveals the viewport center.
	// 0 <= LeadingEdge < TrailingEdge <= 1.
	LeadingEdge  float64
	TrailingEdge float64

	// OpacityTrigger is the motif travel position (same units as TravelStart/
	// TravelEnd) at which the outgoing slide's text begins to fade.
	OpacityTrigger float64

	// TravelStart and TravelEnd bound the horizontal motif travel, expressed
	// in viewport widths. Start sits before the viewport, End past it.
	TravelStart float64
	TravelEnd   float64

	// FadeStart is the fraction of an element's staggered progress after
	// which its opacity fades linearly to zero.
	FadeStart float64

	// Amplitude (viewport heights) and Frequency shape the wave undulation.
	Amplitude float64
	Frequency float64

	// Gravity timing. Bias biases the snap target toward the next (positive)
	// or previous (negative) slide. MinSnapDistance (pixels) suppresses
	// micro-jitter snaps.
	GravityIdleDelay time.Duration
	GravityDuration  time.Duration
	GravityBias      float64
	MinSnapDistance  float64

	// ResizeDebounce coalesces resize bursts into one trailing update.
	ResizeDebounce time.Duration

	// FPS drives the preview renderer and the live frame loop.
	FPS int
}

// Default returns the engine defaults. Every field can be overridden
// individually before handing the record to the controller.
func Default() Config {
	return Config{
		LeadingEdge:      0.4,
		TrailingEdge:     0.6,
		OpacityTrigger:   -1.0,
		TravelStart:      -1.3,
		TravelEnd:        1.3,
		FadeStart:        0.7,
		Amplitude:        0.04,
		Frequency:        1.0,
		GravityIdleDelay: 250 * time.Millisecond,
		GravityDuration:  600 * time.Millisecond,
		GravityBias:      0.0,
		MinSnapDistance:  2.0,
		ResizeDebounce:   150 * time.Millisecond,
		FPS:              30,
	}
}
