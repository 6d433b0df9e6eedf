package script

// Script is a recorded or generated scroll session: a timed sequence of
// user gestures the previewer replays against the engine.
type Script struct {
	Version  string    `yaml:"version"`
	Gestures []Gesture `yaml:"gestures"`
}

// Gesture kinds understood by the session driver.
const (
	KindDrag    = "drag"    // smooth scroll toward a target progress
	KindWheel   = "wheel"   // single wheel impulse
	KindPress   = "press"   // finger/button down
	KindRelease = "release" // finger/button up
)

// Gesture is one timed input. At is seconds from session start. Drags
// scroll from wherever the session currently is to To (overall progress)
// over Duration seconds; the other kinds are instantaneous.
type Gesture struct {
	At       float64 `yaml:"at"`
	Kind     string  `yaml:"kind"`
	To       float64 `yaml:"to,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
}

// End returns the second at which the gesture finishes.
func (g Gesture) End() float64 {
	if g.Kind == KindDrag {
		return g.At + g.Duration
	}
	return g.At
}

// Duration returns the total session length: the last gesture's end plus a
// settle tail long enough for an idle snap to play out.
func (s *Script) Duration(settleTail float64) float64 {
	end := 0.0
	for _, g := range s.Gestures {
		if e := g.End(); e > end {
			end = e
		}
	}
	return end + settleTail
}
