package view

import "github.com/ivlev/scrollwave/internal/motif"

// EventKind enumerates the window-level events the hosting layer forwards
// to the engine.
type EventKind int

const (
	EventScroll EventKind = iota
	EventResize
	EventWheel
	EventTouchStart
	EventTouchEnd
	EventTouchCancel
	EventMouseDown
	EventMouseUp
	EventKeyDown
)

// Event is a minimal input event record. The engine only cares about the
// kind; hosts may attach a payload for their own listeners.
type Event struct {
	Kind EventKind
}

// Element is a visual handle the engine writes to: a slide's text block, a
// motif element, or the progress bar. Implementations must tolerate writes
// after teardown of their backing surface.
type Element interface {
	// SetState applies transform and opacity in one write. Translations are
	// viewport fractions; the host converts to its own units.
	SetState(st motif.ElementState)
	// SetVisible toggles the pointer-interaction marker. Hidden slides must
	// not receive interaction; enforcing that is the host's concern.
	SetVisible(visible bool)
}

// View is the engine's window onto the hosting layer: ordered element
// collections, scroll geometry, and an event source. All handle collections
// are supplied once and stay fixed for the controller's lifetime.
type View interface {
	// Slides returns the ordered slide content handles.
	Slides() []Element
	// TransitionElements returns, per transition, the ordered motif element
	// handles. The expected shape is len == len(Slides())-1.
	TransitionElements() [][]Element
	// ProgressBar returns the optional progress indicator handle, or nil.
	ProgressBar() Element

	ScrollTop() float64
	SetScrollTop(offset float64)
	ViewportHeight() float64
	ContentHeight() float64

	// On subscribes fn to an event kind and returns its unsubscribe func.
	On(kind EventKind, fn func(Event)) (off func())
}

// MaxScroll returns the scrollable range of a view, never negative.
func MaxScroll(v View) float64 {
	max := v.ContentHeight() - v.ViewportHeight()
	if max < 0 {
		return 0
	}
	return max
}
