package view

import "github.com/ivlev/scrollwave/internal/motif"

// FakeElement records engine writes for inspection. Used by the state
// machine tests; kept in the package proper so every package can share it,
// like the mock time provider pattern.
type FakeElement struct {
	State       motif.ElementState
	Visible     bool
	StateWrites int
}

func (e *FakeElement) SetState(st motif.ElementState) {
	e.State = st
	e.StateWrites++
}

func (e *FakeElement) SetVisible(visible bool) { e.Visible = visible }

// Fake is a scripted View: fixed element collections, settable geometry,
// and an event bus driven by Dispatch. SetScrollTop echoes a scroll event
// when EchoScroll is set, the way a real scroll container does.
type Fake struct {
	bus

	SlideElems      []*FakeElement
	TransitionElems [][]*FakeElement
	Progress        *FakeElement

	Scroll       float64
	Viewport     float64
	Content      float64
	ScrollWrites []float64
	EchoScroll   bool
}

// NewFake builds a fake with slideCount slides, transitionCount transitions
// of elementsPer motif elements each, and the given geometry.
func NewFake(slideCount, transitionCount, elementsPer int, viewportH, contentH float64) *Fake {
	f := &Fake{
		Progress: &FakeElement{},
		Viewport: viewportH,
		Content:  contentH,
	}
	for i := 0; i < slideCount; i++ {
		f.SlideElems = append(f.SlideElems, &FakeElement{})
	}
	for i := 0; i < transitionCount; i++ {
		row := make([]*FakeElement, elementsPer)
		for j := range row {
			row[j] = &FakeElement{}
		}
		f.TransitionElems = append(f.TransitionElems, row)
	}
	return f
}

func (f *Fake) Slides() []Element {
	out := make([]Element, len(f.SlideElems))
	for i, e := range f.SlideElems {
		out[i] = e
	}
	return out
}

func (f *Fake) TransitionElements() [][]Element {
	out := make([][]Element, len(f.TransitionElems))
	for i, row := range f.TransitionElems {
		elems := make([]Element, len(row))
		for j, e := range row {
			elems[j] = e
		}
		out[i] = elems
	}
	return out
}

func (f *Fake) ProgressBar() Element {
	if f.Progress == nil {
		return nil
	}
	return f.Progress
}

func (f *Fake) ScrollTop() float64 { return f.Scroll }

func (f *Fake) SetScrollTop(offset float64) {
	f.Scroll = offset
	f.ScrollWrites = append(f.ScrollWrites, offset)
	if f.EchoScroll {
		f.Dispatch(Event{Kind: EventScroll})
	}
}

func (f *Fake) ViewportHeight() float64 { return f.Viewport }
func (f *Fake) ContentHeight() float64  { return f.Content }
