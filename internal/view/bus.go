package view

// handler boxes a callback so unsubscribing can tombstone it in place.
type handler struct {
	fn      func(Event)
	removed bool
}

// bus is a minimal event fan-out shared by the in-process views.
type bus struct {
	handlers map[EventKind][]*handler
}

func (b *bus) On(kind EventKind, fn func(Event)) func() {
	if b.handlers == nil {
		b.handlers = make(map[EventKind][]*handler)
	}
	h := &handler{fn: fn}
	b.handlers[kind] = append(b.handlers[kind], h)
	return func() { h.removed = true }
}

// Dispatch delivers an event to the live subscribers of its kind.
func (b *bus) Dispatch(ev Event) {
	for _, h := range b.handlers[ev.Kind] {
		if !h.removed {
			h.fn(ev)
		}
	}
}

// ListenerCount reports live subscriptions for an event kind.
func (b *bus) ListenerCount(kind EventKind) int {
	n := 0
	for _, h := range b.handlers[kind] {
		if !h.removed {
			n++
		}
	}
	return n
}
