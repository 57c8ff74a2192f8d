package input

// Rect is an area in page coordinates.
type Rect struct {
	Left, Top, Width, Height float32
}

// Handler receives events of the type it was subscribed for.
type Handler func(e *Event)

// Subscription identifies one Subscribe call.
type Subscription struct {
	Type EventType
	id   uint64
}

// Valid reports whether the subscription came from Subscribe.
func (s Subscription) Valid() bool {
	return s.id != 0
}

// Surface is an input area that delivers events to subscribers.
type Surface interface {
	Subscribe(t EventType, h Handler) Subscription
	Unsubscribe(s Subscription)
	Bounds() Rect
}

// Document is implemented by surfaces embedded in a scrollable page.
// ScrollOffset is the page scroll position; ClientOffset is the border width
// of the owning document element.
type Document interface {
	ScrollOffset() (x, y float32)
	ClientOffset() (left, top float32)
}

type entry struct {
	id uint64
	h  Handler
}

// Dispatcher is a Surface backed by an in-process subscriber table.
// It is not safe for concurrent use; events are dispatched on the caller's goroutine.
type Dispatcher struct {
	bounds Rect
	nextID uint64
	subs   map[EventType][]entry
}

// NewDispatcher creates a dispatcher covering bounds.
func NewDispatcher(bounds Rect) *Dispatcher {
	return &Dispatcher{
		bounds: bounds,
		subs:   make(map[EventType][]entry),
	}
}

// Subscribe registers h for events of type t.
func (d *Dispatcher) Subscribe(t EventType, h Handler) Subscription {
	d.nextID++
	d.subs[t] = append(d.subs[t], entry{id: d.nextID, h: h})
	return Subscription{Type: t, id: d.nextID}
}

// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
func (d *Dispatcher) Unsubscribe(s Subscription) {
	list := d.subs[s.Type]
	for i, e := range list {
		if e.id == s.id {
			d.subs[s.Type] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of handlers registered for t.
func (d *Dispatcher) Subscribers(t EventType) int {
	return len(d.subs[t])
}

// Bounds returns the surface rectangle.
func (d *Dispatcher) Bounds() Rect {
	return d.bounds
}

// SetBounds updates the surface rectangle, typically after a window resize.
func (d *Dispatcher) SetBounds(r Rect) {
	d.bounds = r
}

// Dispatch delivers e to every subscriber of e.Type in subscription order and
// reports whether any of them prevented the default action.
func (d *Dispatcher) Dispatch(e *Event) bool {
	// Copy so handlers may unsubscribe while dispatching
	list := append([]entry(nil), d.subs[e.Type]...)
	for _, s := range list {
		s.h(e)
	}
	return e.DefaultPrevented()
}
