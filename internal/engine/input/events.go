// Package input delivers pointer, touch, wheel and keyboard events to subscribers.
package input

// EventType identifies the kind of input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseDown
	EventMouseMove
	EventMouseUp
	EventWheel
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventContextMenu
)

var eventNames = [...]string{
	EventNone:        "none",
	EventQuit:        "quit",
	EventResize:      "resize",
	EventKeyDown:     "keydown",
	EventKeyUp:       "keyup",
	EventMouseDown:   "mousedown",
	EventMouseMove:   "mousemove",
	EventMouseUp:     "mouseup",
	EventWheel:       "wheel",
	EventTouchStart:  "touchstart",
	EventTouchMove:   "touchmove",
	EventTouchEnd:    "touchend",
	EventContextMenu: "contextmenu",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Mouse buttons, numbered the way pointer events number them.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// Key codes. Letters use their upper-case ASCII value.
const (
	KeyEscape = 27
	KeyA      = 'A'
	KeyD      = 'D'
	KeyO      = 'O'
	KeyP      = 'P'
	KeyR      = 'R'
	KeyS      = 'S'
	KeyF12    = 123
)

// Touch is one active contact point in page coordinates.
type Touch struct {
	ID    int64
	PageX float32
	PageY float32
}

// Event is a single input event.
type Event struct {
	Type EventType

	// Pointer position in page coordinates
	PageX float32
	PageY float32

	Button  int
	KeyCode int

	DeltaY    float32
	DeltaMode DeltaMode

	// Touches currently on the surface, in the order they went down
	Touches []Touch

	// Surface size for EventResize
	Width  int
	Height int

	defaultPrevented bool
	propagationStop  bool
}

// PreventDefault marks the event as consumed so the host skips its own handling.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation marks the event as not to be forwarded beyond this surface.
func (e *Event) StopPropagation() {
	e.propagationStop = true
}

// PropagationStopped reports whether a handler called StopPropagation.
func (e *Event) PropagationStopped() bool {
	return e.propagationStop
}
