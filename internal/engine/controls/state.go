package controls

// State is the current interaction mode of a Trackball.
type State int

const (
	StateNone State = iota - 1
	StateRotate
	StateZoom
	StatePan
	StateTouchRotate
	StateTouchZoomPan
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRotate:
		return "rotate"
	case StateZoom:
		return "zoom"
	case StatePan:
		return "pan"
	case StateTouchRotate:
		return "touch-rotate"
	case StateTouchZoomPan:
		return "touch-zoom-pan"
	}
	return "unknown"
}

// stateForButton maps a mouse button to the mode it starts.
// Left rotates, middle zooms, right pans.
func stateForButton(button int) (State, bool) {
	s := State(button)
	if s < StateRotate || s > StatePan {
		return StateNone, false
	}
	return s, true
}
