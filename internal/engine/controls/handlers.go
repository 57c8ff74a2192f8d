package controls

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pcdview/internal/engine/input"
)

// Wheel sensitivity per unit of DeltaY.
const (
	wheelPixelScale = 0.00025
	wheelLineScale  = 0.01
	wheelPageScale  = 0.025
)

func (t *Trackball) active() bool {
	return t.Enabled && !t.disposed
}

func (t *Trackball) keyDown(e *input.Event) {
	if !t.active() {
		return
	}

	t.prevState = t.state
	if t.state != StateNone {
		return
	}

	if e.KeyCode == t.Keys[StateRotate] && !t.NoRotate {
		t.state = StateRotate
	}
	if e.KeyCode == t.Keys[StateZoom] && !t.NoZoom {
		t.state = StateZoom
	}
	if e.KeyCode == t.Keys[StatePan] && !t.NoPan {
		t.state = StatePan
	}
}

func (t *Trackball) keyUp(e *input.Event) {
	if !t.active() {
		return
	}
	t.state = t.prevState
}

func (t *Trackball) mouseDown(e *input.Event) {
	if !t.active() {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	if t.state == StateNone {
		s, ok := stateForButton(e.Button)
		if !ok {
			return
		}
		t.state = s
	}

	switch {
	case t.state == StateRotate && !t.NoRotate:
		if p, ok := mouseOnCircle(t.screen, e.PageX, e.PageY); ok {
			t.moveCurr = p
			t.movePrev = p
		}
	case t.state == StateZoom && !t.NoZoom:
		if p, ok := mouseOnScreen(t.screen, e.PageX, e.PageY); ok {
			t.zoomStart = p
			t.zoomEnd = p
		}
	case t.state == StatePan && !t.NoPan:
		if p, ok := mouseOnScreen(t.screen, e.PageX, e.PageY); ok {
			t.panStart = p
			t.panEnd = p
		}
	}

	t.events.publish(NotifyStart)
}

func (t *Trackball) mouseMove(e *input.Event) {
	if !t.active() {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	switch {
	case t.state == StateRotate && !t.NoRotate:
		if p, ok := mouseOnCircle(t.screen, e.PageX, e.PageY); ok {
			t.movePrev = t.moveCurr
			t.moveCurr = p
		}
	case t.state == StateZoom && !t.NoZoom:
		if p, ok := mouseOnScreen(t.screen, e.PageX, e.PageY); ok {
			t.zoomEnd = p
		}
	case t.state == StatePan && !t.NoPan:
		if p, ok := mouseOnScreen(t.screen, e.PageX, e.PageY); ok {
			t.panEnd = p
		}
	}
}

func (t *Trackball) mouseUp(e *input.Event) {
	if !t.active() {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	t.state = StateNone
	t.events.publish(NotifyEnd)
}

// mouseWheel zooms by a fixed step. A wheel tick is a complete gesture, so
// start and end are emitted together.
func (t *Trackball) mouseWheel(e *input.Event) {
	if !t.active() || t.NoZoom {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	switch e.DeltaMode {
	case input.DeltaPage:
		t.zoomStart.Y -= e.DeltaY * wheelPageScale
	case input.DeltaLine:
		t.zoomStart.Y -= e.DeltaY * wheelLineScale
	default:
		t.zoomStart.Y -= e.DeltaY * wheelPixelScale
	}

	t.events.publish(NotifyStart)
	t.events.publish(NotifyEnd)
}

func (t *Trackball) touchStart(e *input.Event) {
	if !t.active() || len(e.Touches) == 0 {
		return
	}
	e.PreventDefault()

	if len(e.Touches) == 1 {
		t.state = StateTouchRotate
		t.seedTouchRotate(e.Touches[0])
	} else {
		// Contacts beyond the first two are ignored
		t.state = StateTouchZoomPan
		d := touchDistance(e.Touches[0], e.Touches[1])
		t.touchZoomDistanceStart = d
		t.touchZoomDistanceEnd = d

		x, y := touchCenter(e.Touches[0], e.Touches[1])
		if p, ok := mouseOnScreen(t.screen, x, y); ok {
			t.panStart = p
			t.panEnd = p
		}
	}

	t.events.publish(NotifyStart)
}

func (t *Trackball) touchMove(e *input.Event) {
	if !t.active() || len(e.Touches) == 0 {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	if len(e.Touches) == 1 {
		if p, ok := mouseOnCircle(t.screen, e.Touches[0].PageX, e.Touches[0].PageY); ok {
			t.movePrev = t.moveCurr
			t.moveCurr = p
		}
		return
	}

	t.touchZoomDistanceEnd = touchDistance(e.Touches[0], e.Touches[1])
	x, y := touchCenter(e.Touches[0], e.Touches[1])
	if p, ok := mouseOnScreen(t.screen, x, y); ok {
		t.panEnd = p
	}
}

func (t *Trackball) touchEnd(e *input.Event) {
	if !t.active() {
		return
	}
	e.PreventDefault()

	switch len(e.Touches) {
	case 0:
		t.state = StateNone
	case 1:
		t.state = StateTouchRotate
		t.seedTouchRotate(e.Touches[0])
	}

	t.events.publish(NotifyEnd)
}

func (t *Trackball) contextMenu(e *input.Event) {
	if !t.active() {
		return
	}
	e.PreventDefault()
}

func (t *Trackball) seedTouchRotate(touch input.Touch) {
	if p, ok := mouseOnCircle(t.screen, touch.PageX, touch.PageY); ok {
		t.moveCurr = p
		t.movePrev = p
	}
}

func touchDistance(a, b input.Touch) float32 {
	dx := a.PageX - b.PageX
	dy := a.PageY - b.PageY
	return math32.Sqrt(dx*dx + dy*dy)
}

func touchCenter(a, b input.Touch) (x, y float32) {
	return (a.PageX + b.PageX) / 2, (a.PageY + b.PageY) / 2
}
