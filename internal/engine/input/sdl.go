package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// wheelLines is how many lines one wheel notch scrolls.
const wheelLines = 3

// touchMouseID marks mouse events SDL synthesizes from touches.
const touchMouseID = ^uint32(0)

// SDLPump polls SDL events and dispatches them as input events.
type SDLPump struct {
	d       *Dispatcher
	touches touchTable
	width   int
	height  int
}

// NewSDLPump creates a pump delivering to d for a window of the given size.
func NewSDLPump(d *Dispatcher, width, height int) *SDLPump {
	return &SDLPump{d: d, width: width, height: height}
}

// Poll drains the SDL queue. Returns true if the window should close.
func (p *SDLPump) Poll() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		for _, e := range p.translate(event) {
			if e.Type == EventQuit {
				quit = true
			}
			p.d.Dispatch(&e)
		}
	}
	return quit
}

// translate converts one SDL event into zero or more input events.
func (p *SDLPump) translate(event sdl.Event) []Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return []Event{{Type: EventQuit}}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			p.width, p.height = int(e.Data1), int(e.Data2)
			p.d.SetBounds(Rect{Width: float32(p.width), Height: float32(p.height)})
			return []Event{{Type: EventResize, Width: p.width, Height: p.height}}
		}

	case *sdl.KeyboardEvent:
		// Held keys auto-repeat; only the first press changes state
		if e.Repeat != 0 {
			return nil
		}
		code := sdlKeyCode(e.Keysym.Sym)
		if e.Type == sdl.KEYDOWN {
			return []Event{{Type: EventKeyDown, KeyCode: code}}
		}
		return []Event{{Type: EventKeyUp, KeyCode: code}}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return nil
		}
		return []Event{{Type: EventMouseMove, PageX: float32(e.X), PageY: float32(e.Y)}}

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID {
			return nil
		}
		ev := Event{
			PageX:  float32(e.X),
			PageY:  float32(e.Y),
			Button: int(e.Button) - 1,
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = EventMouseDown
			if e.Button == sdl.BUTTON_RIGHT {
				return []Event{ev, {Type: EventContextMenu, PageX: ev.PageX, PageY: ev.PageY}}
			}
			return []Event{ev}
		}
		ev.Type = EventMouseUp
		return []Event{ev}

	case *sdl.MouseWheelEvent:
		if e.Y == 0 {
			return nil
		}
		notches := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			notches = -notches
		}
		// SDL reports positive Y away from the user; page deltas grow downwards
		return []Event{{Type: EventWheel, DeltaY: -notches * wheelLines, DeltaMode: DeltaLine}}

	case *sdl.TouchFingerEvent:
		id := int64(e.FingerID)
		x, y := e.X*float32(p.width), e.Y*float32(p.height)
		switch e.Type {
		case sdl.FINGERDOWN:
			p.touches.down(id, x, y)
			return []Event{{Type: EventTouchStart, Touches: p.touches.snapshot()}}
		case sdl.FINGERMOTION:
			if p.touches.move(id, x, y) {
				return []Event{{Type: EventTouchMove, Touches: p.touches.snapshot()}}
			}
		case sdl.FINGERUP:
			p.touches.up(id)
			return []Event{{Type: EventTouchEnd, Touches: p.touches.snapshot()}}
		}
	}
	return nil
}

func sdlKeyCode(sym sdl.Keycode) int {
	switch sym {
	case sdl.K_ESCAPE:
		return KeyEscape
	case sdl.K_F12:
		return KeyF12
	}
	return keyCode(int(sym))
}
