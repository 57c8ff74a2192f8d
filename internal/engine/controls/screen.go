package controls

import (
	"github.com/Faultbox/pcdview/internal/engine/input"
	"github.com/Faultbox/pcdview/pkg/math"
)

// screenRect is the input surface in page coordinates.
type screenRect = input.Rect

// degenerate reports whether normalizing against r would divide by zero.
func degenerate(r screenRect) bool {
	return r.Width == 0 || r.Height == 0
}

// mouseOnScreen maps a page position to [0,1] across the surface.
func mouseOnScreen(r screenRect, pageX, pageY float32) (math.Vec2, bool) {
	if degenerate(r) {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: (pageX - r.Left) / r.Width,
		Y: (pageY - r.Top) / r.Height,
	}, true
}

// mouseOnCircle maps a page position to [-1,1] around the surface center.
// Both axes are divided by the width.
func mouseOnCircle(r screenRect, pageX, pageY float32) (math.Vec2, bool) {
	if degenerate(r) {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: (pageX - r.Width*0.5 - r.Left) / (r.Width * 0.5),
		Y: (r.Height + 2*(r.Top-pageY)) / r.Width,
	}, true
}
