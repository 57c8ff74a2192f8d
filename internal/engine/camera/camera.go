// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pcdview/pkg/math"
)

// Perspective is a perspective camera positioned in world space.
// Its orientation is set with LookAt.
type Perspective struct {
	Fov    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	position math.Vec3
	up       math.Vec3
	target   math.Vec3
	view     math.Mat4
}

// NewPerspective creates a camera at the origin with +Y up, looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	c := &Perspective{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		up:     math.Vec3{X: 0, Y: 1, Z: 0},
		target: math.Vec3{X: 0, Y: 0, Z: -1},
	}
	c.LookAt(c.target)
	return c
}

// Position returns the camera position in world space.
func (c *Perspective) Position() math.Vec3 {
	return c.position
}

// SetPosition moves the camera. The view matrix is refreshed on the next LookAt.
func (c *Perspective) SetPosition(p math.Vec3) {
	c.position = p
}

// Up returns the camera up direction.
func (c *Perspective) Up() math.Vec3 {
	return c.up
}

// SetUp sets the camera up direction.
func (c *Perspective) SetUp(u math.Vec3) {
	c.up = u
}

// Target returns the point passed to the last LookAt.
func (c *Perspective) Target() math.Vec3 {
	return c.target
}

// LookAt orients the camera towards target using the current up direction.
func (c *Perspective) LookAt(target math.Vec3) {
	c.target = target
	if target == c.position {
		return
	}
	c.view = math.LookAt(c.position, target, c.up)
}

// SetAspect updates the aspect ratio after a viewport resize.
func (c *Perspective) SetAspect(width, height int) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ViewMatrix returns the view matrix computed by the last LookAt.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return c.view
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.Fov*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.view)
}
