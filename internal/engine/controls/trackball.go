// Package controls implements a trackball camera controller.
//
// A Trackball turns pointer, touch, wheel and keyboard input into an orbit,
// zoom and pan of a camera around a target point. Input handlers only record
// samples; the camera moves in Update, which the render loop calls once per
// frame. Without StaticMoving, rotation, zoom and pan keep easing out over
// several frames after the input stops.
package controls

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/pcdview/internal/engine/input"
	"github.com/Faultbox/pcdview/internal/logger"
	"github.com/Faultbox/pcdview/pkg/math"
)

// changeEpsilon is the squared distance the camera must move for NotifyChange.
const changeEpsilon = 0.000001

// Camera is the camera a Trackball steers. The controller never owns it.
type Camera interface {
	Position() math.Vec3
	SetPosition(p math.Vec3)
	Up() math.Vec3
	SetUp(u math.Vec3)
	LookAt(target math.Vec3)
}

// Trackball orbits, zooms and pans a Camera around Target.
// All methods must be called from the goroutine that dispatches input.
type Trackball struct {
	// Enabled gates all input handling. Update keeps running when disabled.
	Enabled bool

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	NoRotate bool
	NoZoom   bool
	NoPan    bool

	// StaticMoving applies each input delta in a single frame.
	StaticMoving bool
	// DynamicDampingFactor is the share of the remaining delta consumed per
	// frame when StaticMoving is off. Must lie in [0,1).
	DynamicDampingFactor float32

	MinDistance float32
	MaxDistance float32

	// Keys holds the key codes for rotate, zoom and pan, indexed by State.
	Keys [3]int

	camera  Camera
	surface input.Surface
	subs    []input.Subscription
	events  notifier
	log     *zap.Logger

	screen screenRect
	target math.Vec3
	eye    math.Vec3

	lastPosition math.Vec3

	state     State
	prevState State

	movePrev math.Vec2
	moveCurr math.Vec2

	lastAxis  math.Vec3
	lastAngle float32

	zoomStart math.Vec2
	zoomEnd   math.Vec2

	touchZoomDistanceStart float32
	touchZoomDistanceEnd   float32

	panStart math.Vec2
	panEnd   math.Vec2

	target0   math.Vec3
	position0 math.Vec3
	up0       math.Vec3

	disposed bool
}

// NewTrackball creates a controller for cam that listens to surface.
// The camera is oriented towards the origin before NewTrackball returns.
func NewTrackball(cam Camera, surface input.Surface) *Trackball {
	t := &Trackball{
		Enabled:   true,
		camera:    cam,
		surface:   surface,
		log:       logger.Named("controls"),
		state:     StateNone,
		prevState: StateNone,
	}
	t.ApplySettings(DefaultSettings())

	t.target0 = t.target
	t.position0 = cam.Position()
	t.up0 = cam.Up()

	t.subscribe()
	t.HandleResize()
	t.Update()

	return t
}

// subscribe registers one handler per event type and keeps the tokens for Dispose.
func (t *Trackball) subscribe() {
	handlers := []struct {
		typ input.EventType
		h   input.Handler
	}{
		{input.EventContextMenu, t.contextMenu},
		{input.EventMouseDown, t.mouseDown},
		{input.EventWheel, t.mouseWheel},
		{input.EventTouchStart, t.touchStart},
		{input.EventTouchEnd, t.touchEnd},
		{input.EventTouchMove, t.touchMove},
		{input.EventKeyDown, t.keyDown},
		{input.EventKeyUp, t.keyUp},
		{input.EventMouseMove, t.mouseMove},
		{input.EventMouseUp, t.mouseUp},
	}
	t.subs = make([]input.Subscription, 0, len(handlers))
	for _, h := range handlers {
		t.subs = append(t.subs, t.surface.Subscribe(h.typ, h.h))
	}
}

// On registers fn for notifications of the given kind.
func (t *Trackball) On(kind Notification, fn Listener) ListenerID {
	return t.events.subscribe(kind, fn)
}

// Off removes a listener registered with On.
func (t *Trackball) Off(id ListenerID) {
	t.events.unsubscribe(id)
}

// State returns the current interaction mode.
func (t *Trackball) State() State {
	return t.state
}

// Target returns the point the camera orbits.
func (t *Trackball) Target() math.Vec3 {
	return t.target
}

// SetTarget moves the orbit center. The camera turns towards it on the next Update.
func (t *Trackball) SetTarget(p math.Vec3) {
	t.target = p
}

// Screen returns the surface rectangle used to normalize pointer positions.
func (t *Trackball) Screen() input.Rect {
	return t.screen
}

// HandleResize recomputes the surface rectangle. Call it after the surface
// changes size or position.
func (t *Trackball) HandleResize() {
	r := t.surface.Bounds()
	if doc, ok := t.surface.(input.Document); ok {
		sx, sy := doc.ScrollOffset()
		cl, ct := doc.ClientOffset()
		r.Left += sx - cl
		r.Top += sy - ct
	}
	t.screen = r

	t.log.Debug("screen resized",
		zap.Float32("left", r.Left),
		zap.Float32("top", r.Top),
		zap.Float32("width", r.Width),
		zap.Float32("height", r.Height),
	)
}

// Update applies the pending rotation, zoom and pan to the camera.
// Call it once per frame, also when no input arrived.
func (t *Trackball) Update() {
	if t.disposed {
		return
	}

	t.eye = t.camera.Position().Sub(t.target)

	if !t.NoRotate {
		t.rotateCamera()
	}
	if !t.NoZoom {
		t.zoomCamera()
	}
	if !t.NoPan {
		t.panCamera()
	}

	t.camera.SetPosition(t.target.Add(t.eye))
	t.checkDistances()
	t.camera.LookAt(t.target)

	if pos := t.camera.Position(); t.lastPosition.DistanceSq(pos) > changeEpsilon {
		t.events.publish(NotifyChange)
		t.lastPosition = pos
	}
}

func (t *Trackball) rotateCamera() {
	moveDirection := math.Vec3{X: t.moveCurr.X - t.movePrev.X, Y: t.moveCurr.Y - t.movePrev.Y}
	angle := moveDirection.Length()

	if angle != 0 {
		t.eye = t.camera.Position().Sub(t.target)

		eyeDirection := t.eye.Normalize()
		objectUp := t.camera.Up().Normalize()
		objectSideways := objectUp.Cross(eyeDirection).Normalize()

		objectUp = objectUp.SetLength(t.moveCurr.Y - t.movePrev.Y)
		objectSideways = objectSideways.SetLength(t.moveCurr.X - t.movePrev.X)

		moveDirection = objectUp.Add(objectSideways)
		axis := moveDirection.Cross(t.eye).Normalize()

		angle *= t.RotateSpeed
		t.applyRotation(axis, angle)

		t.lastAxis = axis
		t.lastAngle = angle
	} else if !t.StaticMoving && t.lastAngle != 0 {
		t.lastAngle *= math32.Sqrt(1.0 - t.DynamicDampingFactor)
		t.eye = t.camera.Position().Sub(t.target)
		t.applyRotation(t.lastAxis, t.lastAngle)
	}

	t.movePrev = t.moveCurr
}

// applyRotation turns the eye vector and the camera up direction together.
func (t *Trackball) applyRotation(axis math.Vec3, angle float32) {
	q := math.QuatFromAxisAngle(axis, angle).Normalize()
	t.eye = q.Rotate(t.eye)
	t.camera.SetUp(q.Rotate(t.camera.Up()))
}

func (t *Trackball) zoomCamera() {
	if t.state == StateTouchZoomPan {
		// Pinch zoom is applied in full. Contacts that start or end on the
		// same spot give a zero or infinite factor, which is skipped.
		factor := t.touchZoomDistanceStart / t.touchZoomDistanceEnd
		if factor > 0 && !math32.IsInf(factor, 1) {
			t.touchZoomDistanceStart = t.touchZoomDistanceEnd
			t.eye = t.eye.Scale(factor)
		}
		return
	}

	factor := 1.0 + (t.zoomEnd.Y-t.zoomStart.Y)*t.ZoomSpeed
	if factor != 1.0 && factor > 0.0 {
		t.eye = t.eye.Scale(factor)
	}

	if t.StaticMoving {
		t.zoomStart = t.zoomEnd
	} else {
		t.zoomStart.Y += (t.zoomEnd.Y - t.zoomStart.Y) * t.DynamicDampingFactor
	}
}

func (t *Trackball) panCamera() {
	mouseChange := t.panEnd.Sub(t.panStart)
	if mouseChange.IsZero() {
		return
	}

	mouseChange = mouseChange.Scale(t.eye.Length() * t.PanSpeed)
	up := t.camera.Up()
	pan := t.eye.Cross(up).SetLength(mouseChange.X)
	pan = pan.Add(up.SetLength(mouseChange.Y))

	t.camera.SetPosition(t.camera.Position().Add(pan))
	t.target = t.target.Add(pan)

	if t.StaticMoving {
		t.panStart = t.panEnd
	} else {
		t.panStart = t.panStart.Add(t.panEnd.Sub(t.panStart).Scale(t.DynamicDampingFactor))
	}
}

// checkDistances keeps the camera between MinDistance and MaxDistance from
// the target. A clamp discards any zoom still pending.
func (t *Trackball) checkDistances() {
	if t.NoZoom && t.NoPan {
		return
	}

	if t.eye.LengthSq() > t.MaxDistance*t.MaxDistance {
		t.eye = t.eye.SetLength(t.MaxDistance)
		t.camera.SetPosition(t.target.Add(t.eye))
		t.zoomStart = t.zoomEnd
	}

	if t.eye.LengthSq() < t.MinDistance*t.MinDistance {
		t.eye = t.eye.SetLength(t.MinDistance)
		t.camera.SetPosition(t.target.Add(t.eye))
		t.zoomStart = t.zoomEnd
	}
}

// Reset restores the target, camera position and up direction captured at
// construction.
func (t *Trackball) Reset() {
	if t.disposed {
		return
	}

	t.state = StateNone
	t.prevState = StateNone

	t.target = t.target0
	t.camera.SetPosition(t.position0)
	t.camera.SetUp(t.up0)

	t.eye = t.camera.Position().Sub(t.target)
	t.camera.LookAt(t.target)
	t.events.publish(NotifyChange)

	t.lastPosition = t.camera.Position()

	t.log.Debug("trackball reset", zap.Float32("distance", t.eye.Length()))
}

// SaveState makes the current target and camera pose the one Reset restores.
func (t *Trackball) SaveState() {
	t.target0 = t.target
	t.position0 = t.camera.Position()
	t.up0 = t.camera.Up()
}

// Dispose unsubscribes from the surface. The controller is inert afterwards.
func (t *Trackball) Dispose() {
	if t.disposed {
		return
	}
	for _, s := range t.subs {
		t.surface.Unsubscribe(s)
	}
	t.subs = nil
	t.events.clear()
	t.disposed = true

	t.log.Debug("trackball disposed")
}
