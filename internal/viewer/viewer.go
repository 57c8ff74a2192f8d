// Package viewer wires the window, input, camera controls and renderer into
// the point cloud viewer's main loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/pcdview/internal/config"
	"github.com/Faultbox/pcdview/internal/engine/camera"
	"github.com/Faultbox/pcdview/internal/engine/controls"
	"github.com/Faultbox/pcdview/internal/engine/debug"
	"github.com/Faultbox/pcdview/internal/engine/input"
	"github.com/Faultbox/pcdview/internal/engine/loader"
	"github.com/Faultbox/pcdview/internal/engine/picking"
	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/internal/engine/renderer"
	"github.com/Faultbox/pcdview/internal/engine/window"
	"github.com/Faultbox/pcdview/internal/logger"
	"github.com/Faultbox/pcdview/pkg/math"
)

// Viewer is the point cloud viewer application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	dispatcher  *input.Dispatcher
	pump        *input.SDLPump
	camera      *camera.Perspective
	trackball   *controls.Trackball
	loader      *loader.Loader
	screenshots *debug.ScreenshotCapture

	ctx       context.Context
	opened    *pendingPaths
	subs      []input.Subscription
	cloud     *pointcloud.Cloud
	cursor    math.Vec2
	running   bool
	wantShot  bool
	interacts int
}

// New creates the window, GL state, camera and controls.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.String("cloud", cfg.Scene.Cloud),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created
	fbw, fbh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbw,
		Height:     fbh,
		Background: cfg.Scene.Background,
		PointColor: cfg.Scene.PointColor,
		PointSize:  cfg.Scene.PointSize,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := v.window.Size()
	v.dispatcher = input.NewDispatcher(input.Rect{Width: float32(w), Height: float32(h)})
	v.pump = input.NewSDLPump(v.dispatcher, w, h)

	cc := cfg.Camera
	v.camera = camera.NewPerspective(cc.Fov, float32(w)/float32(h), cc.Near, cc.Far)
	v.camera.SetPosition(cc.Position)
	v.camera.LookAt(cc.Target)

	v.trackball = controls.NewTrackball(v.camera, v.dispatcher)
	v.trackball.ApplySettings(cfg.Controls)
	if cc.Target != (math.Vec3{}) {
		v.trackball.SetTarget(cc.Target)
		v.trackball.Update()
		v.trackball.SaveState()
	}
	v.trackball.On(controls.NotifyStart, v.onControls)
	v.trackball.On(controls.NotifyEnd, v.onControls)

	v.subs = []input.Subscription{
		v.dispatcher.Subscribe(input.EventKeyDown, v.onKeyDown),
		v.dispatcher.Subscribe(input.EventMouseMove, v.onMouseMove),
		v.dispatcher.Subscribe(input.EventResize, v.onResize),
	}

	v.loader = loader.New()
	v.opened = newPendingPaths()
	v.screenshots = debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "pcdview")

	v.log.Info("viewer initialized")
	return v, nil
}

// Run loads the configured cloud and runs the frame loop until quit.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	v.ctx = ctx

	v.load(v.cfg.Scene.Cloud)

	v.running = true
	frames := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		if ctx.Err() != nil {
			break
		}

		// 1. Input
		if v.pump.Poll() {
			v.running = false
			break
		}

		// 2. Loader callbacks and controls
		if path, ok := v.opened.take(); ok {
			v.load(path)
		}
		v.loader.Drain()
		v.trackball.Update()

		// 3. Render
		v.renderer.Begin()
		v.renderer.Draw(v.camera.ViewMatrix(), v.camera.ProjectionMatrix())
		v.renderer.End()

		if v.wantShot {
			v.wantShot = false
			v.captureScreenshot()
		}

		// 4. Present
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the controls, GL resources and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.trackball != nil {
		v.trackball.Dispose()
	}
	if v.dispatcher != nil {
		for _, s := range v.subs {
			v.dispatcher.Unsubscribe(s)
		}
		v.subs = nil
	}
	if v.loader != nil {
		// Loads are only started by the frame loop, which has returned
		v.loader.Wait()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) onKeyDown(e *input.Event) {
	switch actionForKey(e.KeyCode) {
	case actionQuit:
		v.running = false
	case actionReset:
		v.trackball.Reset()
		v.log.Info("view reset")
	case actionPick:
		v.pick()
	case actionScreenshot:
		v.wantShot = true
	case actionOpen:
		v.openFileDialog()
	}
}

func (v *Viewer) load(locator string) {
	v.loader.Load(v.ctx, locator, loader.Callbacks{
		OnLoad:     v.onCloudLoaded,
		OnProgress: v.onCloudProgress,
		OnError: func(err error) {
			v.onCloudError(locator, err)
		},
	})
}

// openFileDialog asks for a point cloud file without blocking the frame loop.
// The chosen path is loaded by the frame loop.
func (v *Viewer) openFileDialog() {
	exts := v.loader.Extensions()
	ctx := v.ctx
	go func() {
		b := dialog.File().Title("Open Point Cloud")
		if len(exts) > 0 {
			b = b.Filter("Point Clouds", exts...)
		}
		path, err := b.Filter("All Files", "*").Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		v.opened.offer(ctx, path)
	}()
}

func (v *Viewer) onMouseMove(e *input.Event) {
	v.cursor = math.Vec2{X: e.PageX, Y: e.PageY}
}

func (v *Viewer) onResize(e *input.Event) {
	if e.Width <= 0 || e.Height <= 0 {
		// Minimized; keep the last viewport
		return
	}
	v.renderer.Resize(v.window.DrawableSize())
	v.camera.SetAspect(e.Width, e.Height)
	v.trackball.HandleResize()
}

func (v *Viewer) onControls(n controls.Notification) {
	if n == controls.NotifyStart {
		v.interacts++
	}
	v.log.Debug("controls",
		zap.Stringer("event", n),
		zap.Stringer("state", v.trackball.State()),
		zap.Int("interactions", v.interacts),
	)
}

func (v *Viewer) onCloudLoaded(c *pointcloud.Cloud) {
	v.cloud = c
	v.renderer.Upload(c)
	v.window.SetTitle(loadedTitle(v.cfg.Window.Title, c.Name, c.Len()))

	lo, hi, ok := c.Bounds()
	if ok {
		v.log.Info("cloud ready",
			zap.String("name", c.Name),
			zap.Int("points", c.Len()),
			zap.Float32("minX", lo.X), zap.Float32("minY", lo.Y), zap.Float32("minZ", lo.Z),
			zap.Float32("maxX", hi.X), zap.Float32("maxY", hi.Y), zap.Float32("maxZ", hi.Z),
		)
	}
}

func (v *Viewer) onCloudProgress(p loader.Progress) {
	v.window.SetTitle(loadingTitle(v.cfg.Window.Title, p))
	v.log.Debug("loading", zap.Int64("loaded", p.Loaded), zap.Int64("total", p.Total))
}

func (v *Viewer) onCloudError(locator string, err error) {
	v.window.SetTitle(v.cfg.Window.Title + " - load failed")
	v.log.Error("failed to load point cloud", zap.String("cloud", locator), zap.Error(err))
}

// pick logs the cloud point under the last cursor position.
func (v *Viewer) pick() {
	if v.cloud == nil {
		return
	}
	w, h := v.window.Size()
	inv := v.camera.ViewProjection().Inverse()
	ray, ok := picking.ScreenToRay(v.cursor.X, v.cursor.Y, float32(w), float32(h), inv)
	if !ok {
		return
	}

	hit, ok := picking.Pick(ray, v.camera.Position(), v.cfg.Scene.PickThreshold, v.cloud)
	if !ok {
		v.log.Info("pick: no point under cursor")
		return
	}
	v.log.Info("pick",
		zap.Int("index", hit.Index),
		zap.Float32("x", hit.Position.X),
		zap.Float32("y", hit.Position.Y),
		zap.Float32("z", hit.Position.Z),
		zap.Float32("distance", hit.Distance),
	)
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}
