// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/pcdview/internal/engine/controls"
	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/internal/logger"
	"github.com/Faultbox/pcdview/pkg/math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Camera   CameraConfig      `yaml:"camera"`
	Controls controls.Settings `yaml:"controls"`
	Scene    SceneConfig       `yaml:"scene"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the perspective camera and its starting pose.
type CameraConfig struct {
	Fov      float32   `yaml:"fov"` // Vertical, degrees
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
	Position math.Vec3 `yaml:"position"`
	Target   math.Vec3 `yaml:"target"`
}

// SceneConfig holds what is shown and how.
type SceneConfig struct {
	Cloud         string           `yaml:"cloud"` // Loader locator
	Background    pointcloud.Color `yaml:"background"`
	PointColor    pointcloud.Color `yaml:"point_color"`
	PointSize     float32          `yaml:"point_size"`
	PickThreshold float32          `yaml:"pick_threshold"` // Radians
	ScreenshotDir string           `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "pcdview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: math.Vec3{X: 100, Y: 0, Z: 50},
		},
		Controls: controls.DefaultSettings(),
		Scene: SceneConfig{
			Cloud:         "cube:20",
			Background:    pointcloud.Color{R: 0.1, G: 0.1, B: 0.15},
			PointColor:    pointcloud.Color{R: 1, G: 1, B: 1},
			PointSize:     1,
			PickThreshold: 0.01,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting outside its allowed range.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		bad("camera fov %v outside (0,180)", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera clip range [%v,%v]", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Position == c.Camera.Target {
		bad("camera position equals target")
	}

	s := c.Controls
	if s.DynamicDampingFactor < 0 || s.DynamicDampingFactor >= 1 {
		bad("controls.dynamic_damping_factor %v outside [0,1)", s.DynamicDampingFactor)
	}
	if s.MinDistance < 0 || s.MaxDistance < 0 {
		bad("controls distances must not be negative")
	}
	if s.MinDistance > s.MaxDistance {
		bad("controls.min_distance %v > max_distance %v", s.MinDistance, s.MaxDistance)
	}

	if c.Scene.Cloud == "" {
		bad("scene.cloud is empty")
	}
	if c.Scene.PointSize <= 0 {
		bad("scene.point_size %v", c.Scene.PointSize)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level: %v", err)
	}

	return errors.Join(errs...)
}
