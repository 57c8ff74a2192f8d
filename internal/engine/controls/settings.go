package controls

import "github.com/chewxy/math32"

// KeyBindings are the key codes that hold a mode while pressed.
type KeyBindings struct {
	Rotate int `yaml:"rotate"`
	Zoom   int `yaml:"zoom"`
	Pan    int `yaml:"pan"`
}

// Settings holds the tunable Trackball parameters.
type Settings struct {
	RotateSpeed          float32     `yaml:"rotate_speed"`
	ZoomSpeed            float32     `yaml:"zoom_speed"`
	PanSpeed             float32     `yaml:"pan_speed"`
	NoRotate             bool        `yaml:"no_rotate"`
	NoZoom               bool        `yaml:"no_zoom"`
	NoPan                bool        `yaml:"no_pan"`
	StaticMoving         bool        `yaml:"static_moving"`
	DynamicDampingFactor float32     `yaml:"dynamic_damping_factor"`
	MinDistance          float32     `yaml:"min_distance"`
	MaxDistance          float32     `yaml:"max_distance"`
	Keys                 KeyBindings `yaml:"keys"`
}

// DefaultSettings returns the stock trackball tuning. A, S and D hold rotate,
// zoom and pan.
func DefaultSettings() Settings {
	return Settings{
		RotateSpeed:          1.0,
		ZoomSpeed:            1.2,
		PanSpeed:             0.3,
		DynamicDampingFactor: 0.2,
		MinDistance:          0,
		MaxDistance:          math32.Inf(1),
		Keys:                 KeyBindings{Rotate: 'A', Zoom: 'S', Pan: 'D'},
	}
}

// ApplySettings copies s onto the controller's public fields.
func (t *Trackball) ApplySettings(s Settings) {
	t.RotateSpeed = s.RotateSpeed
	t.ZoomSpeed = s.ZoomSpeed
	t.PanSpeed = s.PanSpeed
	t.NoRotate = s.NoRotate
	t.NoZoom = s.NoZoom
	t.NoPan = s.NoPan
	t.StaticMoving = s.StaticMoving
	t.DynamicDampingFactor = s.DynamicDampingFactor
	t.MinDistance = s.MinDistance
	t.MaxDistance = s.MaxDistance
	t.Keys = [3]int{s.Keys.Rotate, s.Keys.Zoom, s.Keys.Pan}
}
