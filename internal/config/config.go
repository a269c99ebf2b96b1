// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sceneview/internal/logger"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Input   InputConfig   `yaml:"input"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// CameraConfig holds projection and navigation settings.
type CameraConfig struct {
	FieldOfView     float32   `yaml:"fov"` // degrees
	Near            float32   `yaml:"near"`
	Far             float32   `yaml:"far"`
	MoveSensitivity float32   `yaml:"move_sensitivity"`
	LookSensitivity float32   `yaml:"look_sensitivity"`
	Position        []float32 `yaml:"position"`
	Yaw             float32   `yaml:"yaw"`   // degrees
	Pitch           float32   `yaml:"pitch"` // degrees
}

// InputConfig holds key bindings and movement normalization.
type InputConfig struct {
	// BaselineFPS is the refresh rate at which one held-key tick moves one unit.
	BaselineFPS float32 `yaml:"baseline_fps"`
	// Keys maps action names (forward, back, left, right) to key names.
	Keys map[string]string `yaml:"keys"`
}

// RenderConfig holds renderer state settings.
type RenderConfig struct {
	Capabilities []string  `yaml:"capabilities"`
	ClearColor   []float32 `yaml:"clear_color"`
}

// SceneConfig describes the content scripted at startup.
type SceneConfig struct {
	AssetRoots        []string                 `yaml:"asset_roots"`
	Objects           []ObjectConfig           `yaml:"objects"`
	DirectionalLights []DirectionalLightConfig `yaml:"directional_lights"`
	PointLights       []PointLightConfig       `yaml:"point_lights"`
}

// Material holds RGBA colors with components in 0-1. Empty colors keep the
// defaults.
type Material struct {
	Diffuse  []float32 `yaml:"diffuse"`
	Specular []float32 `yaml:"specular"`
	Ambient  []float32 `yaml:"ambient"`
	Emit     []float32 `yaml:"emit"`
}

// ObjectConfig describes one renderable object.
type ObjectConfig struct {
	Name     string    `yaml:"name"`
	Asset    string    `yaml:"asset"`
	Material Material  `yaml:",inline"`
	Position []float32 `yaml:"position"`
	Rotation []float32 `yaml:"rotation"` // radians
	Scale    []float32 `yaml:"scale"`
	// Spin is the rotation added per baseline frame, in radians.
	Spin []float32 `yaml:"spin"`
}

// DirectionalLightConfig describes one directional light.
type DirectionalLightConfig struct {
	Name      string   `yaml:"name"`
	Material  Material `yaml:",inline"`
	Intensity float32  `yaml:"intensity"`
	Yaw       float32  `yaml:"yaw"`   // degrees
	Pitch     float32  `yaml:"pitch"` // degrees
	Enabled   bool     `yaml:"enabled"`
	// FollowAim ties the direction to the left-drag aim camera.
	FollowAim bool `yaml:"follow_aim"`
}

// PointLightConfig describes one point light.
type PointLightConfig struct {
	Name      string    `yaml:"name"`
	Material  Material  `yaml:",inline"`
	Intensity float32   `yaml:"intensity"`
	Radius    float32   `yaml:"radius"`
	Position  []float32 `yaml:"position"`
	Enabled   bool      `yaml:"enabled"`
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
			Title:      "sceneview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Camera: CameraConfig{
			FieldOfView:     80,
			Near:            0.001,
			Far:             4000,
			MoveSensitivity: 0.01,
			LookSensitivity: 0.0025,
			Position:        []float32{0, 0, 5},
			Yaw:             180,
			Pitch:           0,
		},
		Input: InputConfig{
			BaselineFPS: 144,
			Keys: map[string]string{
				"forward": "W",
				"left":    "A",
				"back":    "S",
				"right":   "D",
			},
		},
		Render: RenderConfig{
			Capabilities: []string{"depth_test", "multisample", "cull_face"},
			ClearColor:   []float32{0.392, 0.584, 0.929, 1}, // cornflower blue
		},
		Scene: SceneConfig{
			AssetRoots: []string{"assets"},
			Objects: []ObjectConfig{
				{
					Name:  "Land",
					Asset: "builtin:cube",
					Material: Material{
						Diffuse:  []float32{0.545, 0, 0, 1},
						Specular: []float32{1, 1, 1, 1},
						Ambient:  []float32{0.118, 0, 0, 0},
					},
					Scale: []float32{1.5, 1.5, 1.5},
					Spin:  []float32{0, 0.005, 0},
				},
			},
			DirectionalLights: []DirectionalLightConfig{
				{
					Name:      "Sun",
					Material:  Material{Diffuse: []float32{0, 0, 0, 1}},
					Intensity: 128,
					Yaw:       0,
					Pitch:     -90,
					Enabled:   true,
					FollowAim: true,
				},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every structural problem in the config.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("window: fps_limit %d must not be negative", c.Window.FPSLimit))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %v must be in (0, 180)", c.Camera.FieldOfView))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera: need 0 < near (%v) < far (%v)", c.Camera.Near, c.Camera.Far))
	}
	if err := checkVec("camera: position", c.Camera.Position, 3); err != nil {
		errs = append(errs, err)
	}
	if c.Input.BaselineFPS <= 0 {
		errs = append(errs, fmt.Errorf("input: baseline_fps %v must be positive", c.Input.BaselineFPS))
	}
	if err := checkColor("render: clear_color", c.Render.ClearColor); err != nil {
		errs = append(errs, err)
	}

	for i, o := range c.Scene.Objects {
		prefix := fmt.Sprintf("scene: objects[%d]", i)
		if o.Asset == "" {
			errs = append(errs, fmt.Errorf("%s: asset is required", prefix))
		}
		errs = append(errs, o.Material.check(prefix)...)
		for _, v := range []struct {
			name string
			vec  []float32
		}{{"position", o.Position}, {"rotation", o.Rotation}, {"scale", o.Scale}, {"spin", o.Spin}} {
			if err := checkVec(prefix+": "+v.name, v.vec, 3); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for i, l := range c.Scene.DirectionalLights {
		errs = append(errs, l.Material.check(fmt.Sprintf("scene: directional_lights[%d]", i))...)
	}
	for i, l := range c.Scene.PointLights {
		prefix := fmt.Sprintf("scene: point_lights[%d]", i)
		errs = append(errs, l.Material.check(prefix)...)
		if err := checkVec(prefix+": position", l.Position, 3); err != nil {
			errs = append(errs, err)
		}
		if l.Radius < 0 {
			errs = append(errs, fmt.Errorf("%s: radius %v must not be negative", prefix, l.Radius))
		}
	}

	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

func (m Material) check(prefix string) []error {
	var errs []error
	for _, c := range []struct {
		name  string
		color []float32
	}{{"diffuse", m.Diffuse}, {"specular", m.Specular}, {"ambient", m.Ambient}, {"emit", m.Emit}} {
		if err := checkColor(prefix+": "+c.name, c.color); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// checkVec accepts an empty vector or exactly n components.
func checkVec(name string, v []float32, n int) error {
	if len(v) != 0 && len(v) != n {
		return fmt.Errorf("%s: expected %d components, got %d", name, n, len(v))
	}
	return nil
}

// checkColor accepts an empty color, RGB or RGBA.
func checkColor(name string, c []float32) error {
	if len(c) != 0 && len(c) != 3 && len(c) != 4 {
		return fmt.Errorf("%s: expected 3 or 4 components, got %d", name, len(c))
	}
	return nil
}
