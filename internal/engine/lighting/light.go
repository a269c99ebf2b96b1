// Package lighting holds the scene's directional and point lights.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/pkg/orient"
)

// Shader array capacities.
const (
	MaxDirectionalLights = 8
	MaxPointLights       = 512
)

// Uniform field counts per light, in upload order.
const (
	DirectionalFields = 7 // diffuse, specular, ambient, emit, intensity, direction, enabled
	PointFields       = 8 // diffuse, specular, ambient, emit, intensity, radius, position, enabled
)

// Color is an RGBA color with float components in 0-1.
type Color = mgl32.Vec4

// Common colors.
var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// RGBA8 builds a Color from 0-255 components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// DirectionalLight is an infinitely distant light.
type DirectionalLight struct {
	Name string

	Diffuse  Color
	Specular Color
	Ambient  Color
	Emit     Color

	Intensity float32
	Direction mgl32.Vec3 // unit vector the light travels along
	Enabled   bool
}

// PointLight radiates from a position up to Radius.
type PointLight struct {
	Name string

	Diffuse  Color
	Specular Color
	Ambient  Color
	Emit     Color

	Intensity float32
	Radius    float32
	Position  mgl32.Vec3
	Enabled   bool
}

// NewDirectionalLight returns a disabled white light pointing straight down.
func NewDirectionalLight() DirectionalLight {
	return DirectionalLight{
		Diffuse:   White,
		Specular:  White,
		Ambient:   Black,
		Emit:      Black,
		Intensity: 1,
		Direction: mgl32.Vec3{0, -1, 0},
	}
}

// NewPointLight returns a disabled white light at the origin.
func NewPointLight() PointLight {
	return PointLight{
		Diffuse:   White,
		Specular:  White,
		Ambient:   Black,
		Emit:      Black,
		Intensity: 1,
		Radius:    100,
	}
}

// DirectionFromAngles converts yaw/pitch in degrees into a unit direction.
// Pitch -90 points straight down.
func DirectionFromAngles(yawDeg, pitchDeg float32) mgl32.Vec3 {
	return orient.LookDirection(mgl32.DegToRad(yawDeg), mgl32.DegToRad(pitchDeg))
}

// EnabledFlag is the integer the shader tests for an active light.
func EnabledFlag(enabled bool) int32 {
	if enabled {
		return 1
	}
	return 0
}
