// Package camera provides the scene camera and its navigation controls.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/pkg/orient"
)

// Viewpoint is anything that can produce a per-frame view-projection matrix.
type Viewpoint interface {
	// SetAspectRatio updates the projection aspect (width / height).
	SetAspectRatio(aspect float32)
	// Update recomputes and returns projection * view.
	Update() mgl32.Mat4
}

// Navigator is the optional navigation capability of a camera.
type Navigator interface {
	AddRotation(deltaX, deltaY float32)
	Move(x, y, z float32)
}

// Camera is a free-flying perspective camera.
//
// A Camera is owned by the render goroutine. Fields may be assigned from
// elsewhere only while the frame loop is not running.
type Camera struct {
	Position mgl32.Vec3

	// Orientation in radians
	Yaw   float32 // wrapped to [0, 2π)
	Pitch float32 // clamped to [orient.MinPitch, orient.MaxPitch]

	// Projection
	FieldOfView float32 // vertical, degrees
	Near        float32
	Far         float32
	AspectRatio float32

	// Sensitivity
	MoveSensitivity float32
	LookSensitivity float32

	// ViewProj is the matrix computed by the last Update.
	ViewProj mgl32.Mat4
}

// Compile-time interface checks
var (
	_ Viewpoint = (*Camera)(nil)
	_ Navigator = (*Camera)(nil)
)

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	return &Camera{
		Yaw:             gomath.Pi,
		FieldOfView:     80,
		Near:            0.001,
		Far:             4000,
		AspectRatio:     16.0 / 9.0,
		MoveSensitivity: 0.3,
		LookSensitivity: 0.0025,
		ViewProj:        mgl32.Ident4(),
	}
}

// NewAt creates a camera at position with the given orientation.
func NewAt(position mgl32.Vec3, yaw, pitch float32) *Camera {
	c := New()
	c.Position = position
	c.SetOrientation(yaw, pitch)
	return c
}

// Settings holds the tunable projection and sensitivity values.
type Settings struct {
	FieldOfView     float32
	Near            float32
	Far             float32
	MoveSensitivity float32
	LookSensitivity float32
}

// Apply copies non-zero settings onto the camera.
func (c *Camera) Apply(s Settings) {
	if s.FieldOfView > 0 {
		c.FieldOfView = s.FieldOfView
	}
	if s.Near > 0 {
		c.Near = s.Near
	}
	if s.Far > 0 {
		c.Far = s.Far
	}
	if s.MoveSensitivity > 0 {
		c.MoveSensitivity = s.MoveSensitivity
	}
	if s.LookSensitivity > 0 {
		c.LookSensitivity = s.LookSensitivity
	}
}

// MoveScale returns the factor Move applies to its offset.
func (c *Camera) MoveScale() float32 {
	return c.MoveSensitivity
}

// LookDirection returns the unit vector the camera faces.
func (c *Camera) LookDirection() mgl32.Vec3 {
	return orient.LookDirection(c.Yaw, c.Pitch)
}

// SetOrientation sets yaw and pitch, normalizing both.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = orient.WrapAngle(yaw)
	c.Pitch = orient.ClampPitch(pitch)
}

// SetAspectRatio updates the projection aspect ratio.
func (c *Camera) SetAspectRatio(aspect float32) {
	c.AspectRatio = aspect
}

// Update recomputes the view-projection matrix from the current state.
func (c *Camera) Update() mgl32.Mat4 {
	c.ViewProj = orient.ViewProjection(c.Position, c.LookDirection(), c.FieldOfView, c.AspectRatio, c.Near, c.Far)
	return c.ViewProj
}

// AddRotation turns the camera by a pointer delta.
// Positive deltaX turns right (yaw decreases), positive deltaY looks down.
func (c *Camera) AddRotation(deltaX, deltaY float32) {
	deltaX *= -c.LookSensitivity
	deltaY *= -c.LookSensitivity

	c.Yaw = orient.WrapAngle(c.Yaw + deltaX)
	c.Pitch = orient.ClampPitch(c.Pitch + deltaY)
}

// Move translates the camera along its navigation axes.
// x moves right, y moves up, z moves forward; the offset is scaled by
// MoveSensitivity.
func (c *Camera) Move(x, y, z float32) {
	right, up, forward := orient.Basis(c.Yaw, c.Pitch)

	offset := right.Mul(x).Add(up.Mul(y)).Add(forward.Mul(z))
	c.Position = c.Position.Add(offset.Mul(c.MoveSensitivity))
}
