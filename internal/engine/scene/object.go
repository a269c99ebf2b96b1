package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/internal/engine/lighting"
)

// Geometry is a GPU-resident mesh. Draw and Release must be called on the
// goroutine that owns the graphics context.
type Geometry interface {
	Draw() error
	Release()
}

// Object is a renderable entry of the render queue.
type Object struct {
	Name     string
	Geometry Geometry

	// Material
	Diffuse  lighting.Color
	Specular lighting.Color
	Ambient  lighting.Color
	Emit     lighting.Color

	// Transform
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3
}

// NewObject wraps geometry with a white material and identity transform.
func NewObject(name string, geom Geometry) *Object {
	return &Object{
		Name:     name,
		Geometry: geom,
		Diffuse:  lighting.White,
		Specular: lighting.White,
		Ambient:  lighting.Black,
		Emit:     lighting.Black,
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Model returns the object's model matrix: translate * rotate * scale.
func (o *Object) Model() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DZ(o.Rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(o.Rotation.X()))
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
}
