package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Builtin returns a generated primitive: "cube" or "plane".
func Builtin(name string) (*Mesh, error) {
	switch name {
	case "cube":
		return Cube(), nil
	case "plane":
		return Plane(), nil
	default:
		return nil, fmt.Errorf("%s%s: %w", BuiltinPrefix, name, ErrNotFound)
	}
}

// Cube returns a unit cube centered on the origin with per-face normals.
func Cube() *Mesh {
	faces := []struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}

	m := &Mesh{Name: "cube"}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Plane returns a unit square on the XZ plane facing +Y.
func Plane() *Mesh {
	up := mgl32.Vec3{0, 1, 0}
	return &Mesh{
		Name: "plane",
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-0.5, 0, 0.5}, Normal: up},
			{Position: mgl32.Vec3{0.5, 0, 0.5}, Normal: up},
			{Position: mgl32.Vec3{0.5, 0, -0.5}, Normal: up},
			{Position: mgl32.Vec3{-0.5, 0, -0.5}, Normal: up},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
