package assets

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Vertex is a mesh vertex with position and normal.
// The layout is six tightly packed float32s.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh holds triangle data ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// meshFile is the on-disk YAML layout.
type meshFile struct {
	Name      string      `yaml:"name"`
	Positions [][]float32 `yaml:"positions"`
	Normals   [][]float32 `yaml:"normals"`
	Indices   []uint32    `yaml:"indices"`
}

// ReadMeshFile decodes a YAML mesh file.
func ReadMeshFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mesh, err := ParseMesh(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return mesh, nil
}

// ParseMesh decodes YAML mesh data. Missing normals are computed from faces.
func ParseMesh(data []byte) (*Mesh, error) {
	var f meshFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Normals) != 0 && len(f.Normals) != len(f.Positions) {
		return nil, fmt.Errorf("%d normals for %d positions", len(f.Normals), len(f.Positions))
	}

	mesh := &Mesh{
		Name:     f.Name,
		Vertices: make([]Vertex, len(f.Positions)),
		Indices:  f.Indices,
	}
	for i, p := range f.Positions {
		if err := toVec3(p, &mesh.Vertices[i].Position); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		if len(f.Normals) != 0 {
			if err := toVec3(f.Normals[i], &mesh.Vertices[i].Normal); err != nil {
				return nil, fmt.Errorf("normal %d: %w", i, err)
			}
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if len(f.Normals) == 0 {
		mesh.ComputeNormals()
	}
	return mesh, nil
}

// Validate checks the index buffer against the vertex count.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %q has no vertices", m.Name)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index count %d is not a positive multiple of 3", m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %q: index %d at %d out of range", m.Name, idx, i)
		}
	}
	return nil
}

// ComputeNormals replaces vertex normals with area-weighted face normals.
func (m *Mesh) ComputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		for _, idx := range [3]uint32{a, b, c} {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		// degenerate faces leave a zero normal
		if n := m.Vertices[i].Normal; n.Len() >= 1e-8 {
			m.Vertices[i].Normal = n.Normalize()
		}
	}
}

func toVec3(in []float32, out *mgl32.Vec3) error {
	if len(in) != 3 {
		return fmt.Errorf("expected 3 components, got %d", len(in))
	}
	*out = mgl32.Vec3{in[0], in[1], in[2]}
	return nil
}
