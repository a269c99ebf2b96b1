package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

var errReleased = errors.New("mesh already released")

// gpuMesh is an indexed triangle mesh in GPU memory.
type gpuMesh struct {
	r          *Renderer
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Upload copies the mesh into a VAO with position (location 0) and normal
// (location 1) attributes.
func (r *Renderer) Upload(mesh *assets.Mesh) (scene.Geometry, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	m := &gpuMesh{r: r, indexCount: int32(len(mesh.Indices))}
	vertexSize := int(unsafe.Sizeof(assets.Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.meshes++
	return m, nil
}

// Draw issues the indexed draw call.
func (m *gpuMesh) Draw() error {
	if m.vao == 0 {
		return errReleased
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return nil
}

// Release deletes the GPU buffers. Further draws fail.
func (m *gpuMesh) Release() {
	if m.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	m.vao, m.vbo, m.ebo = 0, 0, 0
	m.r.meshes--
}
