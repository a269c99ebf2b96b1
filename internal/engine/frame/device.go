package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

// Device is the GPU-facing surface the orchestrator drives. Every method is
// called on the render goroutine.
type Device interface {
	// Viewport applies and returns the current drawable size in pixels.
	Viewport() (width, height int)
	// Clear clears the color and depth buffers.
	Clear()
	Disable(c Capability)
	Enable(c Capability)

	// UniformLocation resolves a uniform of the active program, or -1.
	UniformLocation(name string) int32
	UniformMatrix4(loc int32, m mgl32.Mat4)
	Uniform4(loc int32, v mgl32.Vec4)
	Uniform3(loc int32, v mgl32.Vec3)
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)

	// Upload copies a decoded mesh into GPU memory.
	Upload(mesh *assets.Mesh) (scene.Geometry, error)

	// Swap presents the back buffer.
	Swap()
}
