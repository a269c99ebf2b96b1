// Package renderer implements the frame device on OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/frame"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/engine/shader/shaders"
)

// Surface is the window the renderer presents to.
type Surface interface {
	DrawableSize() (width, height int)
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	ClearColor mgl32.Vec4
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	surface Surface
	log     *zap.Logger

	program uint32

	width  int
	height int
	meshes int
}

var _ frame.Device = (*Renderer)(nil)

// capabilities maps frame capabilities to GL enable flags.
var capabilities = map[frame.Capability]uint32{
	frame.DepthTest:   gl.DEPTH_TEST,
	frame.Multisample: gl.MULTISAMPLE,
	frame.CullFace:    gl.CULL_FACE,
	frame.Blend:       gl.BLEND,
	frame.ScissorTest: gl.SCISSOR_TEST,
	frame.StencilTest: gl.STENCIL_TEST,
}

// New creates a new renderer and links the scene program.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(surface Surface, cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:  cfg,
		surface: surface,
		log:     log,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if info := shader.InfoLog(r.program); info != "" {
		log.Warn("shader program linked with messages", zap.String("log", info))
	}
	log.Debug("shader program created", zap.Uint32("program", r.program))

	// The program never changes for the session
	gl.UseProgram(r.program)
	gl.DepthFunc(gl.LESS)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("live_meshes", r.meshes))
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Viewport applies the drawable size and returns it.
func (r *Renderer) Viewport() (int, int) {
	w, h := r.surface.DrawableSize()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		gl.Viewport(0, 0, int32(w), int32(h))
		r.log.Debug("renderer resized",
			zap.Int("width", w),
			zap.Int("height", h),
		)
	}
	return w, h
}

// Clear clears every buffer to the configured color.
func (r *Renderer) Clear() {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// Enable turns a capability on.
func (r *Renderer) Enable(c frame.Capability) {
	if flag, ok := capabilities[c]; ok {
		gl.Enable(flag)
	}
}

// Disable turns a capability off.
func (r *Renderer) Disable(c frame.Capability) {
	if flag, ok := capabilities[c]; ok {
		gl.Disable(flag)
	}
}

// UniformLocation resolves a uniform of the scene program.
func (r *Renderer) UniformLocation(name string) int32 {
	return shader.UniformLocation(r.program, name)
}

func (r *Renderer) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (r *Renderer) Uniform4(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (r *Renderer) Uniform3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

func (r *Renderer) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (r *Renderer) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// Swap presents the frame.
func (r *Renderer) Swap() {
	r.surface.SwapBuffers()
}
