package frame

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

// Options configures an Orchestrator.
type Options struct {
	// Capabilities is the enabled flag set. Nil means DefaultCapabilities.
	Capabilities []Capability
	// Uniforms names the program uniforms. Zero value means DefaultUniforms.
	Uniforms Uniforms
	// Assets decodes descriptors for RequestAdd.
	Assets assets.Source
}

// Orchestrator runs the frame sequence over a camera, a light registry and a
// render queue.
//
// Frame, OnUpdate, SetViewpoint and Close must be called from the render
// goroutine. Invoke, RequestAdd, RequestRemove, State and Ready are safe from
// any goroutine.
type Orchestrator struct {
	dev    Device
	cam    camera.Viewpoint
	lights *lighting.Registry
	queue  *scene.Queue
	assets assets.Source
	caps   []Capability
	bind   *bindings
	log    *zap.Logger

	state atomic.Int32
	hooks []func(dt float64)

	tasks     chan *task
	closed    chan struct{}
	closeOnce sync.Once
	ready     chan struct{}
	readyOnce sync.Once

	// reused every frame
	dirBuf   []lighting.DirectionalLight
	pointBuf []lighting.PointLight

	// unbound light slots already reported
	dirReported   [lighting.MaxDirectionalLights]bool
	pointReported [lighting.MaxPointLights]bool

	stats Stats
}

// New resolves the binding table and returns an idle orchestrator.
// A missing required uniform is reported as ErrMissingBinding.
func New(dev Device, cam camera.Viewpoint, lights *lighting.Registry, queue *scene.Queue, opts Options, log *zap.Logger) (*Orchestrator, error) {
	if dev == nil || cam == nil || lights == nil || queue == nil {
		return nil, errors.New("frame: device, camera, lights and queue are required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	u := opts.Uniforms
	if u == (Uniforms{}) {
		u = DefaultUniforms()
	}
	bind, err := resolveBindings(dev, u)
	if err != nil {
		return nil, err
	}

	caps := opts.Capabilities
	if caps == nil {
		caps = DefaultCapabilities
	}

	o := &Orchestrator{
		dev:      dev,
		cam:      cam,
		lights:   lights,
		queue:    queue,
		assets:   opts.Assets,
		caps:     append([]Capability(nil), caps...),
		bind:     bind,
		log:      log,
		tasks:    make(chan *task, 1),
		closed:   make(chan struct{}),
		ready:    make(chan struct{}),
		dirBuf:   make([]lighting.DirectionalLight, 0, lighting.MaxDirectionalLights),
		pointBuf: make([]lighting.PointLight, 0, 64),
	}

	log.Info("frame orchestrator ready",
		zap.Int32("camera", bind.camera),
		zap.Int32("model", bind.model),
		zap.Stringers("capabilities", o.caps),
	)
	return o, nil
}

// State returns the step the current frame is in.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
}

// Ready is closed once the first frame has been presented.
func (o *Orchestrator) Ready() <-chan struct{} {
	return o.ready
}

// Done is closed by Close.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.closed
}

// OnUpdate registers a hook run at the start of every frame, after the
// injection boundary and before capability sync.
func (o *Orchestrator) OnUpdate(fn func(dt float64)) {
	o.hooks = append(o.hooks, fn)
}

// SetViewpoint replaces the camera used from the next frame on.
func (o *Orchestrator) SetViewpoint(cam camera.Viewpoint) {
	if cam != nil {
		o.cam = cam
	}
}

// Frame runs one full cycle. dt is the time since the previous frame in
// seconds.
func (o *Orchestrator) Frame(dt float64) {
	if o.isClosed() {
		return
	}

	o.runPending()
	for _, h := range o.hooks {
		h(dt)
	}

	o.dev.Clear()

	o.setState(CapabilitySync)
	o.syncCapabilities()

	o.setState(CameraUpdate)
	o.updateCamera()

	o.setState(LightUpload)
	o.uploadLights()

	o.setState(ObjectDraw)
	o.drawObjects()

	o.setState(Present)
	o.dev.Swap()

	o.setState(Idle)
	o.sample(dt)
	o.readyOnce.Do(func() { close(o.ready) })
}

func (o *Orchestrator) syncCapabilities() {
	for _, c := range Capabilities {
		o.dev.Disable(c)
	}
	for _, c := range o.caps {
		o.dev.Enable(c)
	}
}

func (o *Orchestrator) updateCamera() {
	if w, h := o.dev.Viewport(); w > 0 && h > 0 {
		o.cam.SetAspectRatio(float32(w) / float32(h))
	}
	o.dev.UniformMatrix4(o.bind.camera, o.cam.Update())
}

func (o *Orchestrator) uploadLights() {
	o.dirBuf, o.pointBuf = o.lights.Snapshot(o.dirBuf, o.pointBuf)

	for i := range o.dirBuf {
		l := &o.dirBuf[i]
		if !o.bind.dirBound[i] {
			if !o.dirReported[i] {
				o.dirReported[i] = true
				o.log.Error("directional light slot not bound", zap.Int("slot", i), zap.String("light", l.Name))
			}
			continue
		}
		loc := &o.bind.directional[i]
		o.dev.Uniform4(loc[fieldDiffuse], l.Diffuse)
		o.dev.Uniform4(loc[fieldSpecular], l.Specular)
		o.dev.Uniform4(loc[fieldAmbient], l.Ambient)
		o.dev.Uniform4(loc[fieldEmit], l.Emit)
		o.dev.Uniform1f(loc[fieldIntensity], l.Intensity)
		o.dev.Uniform3(loc[dirFieldDirection], l.Direction)
		o.dev.Uniform1i(loc[dirFieldEnabled], lighting.EnabledFlag(l.Enabled))
	}

	for i := range o.pointBuf {
		l := &o.pointBuf[i]
		if !o.bind.pointBound[i] {
			if !o.pointReported[i] {
				o.pointReported[i] = true
				o.log.Error("point light slot not bound", zap.Int("slot", i), zap.String("light", l.Name))
			}
			continue
		}
		loc := &o.bind.point[i]
		o.dev.Uniform4(loc[fieldDiffuse], l.Diffuse)
		o.dev.Uniform4(loc[fieldSpecular], l.Specular)
		o.dev.Uniform4(loc[fieldAmbient], l.Ambient)
		o.dev.Uniform4(loc[fieldEmit], l.Emit)
		o.dev.Uniform1f(loc[fieldIntensity], l.Intensity)
		o.dev.Uniform1f(loc[pointFieldRadius], l.Radius)
		o.dev.Uniform3(loc[pointFieldPosition], l.Position)
		o.dev.Uniform1i(loc[pointFieldEnabled], lighting.EnabledFlag(l.Enabled))
	}
}

func (o *Orchestrator) drawObjects() {
	for i, obj := range o.queue.Objects() {
		if obj.Geometry == nil {
			o.log.Error("object has no geometry", zap.Int("index", i), zap.String("object", obj.Name))
			continue
		}
		o.dev.Uniform4(o.bind.colors[0], obj.Diffuse)
		o.dev.Uniform4(o.bind.colors[1], obj.Specular)
		o.dev.Uniform4(o.bind.colors[2], obj.Ambient)
		o.dev.Uniform4(o.bind.colors[3], obj.Emit)
		o.dev.UniformMatrix4(o.bind.model, obj.Model())
		if err := obj.Geometry.Draw(); err != nil {
			o.log.Error("draw failed",
				zap.Int("index", i),
				zap.String("object", obj.Name),
				zap.Error(err),
			)
		}
	}
}

// Close stops the loop. Pending and future requests fail with ErrClosed and
// every queued object's geometry is released.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		close(o.closed)
	drain:
		for {
			select {
			case t := <-o.tasks:
				t.cancel(ErrClosed)
			default:
				break drain
			}
		}
		n := o.queue.Len()
		o.queue.Clear()
		o.setState(Idle)
		o.log.Info("frame orchestrator closed",
			zap.Uint64("frames", o.stats.Frames),
			zap.Int("released", n),
		)
	})
}

func (o *Orchestrator) isClosed() bool {
	select {
	case <-o.closed:
		return true
	default:
		return false
	}
}
