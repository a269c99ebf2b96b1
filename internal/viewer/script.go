package viewer

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/frame"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

// injector is the part of the orchestrator the scene script drives.
type injector interface {
	RequestAdd(ctx context.Context, desc assets.Descriptor, opts ...frame.ObjectOption) (*scene.Object, error)
	Invoke(ctx context.Context, fn func() error) error
	OnUpdate(fn func(dt float64))
}

// spinner rotates an object by rate every baseline frame.
type spinner struct {
	obj  *scene.Object
	rate mgl32.Vec3
}

// script populates a running scene from config on the control goroutine.
type script struct {
	cfg      config.SceneConfig
	baseline float32
	lights   *lighting.Registry
	aim      *camera.Camera
	log      *zap.Logger
}

// run adds lights directly through the registry and objects through the
// injector, then installs one update hook for spins and aim-following lights.
func (s *script) run(ctx context.Context, inj injector) error {
	var follow []*lighting.DirectionalLight
	for i, lc := range s.cfg.DirectionalLights {
		l, err := s.lights.AddDirectional()
		if err != nil {
			return fmt.Errorf("scene: directional_lights[%d]: %w", i, err)
		}
		s.lights.Update(func() { applyDirectional(l, lc) })
		if lc.FollowAim && s.aim != nil {
			follow = append(follow, l)
		}
		s.log.Info("directional light added", zap.String("light", lc.Name), zap.Float32("intensity", lc.Intensity))
	}

	for i, lc := range s.cfg.PointLights {
		l, err := s.lights.AddPoint()
		if err != nil {
			return fmt.Errorf("scene: point_lights[%d]: %w", i, err)
		}
		s.lights.Update(func() { applyPoint(l, lc) })
		s.log.Info("point light added", zap.String("light", lc.Name), zap.Float32("radius", lc.Radius))
	}

	var spins []spinner
	for i, oc := range s.cfg.Objects {
		obj, err := inj.RequestAdd(ctx, assets.Descriptor(oc.Asset), objectOptions(oc)...)
		if err != nil {
			return fmt.Errorf("scene: objects[%d]: %w", i, err)
		}
		if rate := vec3(oc.Spin, mgl32.Vec3{}); rate != (mgl32.Vec3{}) {
			spins = append(spins, spinner{obj: obj, rate: rate})
		}
		s.log.Info("object added", zap.String("object", obj.Name), zap.String("asset", oc.Asset))
	}

	if len(spins) == 0 && len(follow) == 0 {
		return nil
	}
	hook := s.updateHook(spins, follow)
	return inj.Invoke(ctx, func() error {
		inj.OnUpdate(hook)
		return nil
	})
}

// updateHook runs on the render goroutine once per frame.
func (s *script) updateHook(spins []spinner, follow []*lighting.DirectionalLight) func(dt float64) {
	return func(dt float64) {
		adj := s.baseline * float32(dt)
		for _, sp := range spins {
			sp.obj.Rotation = sp.obj.Rotation.Add(sp.rate.Mul(adj))
		}
		if len(follow) == 0 {
			return
		}
		dir := s.aim.LookDirection()
		s.lights.Update(func() {
			for _, l := range follow {
				l.Direction = dir
			}
		})
	}
}

func applyDirectional(l *lighting.DirectionalLight, c config.DirectionalLightConfig) {
	l.Name = c.Name
	applyMaterial(&l.Diffuse, &l.Specular, &l.Ambient, &l.Emit, c.Material)
	if c.Intensity != 0 {
		l.Intensity = c.Intensity
	}
	l.Direction = lighting.DirectionFromAngles(c.Yaw, c.Pitch)
	l.Enabled = c.Enabled
}

func applyPoint(l *lighting.PointLight, c config.PointLightConfig) {
	l.Name = c.Name
	applyMaterial(&l.Diffuse, &l.Specular, &l.Ambient, &l.Emit, c.Material)
	if c.Intensity != 0 {
		l.Intensity = c.Intensity
	}
	if c.Radius != 0 {
		l.Radius = c.Radius
	}
	l.Position = vec3(c.Position, l.Position)
	l.Enabled = c.Enabled
}

func applyMaterial(diffuse, specular, ambient, emit *lighting.Color, m config.Material) {
	*diffuse = color(m.Diffuse, *diffuse)
	*specular = color(m.Specular, *specular)
	*ambient = color(m.Ambient, *ambient)
	*emit = color(m.Emit, *emit)
}

// objectOptions turns an object config into injection options.
func objectOptions(c config.ObjectConfig) []frame.ObjectOption {
	var opts []frame.ObjectOption
	if c.Name != "" {
		opts = append(opts, frame.WithName(c.Name))
	}
	opts = append(opts, func(o *scene.Object) {
		applyMaterial(&o.Diffuse, &o.Specular, &o.Ambient, &o.Emit, c.Material)
		o.Position = vec3(c.Position, o.Position)
		o.Rotation = vec3(c.Rotation, o.Rotation)
		o.Scale = vec3(c.Scale, o.Scale)
	})
	return opts
}

// color converts an RGB or RGBA slice, keeping def when empty.
func color(v []float32, def lighting.Color) lighting.Color {
	switch len(v) {
	case 3:
		return lighting.Color{v[0], v[1], v[2], 1}
	case 4:
		return lighting.Color{v[0], v[1], v[2], v[3]}
	}
	return def
}

func vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}
