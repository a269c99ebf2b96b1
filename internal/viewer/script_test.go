package viewer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/frame"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/orient"
)

// fakeInjector builds objects synchronously.
type fakeInjector struct {
	added []assets.Descriptor
	hooks []func(dt float64)
	fail  assets.Descriptor
}

func (f *fakeInjector) RequestAdd(_ context.Context, desc assets.Descriptor, opts ...frame.ObjectOption) (*scene.Object, error) {
	if desc == f.fail {
		return nil, assets.ErrNotFound
	}
	obj := scene.NewObject(string(desc), nil)
	for _, opt := range opts {
		opt(obj)
	}
	f.added = append(f.added, desc)
	return obj, nil
}

func (f *fakeInjector) Invoke(_ context.Context, fn func() error) error {
	return fn()
}

func (f *fakeInjector) OnUpdate(fn func(dt float64)) {
	f.hooks = append(f.hooks, fn)
}

// approxVec compares componentwise with an absolute tolerance.
func approxVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func newScript(cfg config.SceneConfig) *script {
	return &script{
		cfg:      cfg,
		baseline: 144,
		lights:   lighting.NewRegistry(),
		aim:      newAimCamera(cfg.DirectionalLights),
		log:      zap.NewNop(),
	}
}

func TestScriptDefaultScene(t *testing.T) {
	cfg := config.Default().Scene
	s := newScript(cfg)
	inj := &fakeInjector{}

	if err := s.run(context.Background(), inj); err != nil {
		t.Fatalf("run: %v", err)
	}

	dir, point := s.lights.Snapshot(nil, nil)
	if len(dir) != 1 || len(point) != 0 {
		t.Fatalf("expected one directional light, got %d/%d", len(dir), len(point))
	}
	sun := dir[0]
	if sun.Name != "Sun" || sun.Intensity != 128 || !sun.Enabled {
		t.Errorf("unexpected sun %+v", sun)
	}
	if sun.Diffuse != (lighting.Color{0, 0, 0, 1}) {
		t.Errorf("expected black diffuse, got %v", sun.Diffuse)
	}
	if !approxVec(sun.Direction, mgl32.Vec3{0, -1, 0}) {
		t.Errorf("expected sun pointing down, got %v", sun.Direction)
	}

	if len(inj.added) != 1 || inj.added[0] != "builtin:cube" {
		t.Errorf("unexpected objects %v", inj.added)
	}
	if len(inj.hooks) != 1 {
		t.Fatalf("expected one update hook, got %d", len(inj.hooks))
	}
}

func TestScriptObjectOptions(t *testing.T) {
	oc := config.ObjectConfig{
		Name:  "Land",
		Asset: "land.yaml",
		Material: config.Material{
			Diffuse: []float32{0.5, 0, 0},
			Ambient: []float32{0.1, 0, 0, 0},
		},
		Position: []float32{1, 2, 3},
		Scale:    []float32{1.5, 1.5, 1.5},
	}
	obj := scene.NewObject("land.yaml", nil)
	for _, opt := range objectOptions(oc) {
		opt(obj)
	}

	if obj.Name != "Land" {
		t.Errorf("expected name Land, got %s", obj.Name)
	}
	if obj.Diffuse != (lighting.Color{0.5, 0, 0, 1}) {
		t.Errorf("expected RGB diffuse with alpha 1, got %v", obj.Diffuse)
	}
	if obj.Ambient != (lighting.Color{0.1, 0, 0, 0}) {
		t.Errorf("unexpected ambient %v", obj.Ambient)
	}
	if obj.Specular != lighting.White {
		t.Errorf("unset specular should keep default, got %v", obj.Specular)
	}
	if obj.Position != (mgl32.Vec3{1, 2, 3}) || obj.Scale != (mgl32.Vec3{1.5, 1.5, 1.5}) {
		t.Errorf("unexpected transform %v %v", obj.Position, obj.Scale)
	}
	if obj.Rotation != (mgl32.Vec3{}) {
		t.Errorf("unset rotation should stay zero, got %v", obj.Rotation)
	}
}

func TestScriptUpdateHook(t *testing.T) {
	s := newScript(config.Default().Scene)
	var objs []*scene.Object
	inj := &capturingInjector{fakeInjector: &fakeInjector{}, objs: &objs}
	if err := s.run(context.Background(), inj); err != nil {
		t.Fatal(err)
	}
	land := objs[0]
	hook := inj.hooks[0]

	// one 72 Hz frame is two baseline frames
	hook(1.0 / 72)
	want := float32(0.005 * 2)
	if got := land.Rotation.Y(); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("expected spin %f, got %f", want, got)
	}

	// the sun follows the aim camera
	s.aim.SetOrientation(0, 0)
	hook(0)
	dir, _ := s.lights.Snapshot(nil, nil)
	if !approxVec(dir[0].Direction, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("expected sun to follow aim, got %v", dir[0].Direction)
	}
}

// capturingInjector records the objects it creates.
type capturingInjector struct {
	*fakeInjector
	objs *[]*scene.Object
}

func (c *capturingInjector) RequestAdd(ctx context.Context, desc assets.Descriptor, opts ...frame.ObjectOption) (*scene.Object, error) {
	obj, err := c.fakeInjector.RequestAdd(ctx, desc, opts...)
	if err == nil {
		*c.objs = append(*c.objs, obj)
	}
	return obj, err
}

func TestScriptNoHookWhenStatic(t *testing.T) {
	cfg := config.SceneConfig{
		Objects: []config.ObjectConfig{{Asset: "builtin:plane"}},
		PointLights: []config.PointLightConfig{{
			Name:     "Lamp",
			Radius:   25,
			Position: []float32{0, 3, 0},
			Enabled:  true,
		}},
	}
	s := newScript(cfg)
	inj := &fakeInjector{}
	if err := s.run(context.Background(), inj); err != nil {
		t.Fatal(err)
	}
	if len(inj.hooks) != 0 {
		t.Errorf("static scene should not install hooks, got %d", len(inj.hooks))
	}

	_, point := s.lights.Snapshot(nil, nil)
	if len(point) != 1 || point[0].Radius != 25 || point[0].Position != (mgl32.Vec3{0, 3, 0}) {
		t.Errorf("unexpected point light %+v", point)
	}
}

func TestScriptCapacityError(t *testing.T) {
	cfg := config.SceneConfig{
		DirectionalLights: make([]config.DirectionalLightConfig, lighting.MaxDirectionalLights+1),
	}
	s := newScript(cfg)

	err := s.run(context.Background(), &fakeInjector{})
	if !errors.Is(err, lighting.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if n, _ := s.lights.Len(); n != lighting.MaxDirectionalLights {
		t.Errorf("expected registry to stay at %d, got %d", lighting.MaxDirectionalLights, n)
	}
}

func TestScriptObjectError(t *testing.T) {
	cfg := config.SceneConfig{
		Objects: []config.ObjectConfig{{Asset: "missing.yaml"}},
	}
	s := newScript(cfg)

	err := s.run(context.Background(), &fakeInjector{fail: "missing.yaml"})
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewCamera(t *testing.T) {
	c := config.Default().Camera
	cam := newCamera(c)

	if cam.Position != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("unexpected position %v", cam.Position)
	}
	if !approxVec(cam.LookDirection(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected camera facing -Z, got %v", cam.LookDirection())
	}
	if cam.MoveSensitivity != 0.01 {
		t.Errorf("expected move sensitivity 0.01, got %f", cam.MoveSensitivity)
	}
}

func TestNewAimCamera(t *testing.T) {
	aim := newAimCamera(config.Default().Scene.DirectionalLights)
	if aim.Pitch != orient.MinPitch {
		t.Errorf("expected aim clamped to look down, got pitch %f", aim.Pitch)
	}

	aim = newAimCamera(nil)
	if aim.Yaw != camera.New().Yaw {
		t.Error("expected default orientation without a following light")
	}
}

func TestColor(t *testing.T) {
	def := lighting.White
	tests := []struct {
		in   []float32
		want lighting.Color
	}{
		{nil, def},
		{[]float32{1, 0, 0}, lighting.Color{1, 0, 0, 1}},
		{[]float32{0, 1, 0, 0.5}, lighting.Color{0, 1, 0, 0.5}},
		{[]float32{1, 2}, def},
	}
	for _, tt := range tests {
		if got := color(tt.in, def); got != tt.want {
			t.Errorf("color(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
