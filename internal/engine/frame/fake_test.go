package frame

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

// Location layout of the fake program.
const (
	locCamera   = 3
	locModel    = 4
	locDiffuse  = 5
	locSpecular = 6
	locAmbient  = 7
	locEmit     = 8

	dirBase   = 100  // dLights[i] fields at dirBase + i*DirectionalFields + field
	pointBase = 1000 // pLights[i] fields at pointBase + i*PointFields + field
)

type call struct {
	op    string
	loc   int32
	value any
}

type fakeGeometry struct {
	draws    int
	released int
	err      error
}

func (g *fakeGeometry) Draw() error {
	g.draws++
	return g.err
}

func (g *fakeGeometry) Release() {
	g.released++
}

// fakeDevice records the calls of the current frame. Clear starts a new
// recording.
type fakeDevice struct {
	width, height int

	locations map[string]int32
	calls     []call
	enabled   map[Capability]bool

	uploads   []*assets.Mesh
	uploadErr error
	swaps     int
}

func newFakeDevice() *fakeDevice {
	d := &fakeDevice{
		width:  1280,
		height: 720,
		locations: map[string]int32{
			"camera":        locCamera,
			"model":         locModel,
			"diffuseColor":  locDiffuse,
			"specularColor": locSpecular,
			"ambientColor":  locAmbient,
			"emitColor":     locEmit,
		},
		enabled: make(map[Capability]bool),
	}
	u := DefaultUniforms()
	for i := 0; i < lighting.MaxDirectionalLights; i++ {
		for f, field := range u.DirectionalFields {
			d.locations[lightUniform("dLights", i, field)] = int32(dirBase + i*lighting.DirectionalFields + f)
		}
	}
	for i := 0; i < lighting.MaxPointLights; i++ {
		for f, field := range u.PointFields {
			d.locations[lightUniform("pLights", i, field)] = int32(pointBase + i*lighting.PointFields + f)
		}
	}
	return d
}

func (d *fakeDevice) record(op string, loc int32, v any) {
	d.calls = append(d.calls, call{op: op, loc: loc, value: v})
}

func (d *fakeDevice) Viewport() (int, int) { return d.width, d.height }

func (d *fakeDevice) Clear() {
	d.calls = d.calls[:0]
	d.record("clear", -1, nil)
}

func (d *fakeDevice) Disable(c Capability) {
	d.enabled[c] = false
	d.record("disable", -1, c)
}

func (d *fakeDevice) Enable(c Capability) {
	d.enabled[c] = true
	d.record("enable", -1, c)
}

func (d *fakeDevice) UniformLocation(name string) int32 {
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) UniformMatrix4(loc int32, m mgl32.Mat4) { d.record("mat4", loc, m) }
func (d *fakeDevice) Uniform4(loc int32, v mgl32.Vec4)       { d.record("vec4", loc, v) }
func (d *fakeDevice) Uniform3(loc int32, v mgl32.Vec3)       { d.record("vec3", loc, v) }
func (d *fakeDevice) Uniform1f(loc int32, v float32)         { d.record("float", loc, v) }
func (d *fakeDevice) Uniform1i(loc int32, v int32)           { d.record("int", loc, v) }

func (d *fakeDevice) Upload(mesh *assets.Mesh) (scene.Geometry, error) {
	if d.uploadErr != nil {
		return nil, d.uploadErr
	}
	d.uploads = append(d.uploads, mesh)
	return &fakeGeometry{}, nil
}

func (d *fakeDevice) Swap() {
	d.swaps++
	d.record("swap", -1, nil)
}

// callsIn returns the recorded uniform calls with lo <= loc < hi.
func (d *fakeDevice) callsIn(lo, hi int32) []call {
	var out []call
	for _, c := range d.calls {
		if c.loc >= lo && c.loc < hi {
			out = append(out, c)
		}
	}
	return out
}

// fakeSource serves meshes from memory.
type fakeSource map[assets.Descriptor]*assets.Mesh

var errNoMesh = errors.New("no such mesh")

func (s fakeSource) Load(desc assets.Descriptor) (*assets.Mesh, error) {
	if m, ok := s[desc]; ok {
		return m, nil
	}
	return nil, errNoMesh
}

type fixture struct {
	dev    *fakeDevice
	cam    *camera.Camera
	lights *lighting.Registry
	queue  *scene.Queue
	orch   *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		dev:    newFakeDevice(),
		cam:    camera.New(),
		lights: lighting.NewRegistry(),
		queue:  scene.NewQueue(),
	}
	opts := Options{
		Assets: fakeSource{"builtin:cube": assets.Cube()},
	}
	orch, err := New(f.dev, f.cam, f.lights, f.queue, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.orch = orch
	return f
}
