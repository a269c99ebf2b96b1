package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/internal/engine/camera"
)

type move struct{ x, y, z float32 }

type fakeNavigator struct {
	rotations [][2]float32
	moves     []move
	scale     float32
}

func (n *fakeNavigator) AddRotation(dx, dy float32) {
	n.rotations = append(n.rotations, [2]float32{dx, dy})
}

func (n *fakeNavigator) Move(x, y, z float32) {
	n.moves = append(n.moves, move{x, y, z})
}

func (n *fakeNavigator) MoveScale() float32 {
	return n.scale
}

type fakePointer struct {
	warps [][2]int
}

func (p *fakePointer) Warp(x, y int) {
	p.warps = append(p.warps, [2]int{x, y})
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

// approxVec compares componentwise with an absolute tolerance, so float32
// trig residue around zero passes.
func approxVec(a, b mgl32.Vec3) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}

func TestHeldKeysMovePerTick(t *testing.T) {
	tests := []struct {
		key  Key
		want move
	}{
		{'W', move{0, 0, 1}},
		{'S', move{0, 0, -1}},
		{'A', move{-1, 0, 0}},
		{'D', move{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			nav := &fakeNavigator{}
			b := NewBinding(nav, nil, nil, Options{BaselineFPS: 144})

			b.Handle(Event{Type: EventKeyDown, Key: tt.key})
			b.Tick(1.0 / 144)

			if len(nav.moves) != 1 {
				t.Fatalf("expected one move, got %v", nav.moves)
			}
			m := nav.moves[0]
			if !approx(m.x, tt.want.x) || !approx(m.y, tt.want.y) || !approx(m.z, tt.want.z) {
				t.Errorf("move %v, want %v", m, tt.want)
			}

			b.Handle(Event{Type: EventKeyUp, Key: tt.key})
			b.Tick(1.0 / 144)
			if len(nav.moves) != 1 {
				t.Error("released key should stop moving")
			}
		})
	}
}

func TestFrameRateNormalization(t *testing.T) {
	nav := &fakeNavigator{}
	b := NewBinding(nav, nil, nil, Options{BaselineFPS: 144})
	b.Handle(Event{Type: EventKeyDown, Key: 'W'})

	// one 60 Hz frame covers 144/60 baseline ticks
	b.Tick(1.0 / 60)
	if got := nav.moves[0].z; !approx(got, 144.0/60.0) {
		t.Errorf("expected %f, got %f", 144.0/60.0, got)
	}

	b.Tick(0)
	if len(nav.moves) != 1 {
		t.Error("zero dt should not move")
	}
}

func TestRebindKeys(t *testing.T) {
	keys, err := ParseKeyMap(map[string]string{"forward": "up"})
	if err != nil {
		t.Fatal(err)
	}
	nav := &fakeNavigator{}
	b := NewBinding(nav, nil, nil, Options{Keys: keys})

	b.Handle(Event{Type: EventKeyDown, Key: KeyUp})
	if !b.Held(ActionForward) {
		t.Error("expected forward held after Up")
	}
	b.Handle(Event{Type: EventKeyDown, Key: 'A'})
	if !b.Held(ActionLeft) {
		t.Error("default left binding should survive")
	}
}

func TestRightDragRotatesView(t *testing.T) {
	view := &fakeNavigator{}
	aim := &fakeNavigator{}
	ptr := &fakePointer{}
	b := NewBinding(view, aim, ptr, Options{})

	// not dragging
	b.Handle(Event{Type: EventMouseMove, X: 5, Y: 5, DX: 3, DY: 4})
	if len(view.rotations) != 0 {
		t.Fatal("move without drag should not rotate")
	}

	b.Handle(Event{Type: EventMouseButtonDown, Button: ButtonRight, X: 100, Y: 50})
	b.Handle(Event{Type: EventMouseMove, X: 110, Y: 45, DX: 10, DY: -5})
	if len(view.rotations) != 1 || view.rotations[0] != [2]float32{10, -5} {
		t.Fatalf("unexpected rotations %v", view.rotations)
	}
	if len(aim.rotations) != 0 {
		t.Error("right drag must not rotate the aim")
	}

	// tick re-centers and the echo of the warp is ignored
	b.Tick(0.01)
	if len(ptr.warps) != 1 || ptr.warps[0] != [2]int{100, 50} {
		t.Fatalf("expected warp to drag origin, got %v", ptr.warps)
	}
	b.Handle(Event{Type: EventMouseMove, X: 100, Y: 50, DX: -10, DY: 5})
	if len(view.rotations) != 1 {
		t.Error("warp echo should be ignored")
	}
	b.Handle(Event{Type: EventMouseMove, X: 102, Y: 50, DX: 2})
	if len(view.rotations) != 2 {
		t.Error("motion after the echo should rotate")
	}

	b.Handle(Event{Type: EventMouseButtonUp, Button: ButtonRight})
	b.Tick(0.01)
	if len(ptr.warps) != 1 {
		t.Error("no warp after drag ends")
	}
}

func TestLeftDragRotatesAim(t *testing.T) {
	view := &fakeNavigator{}
	aim := &fakeNavigator{}
	b := NewBinding(view, aim, nil, Options{})

	b.Handle(Event{Type: EventMouseButtonDown, Button: ButtonLeft, X: 10, Y: 10})
	b.Handle(Event{Type: EventMouseMove, DX: 1, DY: 2})

	if len(aim.rotations) != 1 || len(view.rotations) != 0 {
		t.Errorf("expected aim rotation only, got aim=%v view=%v", aim.rotations, view.rotations)
	}
	// no pointer configured
	b.Tick(0.01)
}

func TestDragStartKeepsFirstPosition(t *testing.T) {
	ptr := &fakePointer{}
	b := NewBinding(&fakeNavigator{}, &fakeNavigator{}, ptr, Options{})

	b.Handle(Event{Type: EventMouseButtonDown, Button: ButtonRight, X: 1, Y: 2})
	b.Handle(Event{Type: EventMouseButtonDown, Button: ButtonRight, X: 9, Y: 9})
	b.Tick(0.01)

	if ptr.warps[0] != [2]int{1, 2} {
		t.Errorf("expected warp to first press, got %v", ptr.warps[0])
	}
}

func TestWheelMovesImmediately(t *testing.T) {
	nav := &fakeNavigator{scale: 0.01}
	b := NewBinding(nav, nil, nil, Options{})

	b.Handle(Event{Type: EventMouseWheel, Wheel: 2})

	if len(nav.moves) != 1 {
		t.Fatalf("expected one move, got %v", nav.moves)
	}
	// 2 notches * 0.25 / sensitivity, so the camera travels 0.5 world units
	if got := nav.moves[0].z; !approx(got, 50) {
		t.Errorf("expected z 50, got %f", got)
	}
}

func TestWheelWithCamera(t *testing.T) {
	cam := camera.New() // yaw π: forward is -Z
	cam.MoveSensitivity = 0.01
	b := NewBinding(cam, nil, nil, Options{})

	b.Handle(Event{Type: EventMouseWheel, Wheel: 1})

	want := mgl32.Vec3{0, 0, -0.25}
	if !approxVec(cam.Position, want) {
		t.Errorf("expected %v, got %v", want, cam.Position)
	}
}

func TestQuitRequests(t *testing.T) {
	b := NewBinding(&fakeNavigator{}, nil, nil, Options{})
	if b.QuitRequested() {
		t.Fatal("fresh binding should not quit")
	}
	b.Handle(Event{Type: EventKeyDown, Key: KeyEscape})
	if !b.QuitRequested() {
		t.Error("Escape should request quit")
	}

	b = NewBinding(&fakeNavigator{}, nil, nil, Options{})
	b.Handle(Event{Type: EventQuit})
	if !b.QuitRequested() {
		t.Error("quit event should request quit")
	}
}

func TestFocusLostReleases(t *testing.T) {
	nav := &fakeNavigator{}
	b := NewBinding(nav, nil, nil, Options{})

	b.Handle(Event{Type: EventKeyDown, Key: 'W'})
	b.Handle(Event{Type: EventMouseButtonDown, Button: ButtonRight})
	b.Handle(Event{Type: EventFocusLost})

	if b.Held(ActionForward) || b.Dragging() {
		t.Error("focus loss should release keys and drags")
	}
	b.Tick(0.01)
	if len(nav.moves) != 0 {
		t.Error("no movement after focus loss")
	}

	b.Handle(Event{Type: EventFocusGained})
	b.Handle(Event{Type: EventMouseButtonDown, Button: ButtonRight})
	b.Handle(Event{Type: EventMouseMove, DX: 1})
	if len(nav.rotations) != 1 {
		t.Error("expected rotation after focus returns")
	}
}

func TestCursor(t *testing.T) {
	b := NewBinding(&fakeNavigator{}, nil, nil, Options{})
	b.Handle(Event{Type: EventMouseMove, X: 640, Y: 360})
	if x, y := b.Cursor(); x != 640 || y != 360 {
		t.Errorf("expected cursor (640, 360), got (%d, %d)", x, y)
	}
}
