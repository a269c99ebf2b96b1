package input

import (
	"github.com/Faultbox/sceneview/internal/engine/camera"
)

// Pointer moves the system cursor, in window coordinates.
type Pointer interface {
	Warp(x, y int)
}

// moveScaler is implemented by navigators whose Move scales its offset.
type moveScaler interface {
	MoveScale() float32
}

// Defaults for Options.
const (
	DefaultBaselineFPS = 144
	DefaultWheelStep   = 0.25
)

// Options configures a Binding.
type Options struct {
	// BaselineFPS is the refresh rate at which a held key moves one unit per tick.
	BaselineFPS float32
	// WheelStep is the world distance of one wheel notch.
	WheelStep float32
	// Keys maps actions to keys. Nil means DefaultKeys.
	Keys map[Action]Key
}

// Binding turns events and held keys into navigation calls.
//
// Right-drag rotates the view camera, left-drag rotates the optional aim
// navigator. While a drag is active the pointer is re-centered every tick
// so deltas stay unbounded. A Binding is used from the render goroutine only.
type Binding struct {
	view    camera.Navigator
	aim     camera.Navigator
	pointer Pointer

	keys      map[Key]Action
	held      [actionCount]bool
	baseline  float32
	wheelStep float32

	rightDown bool
	leftDown  bool
	warping   bool
	focused   bool
	lastX     int
	lastY     int
	cursorX   int
	cursorY   int

	quit bool
}

// NewBinding creates a binding driving view. aim and pointer may be nil.
func NewBinding(view, aim camera.Navigator, pointer Pointer, opts Options) *Binding {
	if opts.BaselineFPS <= 0 {
		opts.BaselineFPS = DefaultBaselineFPS
	}
	if opts.WheelStep <= 0 {
		opts.WheelStep = DefaultWheelStep
	}
	if opts.Keys == nil {
		opts.Keys = DefaultKeys()
	}

	b := &Binding{
		view:      view,
		aim:       aim,
		pointer:   pointer,
		keys:      make(map[Key]Action, len(opts.Keys)),
		baseline:  opts.BaselineFPS,
		wheelStep: opts.WheelStep,
		focused:   true,
	}
	for a, k := range opts.Keys {
		b.keys[k] = a
	}
	return b
}

// SetView replaces the navigator driven by right-drag, keys and wheel.
func (b *Binding) SetView(view camera.Navigator) {
	b.view = view
}

// Handle applies one event.
func (b *Binding) Handle(e Event) {
	switch e.Type {
	case EventQuit:
		b.quit = true

	case EventFocusGained:
		b.focused = true

	case EventFocusLost:
		b.focused = false
		b.release()

	case EventKeyDown:
		if e.Key == KeyEscape {
			b.quit = true
			return
		}
		if a, ok := b.keys[e.Key]; ok {
			b.held[a] = true
		}

	case EventKeyUp:
		if a, ok := b.keys[e.Key]; ok {
			b.held[a] = false
		}

	case EventMouseButtonDown:
		switch e.Button {
		case ButtonRight:
			if !b.rightDown {
				b.rightDown = true
				b.lastX, b.lastY = e.X, e.Y
			}
		case ButtonLeft:
			if !b.leftDown {
				b.leftDown = true
				b.lastX, b.lastY = e.X, e.Y
			}
		}

	case EventMouseButtonUp:
		switch e.Button {
		case ButtonRight:
			b.rightDown = false
		case ButtonLeft:
			b.leftDown = false
		}

	case EventMouseMove:
		if b.focused && !b.warping {
			if b.rightDown && b.view != nil {
				b.view.AddRotation(float32(e.DX), float32(e.DY))
			}
			if b.leftDown && b.aim != nil {
				b.aim.AddRotation(float32(e.DX), float32(e.DY))
			}
		}
		b.warping = false
		b.cursorX, b.cursorY = e.X, e.Y

	case EventMouseWheel:
		if b.view == nil || e.Wheel == 0 {
			return
		}
		dist := e.Wheel * b.wheelStep
		if s, ok := b.view.(moveScaler); ok && s.MoveScale() > 0 {
			dist /= s.MoveScale()
		}
		b.view.Move(0, 0, dist)
	}
}

// Tick runs once per frame. dt is the frame time in seconds.
func (b *Binding) Tick(dt float64) {
	if b.Dragging() && b.pointer != nil {
		b.warping = true
		b.pointer.Warp(b.lastX, b.lastY)
	}

	if b.view == nil || dt <= 0 {
		return
	}
	// baselineFPS / (1/dt): one unit per tick at the baseline refresh rate
	adj := b.baseline * float32(dt)
	if b.held[ActionForward] {
		b.view.Move(0, 0, adj)
	}
	if b.held[ActionBack] {
		b.view.Move(0, 0, -adj)
	}
	if b.held[ActionLeft] {
		b.view.Move(-adj, 0, 0)
	}
	if b.held[ActionRight] {
		b.view.Move(adj, 0, 0)
	}
}

// Held reports whether the action's key is down.
func (b *Binding) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return b.held[a]
}

// Dragging reports whether either drag button is down.
func (b *Binding) Dragging() bool {
	return b.rightDown || b.leftDown
}

// Cursor returns the last reported pointer position.
func (b *Binding) Cursor() (x, y int) {
	return b.cursorX, b.cursorY
}

// QuitRequested reports whether a quit event or Escape was seen.
func (b *Binding) QuitRequested() bool {
	return b.quit
}

// release drops held keys and drags, e.g. when focus moves elsewhere.
func (b *Binding) release() {
	b.held = [actionCount]bool{}
	b.rightDown = false
	b.leftDown = false
	b.warping = false
}
