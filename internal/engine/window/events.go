package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/engine/input"
)

// PollEvents drains the SDL queue, appending translated events to buf.
func (w *Window) PollEvents(buf []input.Event) []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			buf = append(buf, e)
		}
	}
	return buf
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			return input.Event{Type: input.EventFocusGained}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return input.Event{Type: input.EventFocusLost}, true
		case sdl.WINDOWEVENT_CLOSE:
			return input.Event{Type: input.EventQuit}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		key := translateKey(e.Keysym.Scancode)
		if key == input.KeyUnknown {
			return input.Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return input.Event{Type: input.EventKeyDown, Key: key}, true
		}
		return input.Event{Type: input.EventKeyUp, Key: key}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type: input.EventMouseMove,
			X:    int(e.X),
			Y:    int(e.Y),
			DX:   int(e.XRel),
			DY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		t := input.EventMouseButtonUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = input.EventMouseButtonDown
		}
		return input.Event{
			Type:   t,
			Button: input.Button(e.Button),
			X:      int(e.X),
			Y:      int(e.Y),
		}, true

	case *sdl.MouseWheelEvent:
		wheel := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			wheel = -wheel
		}
		return input.Event{Type: input.EventMouseWheel, Wheel: wheel}, true
	}
	return input.Event{}, false
}

var specialScancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE:    input.KeyEscape,
	sdl.SCANCODE_SPACE:     input.KeySpace,
	sdl.SCANCODE_RETURN:    input.KeyEnter,
	sdl.SCANCODE_TAB:       input.KeyTab,
	sdl.SCANCODE_BACKSPACE: input.KeyBackspace,
	sdl.SCANCODE_UP:        input.KeyUp,
	sdl.SCANCODE_DOWN:      input.KeyDown,
	sdl.SCANCODE_LEFT:      input.KeyLeft,
	sdl.SCANCODE_RIGHT:     input.KeyRight,
	sdl.SCANCODE_LSHIFT:    input.KeyLeftShift,
	sdl.SCANCODE_RSHIFT:    input.KeyRightShift,
	sdl.SCANCODE_LCTRL:     input.KeyLeftCtrl,
	sdl.SCANCODE_RCTRL:     input.KeyRightCtrl,
	sdl.SCANCODE_LALT:      input.KeyLeftAlt,
	sdl.SCANCODE_RALT:      input.KeyRightAlt,
}

// translateKey maps physical key positions, so WASD stays in place on
// non-QWERTY layouts.
func translateKey(sc sdl.Scancode) input.Key {
	switch {
	case sc >= sdl.SCANCODE_A && sc <= sdl.SCANCODE_Z:
		return input.Letter(rune('A' + (sc - sdl.SCANCODE_A)))
	case sc >= sdl.SCANCODE_1 && sc <= sdl.SCANCODE_9:
		return input.Letter(rune('1' + (sc - sdl.SCANCODE_1)))
	case sc == sdl.SCANCODE_0:
		return input.Key('0')
	}
	return specialScancodes[sc]
}
