// Package input translates window events into camera navigation.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusGained
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseWheel
)

// Button is a mouse button, numbered like SDL.
type Button uint8

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// Event is a platform independent input event.
type Event struct {
	Type   EventType
	Key    Key
	Button Button

	// Pointer position in window coordinates and, for moves, the relative motion.
	X, Y   int
	DX, DY int

	// Wheel is the vertical scroll amount, positive away from the user.
	Wheel float32

	// Window size for EventWindowResize.
	Width, Height int
}
