package input

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key. Letters and digits use their upper case
// ASCII code; other keys live above 0xFF.
type Key uint16

const KeyUnknown Key = 0

const (
	KeyEscape Key = 0x100 + iota
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
)

var specialKeys = map[Key]string{
	KeyEscape:     "Escape",
	KeySpace:      "Space",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyLeftShift:  "LeftShift",
	KeyRightShift: "RightShift",
	KeyLeftCtrl:   "LeftCtrl",
	KeyRightCtrl:  "RightCtrl",
	KeyLeftAlt:    "LeftAlt",
	KeyRightAlt:   "RightAlt",
}

// Letter returns the key for an ASCII letter or digit.
func Letter(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return Key(r - 'a' + 'A')
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return Key(r)
	}
	return KeyUnknown
}

func (k Key) String() string {
	if k >= 'A' && k <= 'Z' || k >= '0' && k <= '9' {
		return string(rune(k))
	}
	if name, ok := specialKeys[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ParseKey maps a name such as "W", "up" or "LeftShift" to a key.
func ParseKey(name string) (Key, error) {
	n := strings.TrimSpace(name)
	if r := []rune(n); len(r) == 1 {
		if k := Letter(r[0]); k != KeyUnknown {
			return k, nil
		}
	}
	for k, s := range specialKeys {
		if strings.EqualFold(s, n) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Action is a held navigation command.
type Action int

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight

	actionCount
)

var actionNames = [actionCount]string{
	ActionForward: "forward",
	ActionBack:    "back",
	ActionLeft:    "left",
	ActionRight:   "right",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a config name to an action.
func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range actionNames {
		if s == n {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// DefaultKeys binds W/S/A/D.
func DefaultKeys() map[Action]Key {
	return map[Action]Key{
		ActionForward: 'W',
		ActionBack:    'S',
		ActionLeft:    'A',
		ActionRight:   'D',
	}
}

// ParseKeyMap converts config names into a key map layered over DefaultKeys.
func ParseKeyMap(names map[string]string) (map[Action]Key, error) {
	keys := DefaultKeys()
	for action, key := range names {
		a, err := ParseAction(action)
		if err != nil {
			return nil, err
		}
		k, err := ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		keys[a] = k
	}
	return keys, nil
}
