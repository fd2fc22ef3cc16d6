package core

import "strings"

// Action is a key-independent command.
type Action uint8

const (
	ActionNone Action = iota
	ActionJump        // flap
	ActionDuck        // dive
	ActionConfirm
	ActionBack // leave for the menu
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{"None", "Jump", "Duck", "Confirm", "Back", "Restart", "Quit", "Pause"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions pressed during one tick. The zero value
// is an empty frame, and frames copy by value.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds a to the frame.
func (f *InputFrame) Set(a Action) {
	f.bits |= 1 << a
}

// Has reports whether a is in the frame.
func (f InputFrame) Has(a Action) bool {
	return f.bits&(1<<a) != 0
}

// Clear empties the frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Empty reports whether no action is set.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// String lists the actions in the frame, e.g. "Jump|Pause".
func (f InputFrame) String() string {
	var names []string
	for a := ActionJump; int(a) < len(actionNames); a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}
