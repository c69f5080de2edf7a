package core

// Action is a semantic game input, decoupled from the physical key.
type Action uint8

const (
	ActionNone    Action = iota
	ActionDrop           // release the swinging block
	ActionPause          // toggle pause
	ActionRestart        // start over after game over
	ActionBack           // leave the round for the menu
	ActionQuit           // exit the program
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionDrop:    "Drop",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame holds the actions triggered during one simulation tick.
// It is a bit set, so pressing the same key twice within a tick is
// indistinguishable from pressing it once.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	if a == ActionNone || a >= actionCount {
		return false
	}
	return f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear drops every action for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}
