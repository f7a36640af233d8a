package core

// Action represents a semantic game action, abstracted from physical key
// presses. The platform keymap translates keys to actions; game logic only
// ever sees actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // k, Up arrow - move up one cell
	ActionDown           // j, Down arrow - move down one cell
	ActionLeft           // h, Left arrow - move left one cell
	ActionRight          // l, Right arrow - move right one cell
	ActionLineStart      // 0 - jump to first column of the current row
	ActionLineEnd        // $ - jump to last column of the current row
	ActionTop            // gg - jump to the first row
	ActionBottom         // G - jump to the last row
	ActionSearch         // / - open the search prompt
	ActionConfirm        // Enter - confirm selection on menu screens
	ActionBack           // Esc - leave the command line / go back
	ActionCommand        // : - open the ex-command line
	ActionQuit           // Ctrl+C - hard quit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLineStart:
		return "LineStart"
	case ActionLineEnd:
		return "LineEnd"
	case ActionTop:
		return "Top"
	case ActionBottom:
		return "Bottom"
	case ActionSearch:
		return "Search"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionCommand:
		return "Command"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Dir returns the cardinal direction for single-step movement actions.
// ok is false for every other action.
func (a Action) Dir() (d Direction, ok bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return DirUp, false
}

// MotionCategory groups host motions for per-level blocking. Levels declare
// blocked categories so that "cheat" navigation (long jumps straight to the
// exit) can be rejected by the platform before any movement happens.
type MotionCategory int

const (
	MotionStep MotionCategory = iota // h j k l and arrows; never blockable
	MotionLine                       // 0, $
	MotionJump                       // gg, G
	MotionSearch                     // /, ?
)

// Category returns the motion category of a movement action.
// Non-movement actions report MotionStep, which is never blocked.
func (a Action) Category() MotionCategory {
	switch a {
	case ActionLineStart, ActionLineEnd:
		return MotionLine
	case ActionTop, ActionBottom:
		return MotionJump
	case ActionSearch:
		return MotionSearch
	}
	return MotionStep
}

// ParseMotionCategory converts a level-file category name.
func ParseMotionCategory(s string) (MotionCategory, bool) {
	switch s {
	case "line":
		return MotionLine, true
	case "jump":
		return MotionJump, true
	case "search":
		return MotionSearch, true
	}
	return MotionStep, false
}
