package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"vimaze/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions. It is
// stateful: the two-key `gg` motion keeps a pending flag between
// presses. This centralizes key bindings and makes them testable.
type KeyMapper struct {
	pendingG bool
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a gameplay action. A lone `g`
// yields ActionNone and arms the pending state; a second `g` completes
// the top jump. Any other key disarms it.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	key := msg.String()

	if km.pendingG {
		km.pendingG = false
		if key == "g" {
			return core.ActionTop
		}
		// fall through and map the key normally
	} else if key == "g" {
		km.pendingG = true
		return core.ActionNone
	}

	switch key {
	case "ctrl+c":
		return core.ActionQuit
	case "k", "up":
		return core.ActionUp
	case "j", "down":
		return core.ActionDown
	case "h", "left":
		return core.ActionLeft
	case "l", "right":
		return core.ActionRight
	case "0", "home":
		return core.ActionLineStart
	case "$", "end":
		return core.ActionLineEnd
	case "G":
		return core.ActionBottom
	case "/":
		return core.ActionSearch
	case ":":
		return core.ActionCommand
	case "enter":
		return core.ActionConfirm
	case "esc":
		return core.ActionBack
	}

	return core.ActionNone
}

// Reset clears any pending multi-key state, for screen changes.
func (km *KeyMapper) Reset() {
	km.pendingG = false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionCommand
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a lore-screen action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c":
		return MenuActionQuit
	case "k", "up":
		return MenuActionUp
	case "j", "down":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case ":":
		return MenuActionCommand
	}

	return MenuActionNone
}
