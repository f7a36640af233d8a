package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"vimaze/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyMotions(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey('h'), core.ActionLeft},
		{runeKey('j'), core.ActionDown},
		{runeKey('k'), core.ActionUp},
		{runeKey('l'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey('0'), core.ActionLineStart},
		{runeKey('$'), core.ActionLineEnd},
		{runeKey('G'), core.ActionBottom},
		{runeKey('/'), core.ActionSearch},
		{runeKey(':'), core.ActionCommand},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('z'), core.ActionNone},
	}
	for _, tc := range cases {
		km := NewKeyMapper()
		if got := km.MapKey(tc.msg); got != tc.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestMapKeyDoubleG(t *testing.T) {
	km := NewKeyMapper()

	if got := km.MapKey(runeKey('g')); got != core.ActionNone {
		t.Fatalf("first g = %v, expected none while pending", got)
	}
	if got := km.MapKey(runeKey('g')); got != core.ActionTop {
		t.Fatalf("gg = %v, expected top jump", got)
	}

	// A third g starts a fresh pending sequence
	if got := km.MapKey(runeKey('g')); got != core.ActionNone {
		t.Fatalf("g after gg = %v, expected none", got)
	}
}

func TestMapKeyPendingGDisarmedByOtherKey(t *testing.T) {
	km := NewKeyMapper()
	km.MapKey(runeKey('g'))

	if got := km.MapKey(runeKey('j')); got != core.ActionDown {
		t.Errorf("g then j = %v, expected down", got)
	}
	if got := km.MapKey(runeKey('g')); got != core.ActionNone {
		t.Errorf("pending was not re-armed cleanly: %v", got)
	}
}

func TestMapKeyResetClearsPending(t *testing.T) {
	km := NewKeyMapper()
	km.MapKey(runeKey('g'))
	km.Reset()

	if got := km.MapKey(runeKey('g')); got != core.ActionNone {
		t.Errorf("g after reset = %v, expected a fresh pending state", got)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	cases := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('j'), MenuActionDown},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey(':'), MenuActionCommand},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tc := range cases {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestRuneIndex(t *testing.T) {
	// The 3-byte wall rune must not skew the character column
	line := "██ Q ██"
	if got := runeIndex(line, "Q"); got != 4 {
		t.Errorf("runeIndex = %d, expected 4", got)
	}
	if got := runeIndex(line, "missing"); got != 0 {
		t.Errorf("runeIndex for absent needle = %d, expected 0", got)
	}
}
