// Package tui provides the Bubble Tea integration for the game. It owns
// the terminal loop, the vi-style input mapping, the heartbeat that
// drives the tick scheduler, and screen rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the heartbeat frequency in ticks per second. 50ms
// ticks keep patrol movement smooth without flooding the event loop.
const DefaultTickRate = 20

// TickMsg is sent to trigger one scheduler advance.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
