// Package tui provides the Bubble Tea shell around the tower game.
// It owns the terminal loop, maps keys to actions, and forwards game events
// to the audio, wallet and score collaborators.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval is the wall-clock duration of one simulation tick.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 120
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a command that sends a tick message after one interval.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
