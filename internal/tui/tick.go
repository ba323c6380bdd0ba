// Package tui provides the Bubble Tea game interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the periodic stat recomputation. The epoch pins the
// message to the session run it was scheduled for; ticks from an older
// epoch are dropped instead of mutating a fresh session.
type TickMsg struct {
	Epoch int
	At    time.Time
}

func tickCmd(interval time.Duration, epoch int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, At: t}
	})
}
