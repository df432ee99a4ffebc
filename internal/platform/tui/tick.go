// Package tui hosts the game in a terminal with Bubble Tea. It owns the
// frame scheduler, keyboard bindings and the conversion of cell screens to
// styled output.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance one frame. Gen is the controller
// generation the tick was scheduled for; ticks from an older generation are
// dropped, so a reset never races a tick scheduled before it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// frameInterval returns the duration of one frame at tickRate.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame for generation gen.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
