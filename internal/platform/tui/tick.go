package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance animations and replays by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// framesFor converts a duration in milliseconds to a whole number of ticks, at least one.
func framesFor(ms, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 30
	}
	n := ms * tickRate / 1000
	if n < 1 {
		return 1
	}
	return n
}
