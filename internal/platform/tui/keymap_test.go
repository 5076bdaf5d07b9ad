package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPlayKeyMapActions(t *testing.T) {
	keys := DefaultPlayKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"vim k", runeKey('k'), core.ActionUp},
		{"vim l", runeKey('l'), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSwap},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionSwap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keys.ActionFor(tt.msg)
			if !ok {
				t.Fatalf("ActionFor(%q) reported no action", tt.msg.String())
			}
			if got != tt.want {
				t.Errorf("ActionFor(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestPlayKeyMapNonMoves(t *testing.T) {
	keys := DefaultPlayKeyMap()
	for _, r := range []rune{'s', 'r', 'q', '?', 'x'} {
		if a, ok := keys.ActionFor(runeKey(r)); ok {
			t.Errorf("key %q should not be a move, got %v", r, a)
		}
	}
}

func TestPlayKeyMapHelp(t *testing.T) {
	keys := DefaultPlayKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 10 {
		t.Errorf("FullHelp lists %d bindings, want 10", total)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestFramesFor(t *testing.T) {
	tests := []struct {
		ms, rate, want int
	}{
		{250, 30, 7},
		{120, 30, 3},
		{1, 30, 1},
		{1000, 0, 30},
	}
	for _, tt := range tests {
		if got := framesFor(tt.ms, tt.rate); got != tt.want {
			t.Errorf("framesFor(%d, %d) = %d, want %d", tt.ms, tt.rate, got, tt.want)
		}
	}
}
