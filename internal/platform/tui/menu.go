package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

// MenuModel is the stage picker.
type MenuModel struct {
	levels       []*core.Level
	stats        map[string]*storage.LevelStats
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	selected     *core.Level
	history      bool
	quitting     bool
	back         bool
}

// NewMenuModel creates a stage picker over the given levels.
// The store is optional and only used to show best results.
func NewMenuModel(levels []*core.Level, store *storage.Store, theme Theme, width, height int) MenuModel {
	m := MenuModel{
		levels:    levels,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     theme,
	}
	if store != nil {
		if stats, err := store.AllLevelStats(); err == nil {
			m.stats = stats
		}
	}
	return m
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.levels[m.cursor]
		}
	case MenuActionHistory:
		m.history = true
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m MenuModel) visibleItems() int {
	n := m.height - 10 // header and footer
	if n < 3 {
		n = 3
	}
	return n
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the stage list.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("B L O X O R Z"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(t.MenuDescription.Render("Select a stage:"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(t.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := m.scrollOffset + m.visibleItems()
	if end > len(m.levels) {
		end = len(m.levels)
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := t.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = t.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+m.itemLabel(m.levels[i])), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(t.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(t.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := t.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: History  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) itemLabel(l *core.Level) string {
	label := fmt.Sprintf("%-10s %2dx%-2d", l.ID, l.Board.W, l.Board.H)
	if l.Name != "" && l.Name != l.ID {
		label += "  " + l.Name
	}
	if st := m.stats[l.ID]; st != nil && st.BestMoves > 0 {
		label += fmt.Sprintf("  best %d", st.BestMoves)
	}
	return label
}

// Selected returns the chosen level, or nil if still choosing.
func (m MenuModel) Selected() *core.Level {
	return m.selected
}

// WantsHistory returns true if the user asked for the history screen.
func (m MenuModel) WantsHistory() bool {
	return m.history
}

// IsQuitting returns true if user wants to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MenuModel) WantsBack() bool {
	return m.back
}

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
