package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bloxorz/internal/config"
)

// Theme contains all visual styles of the player and its menus.
type Theme struct {
	// Board tiles
	Empty      lipgloss.Style
	Hard       lipgloss.Style
	Soft       lipgloss.Style
	Goal       lipgloss.Style
	BridgeUp   lipgloss.Style
	BridgeDown lipgloss.Style
	Switch     lipgloss.Style
	Teleporter lipgloss.Style
	Block      lipgloss.Style
	BlockGhost lipgloss.Style // block cells while a roll is in flight
	Flash      lipgloss.Style // bridge cells that just changed

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDControls lipgloss.Style
	Banner      lipgloss.Style
	Status      lipgloss.Style

	// Stage picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// NewTheme builds the theme from the configured tile colors.
// Empty colors fall back to the defaults.
func NewTheme(tc config.ThemeConfig) Theme {
	def := config.DefaultConfig().Play.Theme
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}

	block := pick(tc.Block, def.Block)
	bridge := pick(tc.Bridge, def.Bridge)

	return Theme{
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Hard:       lipgloss.NewStyle().Foreground(pick(tc.Hard, def.Hard)),
		Soft:       lipgloss.NewStyle().Foreground(pick(tc.Soft, def.Soft)),
		Goal:       lipgloss.NewStyle().Foreground(pick(tc.Goal, def.Goal)).Bold(true),
		BridgeUp:   lipgloss.NewStyle().Foreground(bridge).Bold(true),
		BridgeDown: lipgloss.NewStyle().Foreground(bridge).Faint(true),
		Switch:     lipgloss.NewStyle().Foreground(pick(tc.Switch, def.Switch)).Bold(true),
		Teleporter: lipgloss.NewStyle().Foreground(pick(tc.Teleporter, def.Teleporter)).Bold(true),
		Block:      lipgloss.NewStyle().Foreground(block).Bold(true),
		BlockGhost: lipgloss.NewStyle().Foreground(block).Faint(true),
		Flash:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		HUDTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Banner:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	return NewTheme(config.DefaultConfig().Play.Theme)
}
