package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

// Block glyphs, two columns per cell like every tile.
const (
	blockCell = "@@"
	ghostCell = "::"
)

// animation tracks an in-flight roll. It lives only in the UI: the game
// state has already moved when the animation starts.
type animation struct {
	from   core.Player
	frame  int
	frames int
	flash  map[int]bool // bridge ids switched by the move
}

func newAnimation(from core.Player, frames int, events []core.Event) animation {
	a := animation{from: from, frames: frames}
	for _, ev := range events {
		if ev.Kind == core.EventBridgeChanged {
			if a.flash == nil {
				a.flash = make(map[int]bool)
			}
			a.flash[ev.BridgeID] = true
		}
	}
	return a
}

func (a animation) active() bool {
	return a.frame < a.frames
}

// showsFrom reports whether the block is still drawn at its old cells.
func (a animation) showsFrom() bool {
	return a.active() && a.frame*2 < a.frames
}

func (a *animation) advance() {
	if a.active() {
		a.frame++
	}
}

// renderBoard draws the board with the block, two terminal columns per cell.
func renderBoard(t Theme, b *core.Board, s core.State, anim animation) string {
	var sb strings.Builder
	from := anim.showsFrom()
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := core.C(x, y)
			switch {
			case from && (c == anim.from.Block1 || c == anim.from.Block2):
				sb.WriteString(t.BlockGhost.Render(ghostCell))
			case !from && (c == s.Player.Block1 || c == s.Player.Block2):
				sb.WriteString(t.Block.Render(blockCell))
			default:
				sb.WriteString(renderTile(t, b, c, s.Bridges, anim))
			}
		}
		if y < b.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderTile(t Theme, b *core.Board, c core.Coord, st core.BridgeStatus, anim animation) string {
	g := core.CellGlyph(b, c, st)
	cell := string([]byte{g, g})
	if g == core.GlyphEmpty {
		return t.Empty.Render("  ")
	}

	if seg, ok := b.SegmentAt(c); ok && anim.active() && anim.flash[seg.ID] {
		return t.Flash.Render(cell)
	}
	return tileStyle(t, g).Render(cell)
}

func tileStyle(t Theme, g byte) lipgloss.Style {
	switch g {
	case core.GlyphHard:
		return t.Hard
	case core.GlyphSoft:
		return t.Soft
	case core.GlyphGoal:
		return t.Goal
	case core.GlyphBridgeUp:
		return t.BridgeUp
	case core.GlyphBridgeDown:
		return t.BridgeDown
	case core.GlyphSoftSwitch, core.GlyphHardSwitch:
		return t.Switch
	case core.GlyphTrigger:
		return t.Teleporter
	}
	return t.Empty
}
