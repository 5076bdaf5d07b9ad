package core

import (
	"strings"
)

// Glyphs used by RenderASCII.
const (
	GlyphEmpty      = '.'
	GlyphHard       = '#'
	GlyphSoft       = '~'
	GlyphGoal       = 'G'
	GlyphBridgeUp   = '='
	GlyphBridgeDown = '_'
	GlyphSoftSwitch = 'o'
	GlyphHardSwitch = 'X'
	GlyphTrigger    = 'T'
	GlyphBlock      = '@'
)

// RenderASCII draws the board under state s, one line per row.
// This is used for debugging, testing (golden outputs) and the show command.
//
// Format:
//   - terrain: empty='.', hard='#', soft='~', goal='G'
//   - bridges: raised='=', lowered='_'
//   - overlays: soft switch='o', hard switch='X', teleporter='T'
//   - the block is drawn as '@' over whatever it covers
func RenderASCII(b *Board, s State) string {
	var sb strings.Builder
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := C(x, y)
			if c == s.Player.Block1 || c == s.Player.Block2 {
				sb.WriteByte(GlyphBlock)
				continue
			}
			sb.WriteByte(CellGlyph(b, c, s.Bridges))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CellGlyph returns the glyph of a single cell without the block.
func CellGlyph(b *Board, c Coord, st BridgeStatus) byte {
	if seg, ok := b.SegmentAt(c); ok {
		if st.Raised(seg.Index) {
			return GlyphBridgeUp
		}
		return GlyphBridgeDown
	}
	// The first overlay decides the glyph.
	if ovs := b.Overlays(c); len(ovs) > 0 {
		switch v := ovs[0].(type) {
		case Trigger:
			return GlyphTrigger
		case Switch:
			if v.Kind == SwitchHard {
				return GlyphHardSwitch
			}
			return GlyphSoftSwitch
		}
	}
	switch b.Terrain(c) {
	case TerrainHard:
		return GlyphHard
	case TerrainSoft:
		return GlyphSoft
	case TerrainGoal:
		return GlyphGoal
	default:
		return GlyphEmpty
	}
}
