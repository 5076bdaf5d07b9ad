package core

import "fmt"

// Player is the block as an ordered pair of cube positions.
// Equal positions mean standing, unit adjacency means laying, anything
// else means the block is split into two independent cubes.
type Player struct {
	Block1 Coord
	Block2 Coord
}

// Stand returns a standing block at c.
func Stand(c Coord) Player {
	return Player{Block1: c, Block2: c}
}

// Orientation classifies the block.
func (p Player) Orientation() Orientation {
	d := p.Block2.Sub(p.Block1)
	switch {
	case d.X == 0 && d.Y == 0:
		return Standing
	case (d.X == 1 || d.X == -1) && d.Y == 0:
		return LayingX
	case (d.Y == 1 || d.Y == -1) && d.X == 0:
		return LayingY
	default:
		return Split
	}
}

// Standing returns true if both cubes share a cell.
func (p Player) Standing() bool {
	return p.Block1 == p.Block2
}

// Normalize reorders a laying block so Block2 is never at -1 from Block1
// along the laying axis. Standing and split blocks are returned unchanged.
func (p Player) Normalize() Player {
	d := p.Block2.Sub(p.Block1)
	switch p.Orientation() {
	case LayingX:
		if d.X == -1 {
			return Player{Block1: p.Block2, Block2: p.Block1}
		}
	case LayingY:
		if d.Y == -1 {
			return Player{Block1: p.Block2, Block2: p.Block1}
		}
	}
	return p
}

// Cells returns the occupied cells; a standing block occupies one.
func (p Player) Cells() []Coord {
	if p.Standing() {
		return []Coord{p.Block1}
	}
	return []Coord{p.Block1, p.Block2}
}

// String returns a string representation of the block.
func (p Player) String() string {
	return fmt.Sprintf("[%v %v]", p.Block1, p.Block2)
}
