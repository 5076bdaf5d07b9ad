package core

import (
	"errors"
	"fmt"
	"slices"
)

// MaxSegments is the number of bridge segments a board can hold.
// BridgeStatus keeps one bit per segment in a single word.
const MaxSegments = 64

// ErrTooManySegments is returned by AddSegment once MaxSegments is reached.
var ErrTooManySegments = errors.New("too many bridge segments")

// Board is the immutable layout of a level: terrain, bridges, switches and
// teleporters. Bridge raised/lowered status lives in BridgeStatus so a
// board can be shared by every search state.
type Board struct {
	W, H int

	terrain  []Terrain
	segAt    []int // segment index per cell, -1 if none
	segments []Segment

	bridges     map[int][]int       // bridge id -> segment indices
	overlays    map[Coord][]Overlay // switches and triggers in registration order
	teleporters map[int][2]Coord
}

// NewBoard creates an empty board of the given size.
func NewBoard(w, h int) *Board {
	b := &Board{
		W:           w,
		H:           h,
		terrain:     make([]Terrain, w*h),
		segAt:       make([]int, w*h),
		bridges:     make(map[int][]int),
		overlays:    make(map[Coord][]Overlay),
		teleporters: make(map[int][2]Coord),
	}
	for i := range b.segAt {
		b.segAt[i] = -1
	}
	return b
}

// InBounds returns true if the coordinate is inside the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

func (b *Board) index(c Coord) int {
	return c.Y*b.W + c.X
}

// Terrain returns the base terrain at c. Out of bounds cells are empty.
func (b *Board) Terrain(c Coord) Terrain {
	if !b.InBounds(c) {
		return TerrainEmpty
	}
	return b.terrain[b.index(c)]
}

// SetTerrain sets the base terrain at c.
func (b *Board) SetTerrain(c Coord, t Terrain) {
	if b.InBounds(c) {
		b.terrain[b.index(c)] = t
	}
}

// AddSegment registers a bridge segment at c and returns it.
// Segments are indexed in registration order.
func (b *Board) AddSegment(c Coord, id, slot int, raised bool) (Segment, error) {
	if !b.InBounds(c) {
		return Segment{}, fmt.Errorf("segment at %v out of bounds", c)
	}
	if len(b.segments) >= MaxSegments {
		return Segment{}, ErrTooManySegments
	}
	seg := Segment{At: c, ID: id, Slot: slot, Raised: raised, Index: len(b.segments)}
	b.segments = append(b.segments, seg)
	b.segAt[b.index(c)] = seg.Index
	b.bridges[id] = append(b.bridges[id], seg.Index)
	return seg, nil
}

// AddSwitch registers a switch at c after any overlays already there.
func (b *Board) AddSwitch(c Coord, s Switch) {
	b.overlays[c] = append(b.overlays[c], s)
}

// AddTrigger registers a teleporter trigger at c after any overlays already there.
func (b *Board) AddTrigger(c Coord, id int) {
	b.overlays[c] = append(b.overlays[c], Trigger{ID: id})
}

// SetTeleporter sets the destination pair of teleporter id.
func (b *Board) SetTeleporter(id int, dest [2]Coord) {
	b.teleporters[id] = dest
}

// Teleporter returns the destination pair of teleporter id.
func (b *Board) Teleporter(id int) ([2]Coord, bool) {
	d, ok := b.teleporters[id]
	return d, ok
}

// TeleporterIDs returns all teleporter ids in ascending order.
func (b *Board) TeleporterIDs() []int {
	ids := make([]int, 0, len(b.teleporters))
	for id := range b.teleporters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Overlays returns the switches and triggers at c in registration order.
// The returned slice must not be modified.
func (b *Board) Overlays(c Coord) []Overlay {
	return b.overlays[c]
}

// OverlayCells returns every cell that carries a switch or trigger, row-major.
func (b *Board) OverlayCells() []Coord {
	cells := make([]Coord, 0, len(b.overlays))
	for c := range b.overlays {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, c Coord) int {
		if a.Y != c.Y {
			return a.Y - c.Y
		}
		return a.X - c.X
	})
	return cells
}

// SegmentAt returns the bridge segment at c, if any.
func (b *Board) SegmentAt(c Coord) (Segment, bool) {
	if !b.InBounds(c) {
		return Segment{}, false
	}
	i := b.segAt[b.index(c)]
	if i < 0 {
		return Segment{}, false
	}
	return b.segments[i], true
}

// Segments returns all bridge segments in index order.
func (b *Board) Segments() []Segment {
	return slices.Clone(b.segments)
}

// BridgeIDs returns all bridge ids in ascending order.
func (b *Board) BridgeIDs() []int {
	ids := make([]int, 0, len(b.bridges))
	for id := range b.bridges {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// HasBridge returns true if at least one segment is registered under id.
func (b *Board) HasBridge(id int) bool {
	return len(b.bridges[id]) > 0
}

// InitialStatus returns the bridge status authored in the level.
func (b *Board) InitialStatus() BridgeStatus {
	raised := make([]bool, len(b.segments))
	for i, s := range b.segments {
		raised[i] = s.Raised
	}
	return NewBridgeStatus(raised)
}

// Passable returns true if a cube may occupy c under the given bridge status.
// A bridge segment is passable only while raised; other cells need terrain.
func (b *Board) Passable(c Coord, st BridgeStatus) bool {
	if !b.InBounds(c) {
		return false
	}
	if i := b.segAt[b.index(c)]; i >= 0 {
		return st.Raised(i)
	}
	return b.terrain[b.index(c)] != TerrainEmpty
}

// ByID summarizes st per bridge id using the first segment of each bridge.
func (b *Board) ByID(st BridgeStatus) map[int]bool {
	out := make(map[int]bool, len(b.bridges))
	for id, idx := range b.bridges {
		out[id] = st.Raised(idx[0])
	}
	return out
}

// Activate applies mode to every segment of bridge id and returns the new status.
// Unknown ids leave the status unchanged.
func (b *Board) Activate(st BridgeStatus, id int, mode BridgeMode) BridgeStatus {
	for _, i := range b.bridges[id] {
		switch mode {
		case BridgeOn:
			st = st.Set(i, true)
		case BridgeOff:
			st = st.Set(i, false)
		case BridgeToggle:
			st = st.Flip(i)
		}
	}
	return st
}

// Level is a parsed puzzle: a board plus the start cell.
type Level struct {
	ID    string
	Name  string
	Board *Board
	Start Coord
}

// InitialState returns the start configuration of the level.
func (l *Level) InitialState() State {
	return State{
		Player:  Stand(l.Start),
		Bridges: l.Board.InitialStatus(),
	}
}
