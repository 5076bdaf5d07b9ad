package core

import (
	"errors"
	"fmt"
)

// EventKind identifies what happened during a move.
type EventKind uint8

const (
	EventMoved EventKind = iota
	EventTeleported
	EventBridgeChanged
	EventWon
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventTeleported:
		return "teleported"
	case EventBridgeChanged:
		return "bridge"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

// Event is emitted by Game.Move for the presentation layer.
type Event struct {
	Kind     EventKind
	Action   Action
	From     Player
	To       Player
	BridgeID int // EventBridgeChanged only
	Mode     BridgeMode
}

// ErrStateMismatch is returned by LoadState for a state from another board.
var ErrStateMismatch = errors.New("state does not match board")

// Game is a live play session over a level.
type Game struct {
	level  *Level
	state  State
	moves  int
	won    bool
	events []Event
}

// NewGame starts a session at the level's initial state.
func NewGame(l *Level) *Game {
	g := &Game{level: l}
	g.Restart()
	return g
}

// Level returns the level being played.
func (g *Game) Level() *Level {
	return g.level
}

// Board returns the board being played.
func (g *Game) Board() *Board {
	return g.level.Board
}

// State returns the current state.
func (g *Game) State() State {
	return g.state
}

// Moves returns the number of applied moves since the last restart or load.
func (g *Game) Moves() int {
	return g.moves
}

// Won returns true once the block stands on the goal.
func (g *Game) Won() bool {
	return g.won
}

// Events returns the events of the last applied move.
func (g *Game) Events() []Event {
	return g.events
}

// Restart returns to the level's initial state.
func (g *Game) Restart() {
	g.state = g.level.InitialState()
	g.moves = 0
	g.won = false
	g.events = nil
}

// LoadState replaces the current state, e.g. when replaying a solver path.
func (g *Game) LoadState(s State) error {
	b := g.level.Board
	if s.Bridges.Len() != len(b.segments) {
		return fmt.Errorf("%w: %d bridge segments, board has %d", ErrStateMismatch, s.Bridges.Len(), len(b.segments))
	}
	if !b.IsValid(s.Player, s.Bridges) {
		return fmt.Errorf("%w: block %v is not supported", ErrStateMismatch, s.Player)
	}
	g.state = s
	g.moves = 0
	g.won = b.IsGoal(s.Player)
	g.events = nil
	return nil
}

// Move applies action a. It returns false and leaves the session untouched
// if the move is not allowed or the level is already won.
func (g *Game) Move(a Action) bool {
	if g.won {
		return false
	}
	b := g.level.Board
	t, ok := b.Apply(g.state, a)
	if !ok {
		return false
	}

	events := []Event{{Kind: EventMoved, Action: a, From: t.From.Player, To: t.To.Player}}
	if t.Teleported {
		events = append(events, Event{Kind: EventTeleported, Action: a, From: t.From.Player, To: t.To.Player})
	}
	for _, sw := range t.Activated {
		events = append(events, Event{Kind: EventBridgeChanged, Action: a, BridgeID: sw.BridgeID, Mode: sw.Mode})
	}

	g.state = t.To
	g.moves++
	if b.IsGoal(g.state.Player) {
		g.won = true
		events = append(events, Event{Kind: EventWon, Action: a, To: t.To.Player})
	}
	g.events = events
	return true
}
