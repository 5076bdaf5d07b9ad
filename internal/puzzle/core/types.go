// Package core provides the rules of the block puzzle: the board, the
// player block, bridge state and the transition function.
// This package is UI-agnostic and deterministic.
package core

import (
	"fmt"
	"strings"
)

// Terrain is the base surface of a cell.
type Terrain uint8

const (
	TerrainEmpty Terrain = iota
	TerrainHard
	TerrainSoft
	TerrainGoal
)

// String returns the string representation of a terrain.
func (t Terrain) String() string {
	switch t {
	case TerrainEmpty:
		return "empty"
	case TerrainHard:
		return "hard"
	case TerrainSoft:
		return "soft"
	case TerrainGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Action is a player move.
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionSwap
)

// Directions lists the rolling actions in search expansion order.
var Directions = [...]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

// String returns the move name used by the CLI and solution files.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// ParseAction converts a move name into an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return ActionUp, nil
	case "down":
		return ActionDown, nil
	case "left":
		return ActionLeft, nil
	case "right":
		return ActionRight, nil
	case "swap":
		return ActionSwap, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Orientation describes how the two halves of the block relate.
type Orientation uint8

const (
	Standing Orientation = iota // both halves on one cell
	LayingX                     // halves adjacent along X
	LayingY                     // halves adjacent along Y
	Split                       // two independent cubes
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	switch o {
	case Standing:
		return "standing"
	case LayingX:
		return "laying-x"
	case LayingY:
		return "laying-y"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// SwitchKind selects which weight activates a switch.
type SwitchKind uint8

const (
	SwitchSoft SwitchKind = iota // any weight
	SwitchHard                   // only a standing block
)

// BridgeMode is the effect a switch has on its bridge.
type BridgeMode uint8

const (
	BridgeOn BridgeMode = iota
	BridgeToggle
	BridgeOff
)

// String returns the string representation of a bridge mode.
func (m BridgeMode) String() string {
	switch m {
	case BridgeOn:
		return "on"
	case BridgeToggle:
		return "toggle"
	case BridgeOff:
		return "off"
	default:
		return "unknown"
	}
}

// Overlay is a feature placed on top of a cell's terrain.
// Implementations: Segment, Switch, Trigger.
type Overlay interface {
	overlay()
}

// Segment is one cell of a bridge.
type Segment struct {
	At     Coord
	ID     int  // bridge id addressed by switches
	Slot   int  // visual variant digit, not used by the rules
	Raised bool // initial status
	Index  int  // bit position in BridgeStatus
}

// Switch activates every segment of a bridge.
type Switch struct {
	Kind     SwitchKind
	BridgeID int
	Mode     BridgeMode
}

// Trigger relocates a standing block to the destinations of teleporter ID.
type Trigger struct {
	ID int
}

func (Segment) overlay() {}
func (Switch) overlay()  {}
func (Trigger) overlay() {}
