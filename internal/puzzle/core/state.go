package core

import (
	"fmt"
	"strings"
)

// BridgeStatus is the raised/lowered bit of every bridge segment,
// indexed in the order the segments appear in the level text.
// It is a small comparable value; every state owns its own copy.
type BridgeStatus struct {
	bits uint64
	n    uint8
}

// NewBridgeStatus builds a status from per-segment flags.
func NewBridgeStatus(raised []bool) BridgeStatus {
	var s BridgeStatus
	s.n = uint8(min(len(raised), MaxSegments))
	for i := 0; i < int(s.n); i++ {
		if raised[i] {
			s.bits |= 1 << uint(i)
		}
	}
	return s
}

// ParseBridgeStatus parses the String form ("1" raised, "0" lowered).
func ParseBridgeStatus(text string) (BridgeStatus, error) {
	if len(text) > MaxSegments {
		return BridgeStatus{}, ErrTooManySegments
	}
	raised := make([]bool, len(text))
	for i, ch := range text {
		switch ch {
		case '1':
			raised[i] = true
		case '0':
		default:
			return BridgeStatus{}, fmt.Errorf("invalid bridge status %q", text)
		}
	}
	return NewBridgeStatus(raised), nil
}

// Len returns the number of segments.
func (s BridgeStatus) Len() int {
	return int(s.n)
}

// Raised reports the status of segment i. Unknown indices are lowered.
func (s BridgeStatus) Raised(i int) bool {
	if i < 0 || i >= int(s.n) {
		return false
	}
	return s.bits&(1<<uint(i)) != 0
}

// Set returns a copy with segment i raised or lowered.
func (s BridgeStatus) Set(i int, raised bool) BridgeStatus {
	if i < 0 || i >= int(s.n) {
		return s
	}
	if raised {
		s.bits |= 1 << uint(i)
	} else {
		s.bits &^= 1 << uint(i)
	}
	return s
}

// Flip returns a copy with segment i inverted.
func (s BridgeStatus) Flip(i int) BridgeStatus {
	return s.Set(i, !s.Raised(i))
}

// String returns one '1' or '0' per segment.
func (s BridgeStatus) String() string {
	var sb strings.Builder
	for i := 0; i < int(s.n); i++ {
		if s.Raised(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// State is a search node: the block plus bridge status.
// States are values; equal states have equal keys.
type State struct {
	Player  Player
	Bridges BridgeStatus
}

// Key is the fixed-size hashable identity of a State.
type Key struct {
	X1, Y1, X2, Y2 int32
	Bits           uint64
}

// Key returns the canonical key of the state.
func (s State) Key() Key {
	return Key{
		X1:   int32(s.Player.Block1.X),
		Y1:   int32(s.Player.Block1.Y),
		X2:   int32(s.Player.Block2.X),
		Y2:   int32(s.Player.Block2.Y),
		Bits: s.Bridges.bits,
	}
}

// String returns a string representation of the state.
func (s State) String() string {
	if s.Bridges.Len() == 0 {
		return s.Player.String()
	}
	return fmt.Sprintf("%v %s", s.Player, s.Bridges)
}
