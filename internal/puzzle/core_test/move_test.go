package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/levels"
)

func mustParse(t *testing.T, text string) *core.Level {
	t.Helper()
	lvl, err := levels.Parse("test", "test", text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return lvl
}

func mustStage(t *testing.T, n int) *core.Level {
	t.Helper()
	lvl, err := levels.Stage(n)
	if err != nil {
		t.Fatalf("stage %d: %v", n, err)
	}
	return lvl
}

func TestTryMoveDisplacement(t *testing.T) {
	origin := core.C(5, 5)
	tests := []struct {
		name   string
		player core.Player
		action core.Action
		want   core.Player
	}{
		{"standing up", core.Stand(origin), core.ActionUp, core.Player{Block1: core.C(5, 3), Block2: core.C(5, 4)}},
		{"standing down", core.Stand(origin), core.ActionDown, core.Player{Block1: core.C(5, 6), Block2: core.C(5, 7)}},
		{"standing left", core.Stand(origin), core.ActionLeft, core.Player{Block1: core.C(3, 5), Block2: core.C(4, 5)}},
		{"standing right", core.Stand(origin), core.ActionRight, core.Player{Block1: core.C(6, 5), Block2: core.C(7, 5)}},

		{"laying-x up", core.Player{Block1: core.C(5, 5), Block2: core.C(6, 5)}, core.ActionUp, core.Player{Block1: core.C(5, 4), Block2: core.C(6, 4)}},
		{"laying-x down", core.Player{Block1: core.C(5, 5), Block2: core.C(6, 5)}, core.ActionDown, core.Player{Block1: core.C(5, 6), Block2: core.C(6, 6)}},
		{"laying-x left", core.Player{Block1: core.C(5, 5), Block2: core.C(6, 5)}, core.ActionLeft, core.Player{Block1: core.C(4, 5), Block2: core.C(4, 5)}},
		{"laying-x right", core.Player{Block1: core.C(5, 5), Block2: core.C(6, 5)}, core.ActionRight, core.Player{Block1: core.C(7, 5), Block2: core.C(7, 5)}},

		{"laying-y up", core.Player{Block1: core.C(5, 5), Block2: core.C(5, 6)}, core.ActionUp, core.Player{Block1: core.C(5, 4), Block2: core.C(5, 4)}},
		{"laying-y down", core.Player{Block1: core.C(5, 5), Block2: core.C(5, 6)}, core.ActionDown, core.Player{Block1: core.C(5, 7), Block2: core.C(5, 7)}},
		{"laying-y left", core.Player{Block1: core.C(5, 5), Block2: core.C(5, 6)}, core.ActionLeft, core.Player{Block1: core.C(4, 5), Block2: core.C(4, 6)}},
		{"laying-y right", core.Player{Block1: core.C(5, 5), Block2: core.C(5, 6)}, core.ActionRight, core.Player{Block1: core.C(6, 5), Block2: core.C(6, 6)}},

		{"split up", core.Player{Block1: core.C(1, 1), Block2: core.C(8, 8)}, core.ActionUp, core.Player{Block1: core.C(1, 0), Block2: core.C(8, 8)}},
		{"split right", core.Player{Block1: core.C(1, 1), Block2: core.C(8, 8)}, core.ActionRight, core.Player{Block1: core.C(2, 1), Block2: core.C(8, 8)}},
		{"split swap", core.Player{Block1: core.C(1, 1), Block2: core.C(8, 8)}, core.ActionSwap, core.Player{Block1: core.C(8, 8), Block2: core.C(1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := core.TryMove(tt.player, tt.action)
			if !ok {
				t.Fatal("expected move to apply")
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTryMoveSwapOutsideSplit(t *testing.T) {
	for _, p := range []core.Player{
		core.Stand(core.C(2, 2)),
		{Block1: core.C(2, 2), Block2: core.C(3, 2)},
		{Block1: core.C(2, 2), Block2: core.C(2, 3)},
	} {
		if _, ok := core.TryMove(p, core.ActionSwap); ok {
			t.Errorf("swap applied to %v orientation", p.Orientation())
		}
	}
}

func TestOrientationAndNormalize(t *testing.T) {
	tests := []struct {
		p      core.Player
		orient core.Orientation
		norm   core.Player
	}{
		{core.Stand(core.C(1, 1)), core.Standing, core.Stand(core.C(1, 1))},
		{core.Player{Block1: core.C(2, 1), Block2: core.C(1, 1)}, core.LayingX, core.Player{Block1: core.C(1, 1), Block2: core.C(2, 1)}},
		{core.Player{Block1: core.C(1, 1), Block2: core.C(2, 1)}, core.LayingX, core.Player{Block1: core.C(1, 1), Block2: core.C(2, 1)}},
		{core.Player{Block1: core.C(1, 2), Block2: core.C(1, 1)}, core.LayingY, core.Player{Block1: core.C(1, 1), Block2: core.C(1, 2)}},
		{core.Player{Block1: core.C(5, 5), Block2: core.C(1, 1)}, core.Split, core.Player{Block1: core.C(5, 5), Block2: core.C(1, 1)}},
		{core.Player{Block1: core.C(1, 1), Block2: core.C(2, 2)}, core.Split, core.Player{Block1: core.C(1, 1), Block2: core.C(2, 2)}},
	}
	for _, tt := range tests {
		if got := tt.p.Orientation(); got != tt.orient {
			t.Errorf("%v: orientation %v, want %v", tt.p, got, tt.orient)
		}
		if got := tt.p.Normalize(); got != tt.norm {
			t.Errorf("%v: normalize %v, want %v", tt.p, got, tt.norm)
		}
	}
}

func TestIsValid(t *testing.T) {
	lvl := mustParse(t, `
ooo PPP iii --- b00
ooo ooo iii ooo B01
`)
	b := lvl.Board
	st := b.InitialStatus()

	tests := []struct {
		name string
		p    core.Player
		want bool
	}{
		{"standing on hard", core.Stand(core.C(1, 0)), true},
		{"standing on soft", core.Stand(core.C(2, 0)), false},
		{"laying on soft", core.Player{Block1: core.C(2, 0), Block2: core.C(2, 1)}, true},
		{"half on empty", core.Player{Block1: core.C(2, 0), Block2: core.C(3, 0)}, false},
		{"out of bounds", core.Player{Block1: core.C(-1, 0), Block2: core.C(0, 0)}, false},
		{"lowered bridge", core.Stand(core.C(4, 0)), false},
		{"raised bridge", core.Stand(core.C(4, 1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsValid(tt.p, st); got != tt.want {
				t.Errorf("IsValid(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestToggleSwitchFlipsSegmentsIndependently(t *testing.T) {
	lvl := mustParse(t, `
PPP ooo s12 B02 b02 ooo
ooo ooo ooo ooo ooo ooo
`)
	b := lvl.Board
	s := lvl.InitialState()
	if got := s.Bridges.String(); got != "10" {
		t.Fatalf("initial status %q, want 10", got)
	}

	// Laying across the switch fires it from Block2.
	s, ok := b.Step(s, core.ActionRight)
	if !ok {
		t.Fatal("right should apply")
	}
	if got := s.Bridges.String(); got != "01" {
		t.Errorf("after toggle status %q, want 01", got)
	}
	if b.ByID(s.Bridges)[2] {
		t.Error("ByID reports the first segment, which is lowered")
	}

	s, ok = b.Step(s, core.ActionLeft)
	if !ok || !s.Player.Standing() {
		t.Fatalf("left should stand the block back up, got %v", s.Player)
	}
	s, _ = b.Step(s, core.ActionRight)
	if got := s.Bridges.String(); got != "10" {
		t.Errorf("second toggle status %q, want 10", got)
	}
}

func TestHardSwitchNeedsStandingBlock(t *testing.T) {
	lvl := mustParse(t, `
PPP ooo ooo S02 b02 ggg
ooo ooo ooo ooo ooo ooo
`)
	b := lvl.Board
	s := lvl.InitialState()

	s, _ = b.Step(s, core.ActionRight) // laying on (1,0)-(2,0)
	s, _ = b.Step(s, core.ActionRight) // standing on the switch
	if !s.Player.Standing() || s.Player.Block1 != core.C(3, 0) {
		t.Fatalf("expected block standing at (3,0), got %v", s.Player)
	}
	if !s.Bridges.Raised(0) {
		t.Error("hard switch should raise bridge 2")
	}

	// A laying block over a hard switch does nothing.
	lay := core.State{Player: core.Player{Block1: core.C(2, 1), Block2: core.C(3, 1)}, Bridges: b.InitialStatus()}
	next, ok := b.Step(lay, core.ActionUp)
	if !ok {
		t.Fatal("up should apply")
	}
	if next.Player != (core.Player{Block1: core.C(2, 0), Block2: core.C(3, 0)}) {
		t.Fatalf("unexpected player %v", next.Player)
	}
	if next.Bridges.Raised(0) {
		t.Error("laying block must not fire a hard switch")
	}
}

func TestActivateModes(t *testing.T) {
	lvl := mustParse(t, `
PPP B00 b00 B00
`)
	b := lvl.Board
	st := b.InitialStatus()

	on := b.Activate(st, 0, core.BridgeOn)
	if on.String() != "111" || b.Activate(on, 0, core.BridgeOn) != on {
		t.Errorf("on should be idempotent, got %s", on)
	}
	off := b.Activate(st, 0, core.BridgeOff)
	if off.String() != "000" || b.Activate(off, 0, core.BridgeOff) != off {
		t.Errorf("off should be idempotent, got %s", off)
	}
	toggled := b.Activate(st, 0, core.BridgeToggle)
	if toggled.String() != "010" {
		t.Errorf("toggle got %s, want 010", toggled)
	}
	if b.Activate(toggled, 0, core.BridgeToggle) != st {
		t.Error("toggle twice should restore the status")
	}
	if b.Activate(st, 7, core.BridgeOn) != st {
		t.Error("unknown bridge id should be a no-op")
	}
}

func TestTeleporterSplitsBlock(t *testing.T) {
	lvl := mustStage(t, 8)
	b := lvl.Board
	s := lvl.InitialState()

	dest, ok := b.Teleporter(0)
	if !ok {
		t.Fatal("stage 8 should have teleporter 0")
	}
	if dest != [2]core.Coord{core.C(10, 1), core.C(10, 9)} {
		t.Fatalf("teleporter 0 destinations %v", dest)
	}

	s, _ = b.Step(s, core.ActionRight)
	tr, ok := b.Apply(s, core.ActionRight)
	if !ok {
		t.Fatal("second right should apply")
	}
	if !tr.Teleported {
		t.Error("expected teleport")
	}
	want := core.Player{Block1: core.C(10, 1), Block2: core.C(10, 9)}
	if tr.To.Player != want {
		t.Fatalf("after teleport got %v, want %v", tr.To.Player, want)
	}
	if tr.To.Player.Orientation() != core.Split {
		t.Errorf("expected split, got %v", tr.To.Player.Orientation())
	}

	// Swap, then walk the lower cube up until the cubes merge.
	s, ok = b.Step(tr.To, core.ActionSwap)
	if !ok || s.Player.Block1 != core.C(10, 9) {
		t.Fatalf("swap failed: %v", s.Player)
	}
	for i := 0; i < 7; i++ {
		s, ok = b.Step(s, core.ActionUp)
		if !ok {
			t.Fatalf("up %d failed at %v", i, s.Player)
		}
	}
	merged := core.Player{Block1: core.C(10, 1), Block2: core.C(10, 2)}
	if s.Player != merged {
		t.Errorf("merge got %v, want %v", s.Player, merged)
	}
	if s.Player.Orientation() != core.LayingY {
		t.Errorf("merged orientation %v", s.Player.Orientation())
	}
}

func TestStepRejectsInvalidMoves(t *testing.T) {
	lvl := mustStage(t, 6)
	b := lvl.Board
	s := lvl.InitialState()
	if s.Player.Block1 != core.C(0, 3) {
		t.Fatalf("stage 6 start %v", s.Player)
	}
	got, ok := b.Step(s, core.ActionLeft)
	if ok {
		t.Fatal("left from the leftmost column should be rejected")
	}
	if got != s {
		t.Error("rejected move must return the input state")
	}
}

func TestStage1ShortestSequence(t *testing.T) {
	lvl := mustStage(t, 1)
	b := lvl.Board
	s := lvl.InitialState()
	for _, a := range []core.Action{
		core.ActionRight, core.ActionDown, core.ActionDown, core.ActionRight,
		core.ActionRight, core.ActionDown, core.ActionRight,
	} {
		var ok bool
		s, ok = b.Step(s, a)
		if !ok {
			t.Fatalf("%v rejected at %v", a, s.Player)
		}
	}
	if !b.IsGoal(s.Player) {
		t.Errorf("expected goal, block at %v", s.Player)
	}
	if s.Player.Block1 != core.C(7, 4) {
		t.Errorf("goal at %v, want (7,4)", s.Player.Block1)
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionSwap} {
		got, err := core.ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := core.ParseAction("jump"); err == nil {
		t.Error("expected error for unknown action")
	}
}
