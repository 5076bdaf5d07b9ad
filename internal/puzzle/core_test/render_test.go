package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

func TestRenderASCIIStage1(t *testing.T) {
	lvl := mustStage(t, 1)
	got := core.RenderASCII(lvl.Board, lvl.InitialState())
	want := "" +
		"###.......\n" +
		"#@###.....\n" +
		"#########.\n" +
		".#########\n" +
		".....##G##\n" +
		".....####.\n"
	if got != want {
		t.Errorf("render mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderASCIIOverlays(t *testing.T) {
	lvl := mustParse(t, `
PPP s00 S10 B00 b10 iii t0t t00 t01
`)
	s := lvl.InitialState()
	s.Player = core.Player{Block1: core.C(7, 0), Block2: core.C(8, 0)}
	got := core.RenderASCII(lvl.Board, s)
	want := "#oX=_~T@@\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Every state reachable from the start must be valid under its own bridges.
func TestReachableStatesAreValid(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8, 14, 24} {
		lvl := mustStage(t, n)
		b := lvl.Board
		start := lvl.InitialState()
		seen := map[core.Key]bool{start.Key(): true}
		queue := []core.State{start}
		for len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]
			if !b.IsValid(s.Player, s.Bridges) {
				t.Fatalf("stage %d: invalid reachable state %v", n, s)
			}
			if b.IsGoal(s.Player) {
				continue
			}
			for _, a := range core.Actions(s) {
				next, ok := b.Step(s, a)
				if !ok || seen[next.Key()] {
					continue
				}
				seen[next.Key()] = true
				queue = append(queue, next)
			}
		}
	}
}

func TestBridgeStatusString(t *testing.T) {
	st := core.NewBridgeStatus([]bool{true, false, true})
	if st.String() != "101" {
		t.Errorf("got %q", st.String())
	}
	parsed, err := core.ParseBridgeStatus("101")
	if err != nil || parsed != st {
		t.Errorf("ParseBridgeStatus = %v, %v", parsed, err)
	}
	if _, err := core.ParseBridgeStatus("1x"); err == nil {
		t.Error("expected error for bad status")
	}
	if st.Flip(1).String() != "111" || st.Set(0, false).String() != "001" {
		t.Error("Flip/Set mismatch")
	}
}
