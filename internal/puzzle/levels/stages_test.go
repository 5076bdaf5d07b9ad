package levels

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

func TestStageTable(t *testing.T) {
	if got := StageCount(); got != 33 {
		t.Fatalf("StageCount() = %d, want 33", got)
	}
	all, err := Stages()
	if err != nil {
		t.Fatalf("Stages: %v", err)
	}
	if len(all) != 33 {
		t.Fatalf("Stages() = %d levels", len(all))
	}
	for i, lvl := range all {
		if lvl.ID != StageID(i+1) {
			t.Errorf("stage %d id %q", i+1, lvl.ID)
		}
		s := lvl.InitialState()
		if !lvl.Board.IsValid(s.Player, s.Bridges) {
			t.Errorf("stage %d: invalid start", i+1)
		}
	}
}

func TestStageKnownStarts(t *testing.T) {
	tests := []struct {
		n     int
		start core.Coord
		w, h  int
	}{
		{1, core.C(1, 1), 10, 6},
		{6, core.C(0, 3), 15, 10},
		{8, core.C(1, 5), 15, 11},
	}
	for _, tt := range tests {
		lvl, err := Stage(tt.n)
		if err != nil {
			t.Fatalf("stage %d: %v", tt.n, err)
		}
		if lvl.Start != tt.start {
			t.Errorf("stage %d start %v, want %v", tt.n, lvl.Start, tt.start)
		}
		if lvl.Board.W != tt.w || lvl.Board.H != tt.h {
			t.Errorf("stage %d size %dx%d, want %dx%d", tt.n, lvl.Board.W, lvl.Board.H, tt.w, tt.h)
		}
	}
}

func TestStageOutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 34} {
		if _, err := Stage(n); !errors.Is(err, ErrUnknownStage) {
			t.Errorf("Stage(%d): expected ErrUnknownStage, got %v", n, err)
		}
	}
}

func TestFind(t *testing.T) {
	for _, ref := range []string{"7", "stage-07", " 7 "} {
		lvl, err := Find(ref, nil)
		if err != nil {
			t.Fatalf("Find(%q): %v", ref, err)
		}
		if lvl.ID != "stage-07" {
			t.Errorf("Find(%q) = %s", ref, lvl.ID)
		}
	}
	if _, err := Find("nope", nil); err == nil {
		t.Error("expected error without loader")
	}
}
