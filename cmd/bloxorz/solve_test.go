package main

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bloxorz/internal/config"
	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/levels"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

// resetSolveFlags puts the package-level state back to command defaults.
func resetSolveFlags(t *testing.T) {
	t.Helper()
	appConfig = config.DefaultConfig()
	appConfig.Storage.DBPath = filepath.Join(t.TempDir(), "runs.db")
	logger = log.New(io.Discard)
	flagMethod = ""
	flagMaxStates = -1
	flagOut = ""
	flagRecord = false
	flagTimeout = 0
}

func TestSolveStageExitCodes(t *testing.T) {
	lvl, err := levels.Stage(1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		setup func()
		want  int
	}{
		{"default", func() {}, 0},
		{"unknown method", func() { flagMethod = "astar" }, 1},
		{"out without path", func() { flagMethod = "bfs"; flagOut = filepath.Join(t.TempDir(), "x.json.zst") }, 1},
		{"budget", func() { flagMethod = "bfs-path"; flagMaxStates = 2 }, 1},
		{"timeout", func() { flagTimeout = time.Hour }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetSolveFlags(t)
			tt.setup()
			if got := solveStage(lvl); got != tt.want {
				t.Errorf("solveStage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSolveStageWritesAndRecords(t *testing.T) {
	resetSolveFlags(t)
	lvl, err := levels.Stage(8)
	if err != nil {
		t.Fatal(err)
	}
	flagMethod = "bfs-path"
	flagOut = filepath.Join(t.TempDir(), "stage-08.json.zst")
	flagRecord = true

	if code := solveStage(lvl); code != 0 {
		t.Fatalf("solveStage() = %d", code)
	}

	sol, err := storage.ReadSolution(flagOut)
	if err != nil {
		t.Fatalf("ReadSolution() failed: %v", err)
	}
	if _, err := sol.Replay(lvl); err != nil {
		t.Errorf("written solution does not replay: %v", err)
	}

	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	runs, err := store.RecentRuns(lvl.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Moves != 13 {
		t.Errorf("runs = %+v", runs)
	}
}
