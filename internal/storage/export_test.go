package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSolutionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "stage-08.json.zst")
	sol := Solution{
		Stage:   "stage-08",
		Method:  "bfs-path",
		Actions: []string{"right", "right"},
		States: []SolutionState{
			{Block1: [2]int{1, 5}, Block2: [2]int{1, 5}},
			{Block1: [2]int{2, 5}, Block2: [2]int{3, 5}},
			{Block1: [2]int{10, 1}, Block2: [2]int{10, 9}},
		},
	}
	if err := WriteSolution(path, sol); err != nil {
		t.Fatalf("WriteSolution() failed: %v", err)
	}

	got, err := ReadSolution(path)
	if err != nil {
		t.Fatalf("ReadSolution() failed: %v", err)
	}
	sol.Version = SolutionVersion
	if !reflect.DeepEqual(got, sol) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got, sol)
	}

	// The file is compressed, not plain JSON.
	raw, _ := os.ReadFile(path)
	if len(raw) > 0 && raw[0] == '{' {
		t.Error("Expected zstd-compressed output")
	}
}

func TestWriteSolutionRejectsMismatchedLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json.zst")
	err := WriteSolution(path, Solution{
		Stage:   "x",
		Actions: []string{"up", "up"},
		States:  []SolutionState{{}},
	})
	if err == nil {
		t.Error("Expected error for mismatched actions/states")
	}
}

func TestReadSolutionErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadSolution(filepath.Join(dir, "missing.zst")); err == nil {
		t.Error("Expected error for missing file")
	}

	plain := filepath.Join(dir, "plain.zst")
	os.WriteFile(plain, []byte(`{"version":1}`), 0o644)
	if _, err := ReadSolution(plain); err == nil {
		t.Error("Expected error for uncompressed file")
	}
}
