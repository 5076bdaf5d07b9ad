package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// SolutionVersion is written into every exported solution.
const SolutionVersion = 1

// Solution is the portable form of a solver path.
type Solution struct {
	Version int             `json:"version"`
	Stage   string          `json:"stage"`
	Method  string          `json:"method"`
	Actions []string        `json:"actions"`
	States  []SolutionState `json:"states"`
}

// SolutionState is one path entry: both cube positions plus bridge bits.
type SolutionState struct {
	Block1  [2]int `json:"b1"`
	Block2  [2]int `json:"b2"`
	Bridges string `json:"bridges,omitempty"`
}

// WriteSolution writes a zstd-compressed JSON solution file.
func WriteSolution(path string, sol Solution) error {
	if sol.Version == 0 {
		sol.Version = SolutionVersion
	}
	if len(sol.States) > 0 && len(sol.Actions) != len(sol.States)-1 {
		return fmt.Errorf("storage: solution has %d actions for %d states", len(sol.Actions), len(sol.States))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("storage: cannot create %s: %w", path, err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("storage: zstd writer: %w", err)
	}

	bw := bufio.NewWriter(enc)
	if err := json.NewEncoder(bw).Encode(&sol); err != nil {
		enc.Close()
		return fmt.Errorf("storage: encode solution: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("storage: write solution: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("storage: finish solution: %w", err)
	}
	return f.Close()
}

// ReadSolution reads a file written by WriteSolution.
func ReadSolution(path string) (Solution, error) {
	var sol Solution
	f, err := os.Open(path)
	if err != nil {
		return sol, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return sol, fmt.Errorf("storage: zstd reader: %w", err)
	}
	defer dec.Close()

	if err := json.NewDecoder(bufio.NewReader(dec)).Decode(&sol); err != nil {
		return sol, fmt.Errorf("storage: decode solution: %w", err)
	}
	if sol.Version != SolutionVersion {
		return sol, fmt.Errorf("storage: unsupported solution version %d", sol.Version)
	}
	return sol, nil
}
