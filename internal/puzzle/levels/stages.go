package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

//go:embed stages/*.txt
var stageFS embed.FS

// ErrUnknownStage is returned for a stage number outside the table.
var ErrUnknownStage = errors.New("unknown stage")

// StageCount returns the number of built-in stages.
func StageCount() int {
	entries, err := fs.Glob(stageFS, "stages/stage_*.txt")
	if err != nil {
		return 0
	}
	return len(entries)
}

// StageID returns the level id of built-in stage n.
func StageID(n int) string {
	return fmt.Sprintf("stage-%02d", n)
}

// StageText returns the raw grid of built-in stage n (1-based).
func StageText(n int) (string, error) {
	if n < 1 || n > StageCount() {
		return "", fmt.Errorf("%w: %d (have 1-%d)", ErrUnknownStage, n, StageCount())
	}
	data, err := stageFS.ReadFile(fmt.Sprintf("stages/stage_%02d.txt", n))
	if err != nil {
		return "", fmt.Errorf("reading stage %d: %w", n, err)
	}
	return string(data), nil
}

// Stage parses built-in stage n (1-based).
func Stage(n int) (*core.Level, error) {
	text, err := StageText(n)
	if err != nil {
		return nil, err
	}
	return Parse(StageID(n), fmt.Sprintf("Stage %d", n), text)
}

// Stages parses every built-in stage in order.
func Stages() ([]*core.Level, error) {
	count := StageCount()
	out := make([]*core.Level, 0, count)
	for n := 1; n <= count; n++ {
		lvl, err := Stage(n)
		if err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return out, nil
}

// Find resolves a level reference: a stage number, a stage id such as
// "stage-07", or the id of a level in the loader's directory.
func Find(ref string, loader *Loader) (*core.Level, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		return Stage(n)
	}
	if num, ok := strings.CutPrefix(ref, "stage-"); ok {
		if n, err := strconv.Atoi(num); err == nil {
			return Stage(n)
		}
	}
	if loader == nil {
		return nil, fmt.Errorf("level not found: %s", ref)
	}
	return loader.LoadByID(ref)
}
