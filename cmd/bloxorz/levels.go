package main

import (
	"fmt"
	"os"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/levels"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

// levelLoader returns the custom level loader, or nil when no directory is configured.
func levelLoader() *levels.Loader {
	if appConfig.Levels.Dir == "" {
		return nil
	}
	return levels.NewLoader(appConfig.Levels.Dir, logger)
}

// findLevel resolves a stage number, stage id or custom level id.
func findLevel(ref string) *core.Level {
	lvl, err := levels.Find(ref, levelLoader())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'bloxorz list' to see available stages.")
		os.Exit(1)
	}
	return lvl
}

// allLevels returns the built-in stages followed by custom levels.
func allLevels() []*core.Level {
	stages, err := levels.Stages()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stages: %v\n", err)
		os.Exit(1)
	}
	if loader := levelLoader(); loader != nil {
		custom, err := loader.LoadAll()
		if err != nil {
			logger.Warn("could not load custom levels", "dir", loader.Root, "err", err)
		}
		stages = append(stages, custom...)
	}
	return stages
}

// openStore opens the history database. With optional set, failures are
// logged and nil is returned so the caller can continue without history.
func openStore(optional bool) *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		if optional {
			logger.Warn("could not open history database", "path", appConfig.Storage.DBPath, "err", err)
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// features counts what a board is built from.
type features struct {
	bridges     int
	segments    int
	switches    int
	teleporters int
}

func countFeatures(b *core.Board) features {
	f := features{
		bridges:     len(b.BridgeIDs()),
		segments:    len(b.Segments()),
		teleporters: len(b.TeleporterIDs()),
	}
	for _, c := range b.OverlayCells() {
		for _, ov := range b.Overlays(c) {
			if _, ok := ov.(core.Switch); ok {
				f.switches++
			}
		}
	}
	return f
}
