package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bloxorz/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [stage]",
	Short: "Play a stage",
	Long: `Play a stage in the terminal. Without a stage a picker lists every
built-in and custom level.

Controls:
  Arrows/hjkl  - Roll the block
  Space/Tab    - Swap the active cube after a split
  R            - Restart
  S            - Solve and replay the solution
  ?            - Show all keys
  Esc          - Back to the picker
  Q/Ctrl+C     - Quit

Examples:
  bloxorz play
  bloxorz play 1
  bloxorz play stage-08
  bloxorz play my-level --levels-dir ./levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(true)
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Config: appConfig,
		Store:  store,
		Logger: logger,
	}

	var err error
	if len(args) == 1 {
		err = tui.RunPlay(findLevel(args[0]), opts)
	} else {
		err = tui.RunSession(allLevels(), opts, width, height)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
