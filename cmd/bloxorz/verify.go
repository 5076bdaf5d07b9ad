package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check an exported solution",
	Long: `Read a solution written by 'bloxorz solve --out' and replay it against
its stage. Every move must be allowed, match the recorded state and end
on the goal.

Examples:
  bloxorz solve 8 --out stage8.json.zst
  bloxorz verify stage8.json.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func runVerify(_ *cobra.Command, args []string) {
	sol, err := storage.ReadSolution(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lvl := findLevel(sol.Stage)
	final, err := sol.Replay(lvl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid solution for %s: %v\n", lvl.ID, err)
		os.Exit(1)
	}

	logger.Debug("verified solution", "stage", lvl.ID, "method", sol.Method, "final", final)
	fmt.Printf("%s: %d-move %s solution reaches the goal.\n", lvl.ID, len(sol.Actions), sol.Method)
}
