package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/solver"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

var (
	flagMethod    string
	flagMaxStates int
	flagOut       string
	flagRecord    bool
	flagTimeout   time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve <stage>",
	Short: "Run the solver on a stage",
	Long: `Search a stage with one of the solver methods.

Methods:
  dfs       - depth-first, explores every reachable state, reports solvable
  bfs       - breadth-first, explores every reachable state, reports solvable
  dfs-path  - depth-first, stops at the first goal and returns its path
  bfs-path  - breadth-first, returns a shortest path

Examples:
  bloxorz solve 1
  bloxorz solve 8 --method dfs-path
  bloxorz solve 23 --method bfs --max-states 0
  bloxorz solve 8 --out stage8.json.zst --record`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagMethod, "method", "", "Search method (default from config)")
	solveCmd.Flags().IntVar(&flagMaxStates, "max-states", -1, "Stop after this many visited states, 0 = unlimited (default from config)")
	solveCmd.Flags().StringVar(&flagOut, "out", "", "Write the path as a zstd-compressed JSON file")
	solveCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the history database")
	solveCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Give up after this long (0 = no limit)")
}

func runSolve(_ *cobra.Command, args []string) {
	if code := solveStage(findLevel(args[0])); code != 0 {
		os.Exit(code)
	}
}

// solveStage runs the search and returns the process exit code.
func solveStage(lvl *core.Level) int {
	methodName := appConfig.Solver.Method
	if flagMethod != "" {
		methodName = flagMethod
	}
	method, err := solver.ParseMethod(methodName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if flagOut != "" && !method.RecordsPath() {
		fmt.Fprintf(os.Stderr, "Error: --out needs a path method (dfs-path or bfs-path), not %s\n", method)
		return 1
	}

	maxStates := appConfig.Solver.MaxStates
	if flagMaxStates >= 0 {
		maxStates = flagMaxStates
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	logger.Debug("solving", "level", lvl.ID, "method", method, "max_states", maxStates)
	res, err := solver.New(lvl, solver.Options{MaxStates: maxStates, Logger: logger}).Solve(ctx, method)
	failed := err != nil && !errors.Is(err, solver.ErrNoPath)

	if flagRecord && !failed {
		recordRun(lvl.ID, res)
	}

	printResult(lvl, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if flagOut != "" {
		if err := storage.WriteSolution(flagOut, storage.SolutionFromResult(lvl.ID, res)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing solution: %v\n", err)
			return 1
		}
		fmt.Printf("Solution written to %s\n", flagOut)
	}
	return 0
}

// recordRun stores the run; a failure is logged and does not fail the solve.
func recordRun(levelID string, res solver.Result) {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Error("could not open history database", "err", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunFromResult(levelID, res))
	if err != nil {
		logger.Error("could not record run", "err", err)
		return
	}
	logger.Info("recorded run", "id", id)
}

func printResult(lvl *core.Level, res solver.Result) {
	fmt.Printf("Stage:     %s\n", lvl.ID)
	fmt.Printf("Method:    %s\n", res.Method)
	fmt.Printf("Solved:    %v\n", res.Solved)
	fmt.Printf("Visited:   %d\n", res.Visited)
	fmt.Printf("Expanded:  %d\n", res.Expanded)
	fmt.Printf("Time:      %s\n", res.Duration.Round(time.Microsecond))
	if res.Path != nil {
		fmt.Printf("Moves:     %d\n", len(res.Moves))
		names := make([]string, len(res.Moves))
		for i, a := range res.Moves {
			names[i] = a.String()
		}
		fmt.Printf("Path:      %s\n", strings.Join(names, " "))
	}
}
