package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bloxorz/internal/platform/tui"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

var (
	flagHistoryLimit int
	flagInteractive  bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history [stage]",
	Short: "Show recorded solver runs and plays",
	Long: `Display recorded solver runs and the best finished plays.

Without a stage a summary of every level with history is shown.

Examples:
  bloxorz history
  bloxorz history 8
  bloxorz history 8 --limit 5
  bloxorz history --interactive
  bloxorz history 8 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history of the stage")
}

func runHistory(_ *cobra.Command, args []string) {
	store := openStore(false)
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = findLevel(args[0]).ID
	}

	switch {
	case flagClear:
		if levelID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a stage")
			os.Exit(1)
		}
		if err := store.ClearLevel(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("History of %s cleared.\n", levelID)

	case flagInteractive:
		runHistoryTable(store, levelID)

	case levelID == "":
		printSummary(store)

	default:
		printLevelHistory(store, levelID)
	}
}

func runHistoryTable(store *storage.Store, start string) {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	all := allLevels()
	ids := make([]string, len(all))
	for i, l := range all {
		ids[i] = l.ID
	}
	if err := tui.RunHistory(store, ids, start, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No history recorded yet.")
		fmt.Println()
		fmt.Println("Run 'bloxorz solve <stage> --record' or finish a stage with 'bloxorz play'.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-12s  %-5s  %-5s  %-5s  %s\n", "Level", "Runs", "Plays", "Best", "Last active")
	fmt.Printf("  %-12s  %-5s  %-5s  %-5s  %s\n", "-----", "----", "-----", "----", "-----------")
	for _, id := range ids {
		st := stats[id]
		best := "-"
		if st.BestMoves > 0 {
			best = fmt.Sprint(st.BestMoves)
		}
		last := ""
		if !st.LastActive.IsZero() {
			last = st.LastActive.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-12s  %-5d  %-5d  %-5s  %s\n", id, st.Runs, st.Plays, best, last)
	}
}

func printLevelHistory(store *storage.Store, levelID string) {
	runs, err := store.RecentRuns(levelID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("History - %s\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No solver runs recorded yet.")
	} else {
		fmt.Printf("  %-5s  %-9s  %-6s  %-5s  %-9s  %-12s  %s\n", "ID", "Method", "Solved", "Moves", "Visited", "Time", "Date")
		fmt.Printf("  %-5s  %-9s  %-6s  %-5s  %-9s  %-12s  %s\n", "--", "------", "------", "-----", "-------", "----", "----")
		for _, r := range runs {
			moves := "-"
			if r.Moves > 0 {
				moves = fmt.Sprint(r.Moves)
			}
			fmt.Printf("  %-5d  %-9s  %-6v  %-5s  %-9d  %-12s  %s\n",
				r.ID, r.Method, r.Solved, moves, r.Visited, r.Duration, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	best, err := store.BestRun(levelID)
	if err == nil && best != nil {
		fmt.Println()
		fmt.Printf("Shortest path: %d moves (%s)\n", best.Moves, best.Method)
	}

	plays, err := store.BestPlays(levelID, 3)
	if err == nil && len(plays) > 0 {
		fmt.Println()
		fmt.Println("Best plays:")
		for i, p := range plays {
			fmt.Printf("  %d. %d moves by %s on %s\n", i+1, p.Moves, p.Source, p.CreatedAt.Format("2006-01-02"))
		}
	}
}
