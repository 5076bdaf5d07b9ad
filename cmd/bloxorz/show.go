package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

var flagShowMoves string

var showCmd = &cobra.Command{
	Use:   "show <stage>",
	Short: "Print a stage as ASCII",
	Long: `Print the board of a stage. With --moves the given moves are applied
first and the resulting position is shown.

Legend:
  .  empty        #  hard floor     ~  soft floor    G  goal
  =  bridge up    _  bridge down    o  soft switch   X  hard switch
  T  teleporter   @  block

Examples:
  bloxorz show 1
  bloxorz show stage-08 --moves "right right down"`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowMoves, "moves", "", "Space-separated moves to apply before printing")
}

func runShow(_ *cobra.Command, args []string) {
	lvl := findLevel(args[0])
	game := core.NewGame(lvl)

	for i, name := range strings.Fields(flagShowMoves) {
		a, err := core.ParseAction(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !game.Move(a) {
			fmt.Fprintf(os.Stderr, "Error: move %d (%s) is not allowed\n", i+1, a)
			os.Exit(1)
		}
	}

	st := game.State()
	fmt.Printf("%s  %s  (%dx%d)\n", lvl.ID, lvl.Name, lvl.Board.W, lvl.Board.H)
	fmt.Printf("Block: %s %s", st.Player.Orientation(), st.Player)
	if st.Bridges.Len() > 0 {
		fmt.Printf("  Bridges: %s", st.Bridges)
	}
	fmt.Println()
	fmt.Println()
	fmt.Print(core.RenderASCII(lvl.Board, st))

	if game.Won() {
		fmt.Println()
		fmt.Printf("Goal reached in %d moves.\n", game.Moves())
	}
}
