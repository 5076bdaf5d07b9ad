package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stages",
	Long: `Shows the built-in stages and any custom levels found in --levels-dir,
with their size and feature counts.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	all := allLevels()
	if len(all) == 0 {
		fmt.Println("No stages available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, l := range all {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-7s  %-8s  %-8s  %s\n", maxIDLen, "ID", "Size", "Bridges", "Switches", "Teleport", "Name")
	fmt.Printf("  %-*s  %-7s  %-7s  %-8s  %-8s  %s\n", maxIDLen, "--", "----", "-------", "--------", "--------", "----")

	for _, l := range all {
		f := countFeatures(l.Board)
		size := fmt.Sprintf("%dx%d", l.Board.W, l.Board.H)
		bridges := fmt.Sprintf("%d/%d", f.bridges, f.segments)
		fmt.Printf("  %-*s  %-7s  %-7s  %-8d  %-8d  %s\n", maxIDLen, l.ID, size, bridges, f.switches, f.teleporters, l.Name)
	}

	fmt.Println()
	fmt.Println("Bridges are shown as bridges/segments.")
	fmt.Println("Run 'bloxorz play <id>' to play a stage.")
}
