// bloxorz is a terminal block-rolling puzzle with a built-in solver.
//
// Usage:
//
//	bloxorz list              - List built-in and custom stages
//	bloxorz show <stage>      - Print a stage as ASCII
//	bloxorz solve <stage>     - Search a stage for a solution
//	bloxorz verify <file>     - Check an exported solution
//	bloxorz play [stage]      - Play a stage, or pick one from a menu
//	bloxorz history [stage]   - Show recorded solver runs and plays
//	bloxorz serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.bloxorz/config.yaml, ./configs/bloxorz.yaml)
//	--db <path>          - Set database path (default: ~/.bloxorz/runs.db)
//	--log-level <level>  - debug, info, warn, error
//	--levels-dir <dir>   - Directory of custom .txt/.yaml levels
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bloxorz/internal/config"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
	flagLevelsDir  string

	// Set up by the root command before any subcommand runs.
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bloxorz",
	Short: "Bloxorz - roll the block into the hole",
	Long: `Bloxorz is a terminal puzzle: roll a 1x1x2 block across floating
tiles, trip switches that raise and lower bridges, split at teleporters
and finally drop it upright into the goal hole. A breadth- and
depth-first solver finds solutions for any stage.

Available commands:
  list     - Show all stages
  show     - Print a stage as ASCII
  solve    - Run the solver on a stage
  verify   - Check an exported solution file
  play     - Play a stage interactively
  history  - View recorded solver runs and plays
  serve    - Start SSH server for remote play

Examples:
  bloxorz list
  bloxorz show 8
  bloxorz solve 8 --method bfs-path --out stage8.json.zst
  bloxorz play 1
  bloxorz serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of custom levels (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	appConfig = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bloxorz",
		Level:           level,
	})
	return nil
}
