// focus is a break-time playground with two short mini-games: Aim Trainer
// and Sequence Memory.
//
// Usage:
//
//	focus list              - List available games
//	focus play [game]       - Open the panel, optionally straight into a game
//	focus idle              - Run the status bar launcher with the idle nudge
//	focus serve             - Serve panels over SSH
//	focus scores [game]     - Show run history
//
// Global flags:
//
//	--config <path> - Settings file (YAML or TOML)
//	--db <path>     - Database path (default: ~/.focus/focus.db)
//	--log <path>    - Log file (default: ~/.focus/focus.log)
//	--fps <rate>    - Tick rate, overrides the settings file
//	--seed <value>  - RNG seed for reproducible runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/focus-arcade/internal/games/aim"
	_ "github.com/vovakirdan/focus-arcade/internal/games/memory"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagLogPath string
	flagFPS     int
	flagSeed    int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "Focus Playground - short mini-games for a break",
	Long: `Focus Playground is a terminal panel with two short mini-games:
Aim Trainer and Sequence Memory. Every run is time-limited, and the
launcher can nudge you after a stretch of inactivity.

Available commands:
  list     - Show all available games
  play     - Open the panel
  idle     - Status bar launcher with the idle nudge
  serve    - Serve panels over SSH
  scores   - View run history

Examples:
  focus list
  focus play
  focus play aim
  focus idle
  focus idle --toggle
  focus serve --ssh :2222
  focus scores mem`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLogging()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.focus/focus.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.focus/focus.log", "Path to log file")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from settings)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(idleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
