package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/host"
	"github.com/vovakirdan/focus-arcade/internal/platform/tui"
	"github.com/vovakirdan/focus-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Open the panel",
	Long: `Open the playground panel. With a game id the panel starts in that game.

Controls:
  Up/Down, Enter  - Pick a game
  Space/Enter     - Start a run
  Click           - Hit targets, tap tiles
  1-9             - Tap a memory tile
  F / U           - Lock / unlock the pointer (Aim Trainer)
  [ - = ]         - Change the play time
  Esc/B           - Back to the menu
  Q/Ctrl+C        - Quit

Examples:
  focus play
  focus play aim
  focus play mem --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	var start config.GameID
	if len(args) == 1 {
		start = config.GameID(args[0])
		if !registry.Exists(start) {
			return fmt.Errorf("unknown game %q (run 'focus list' to see available games)", args[0])
		}
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, kv := openStore()
	if store != nil {
		defer store.Close()
	}

	bridge := host.Activate(settings, saveSettings)
	defer host.Deactivate()
	bridge.OpenPanel()
	defer bridge.ClosePanel()

	opts := panelOptions(bridge, store, kv)
	opts.StartGame = start
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	return nil
}
