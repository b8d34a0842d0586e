package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focus-arcade/internal/host"
	"github.com/vovakirdan/focus-arcade/internal/platform/tui"
)

var flagToggle bool

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Run the status bar launcher",
	Long: `Run a small launcher that stays out of the way. After a stretch of
inactivity it offers a short break: Play, Snooze or Disable.

With --toggle the auto-show setting is flipped and saved, and the
command exits.

Examples:
  focus idle
  focus idle --toggle
  focus idle --config ./focus.toml`,
	Args: cobra.NoArgs,
	RunE: runIdle,
}

func init() {
	idleCmd.Flags().BoolVar(&flagToggle, "toggle", false, "Toggle auto-show on idle and exit")
}

func runIdle(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	bridge := host.Activate(settings, saveSettings)
	defer host.Deactivate()

	if flagToggle {
		on, err := bridge.ToggleIdle()
		if err != nil {
			return err
		}
		if on {
			fmt.Println("Auto-show on idle enabled.")
		} else {
			fmt.Println("Auto-show on idle disabled.")
		}
		return nil
	}

	store, kv := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunIdle(bridge, panelOptions(bridge, store, kv)); err != nil {
		return fmt.Errorf("launcher: %w", err)
	}
	return nil
}
