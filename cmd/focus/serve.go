package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/host"
	"github.com/vovakirdan/focus-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that gives every connection its own panel.

Best scores and sensitivity are kept per SSH user. The run history is
shared. Send SIGHUP to reload the settings file; open panels pick up the
new default play time.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.focus/host_key

Examples:
  focus serve                           # Listen on :23235
  focus serve --ssh :2222               # Listen on port 2222
  focus serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, _ := openStore()
	if store != nil {
		defer store.Close()
	}

	bridge := host.Activate(settings, saveSettings)
	defer host.Deactivate()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = expandHome(flagHostKey)
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = settings.TickRate
	cfg.Seed = flagSeed
	cfg.Reload = func() (config.Settings, error) {
		return loadSettings()
	}

	server, err := tui.NewSSHServer(cfg, store, bridge)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting focus SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
