package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/host"
	"github.com/vovakirdan/focus-arcade/internal/platform/tui"
	"github.com/vovakirdan/focus-arcade/internal/state"
	"github.com/vovakirdan/focus-arcade/internal/storage"
)

var logFile *os.File

// setupLogging sends the default logger to the log file. The terminal
// belongs to the panel, so nothing is logged to stderr.
func setupLogging() error {
	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	log.SetDefault(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "focus",
	}))
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func settingsPath() string {
	if flagConfig != "" {
		return expandHome(flagConfig)
	}
	return config.UserConfigPath()
}

func loadSettings() (config.Settings, error) {
	settings, err := config.Load(settingsPath())
	if err != nil {
		return settings, err
	}
	if flagFPS > 0 {
		settings.TickRate = flagFPS
	}
	return settings, nil
}

func saveSettings(settings config.Settings) error {
	path := settingsPath()
	if path == "" {
		return fmt.Errorf("no settings path")
	}
	return config.Save(path, settings)
}

// openStore opens the database. Without one the panel still works, with
// best scores and sensitivity kept in memory and no run history.
func openStore() (*storage.Store, state.KV) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("database unavailable, state is kept in memory", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil, state.NewMemoryKV()
	}
	return store, store
}

func runtimeConfig(settings config.Settings) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = settings.TickRate
	cfg.Seed = flagSeed
	return cfg
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// panelOptions builds the options shared by `play` and `idle`.
func panelOptions(bridge *host.Bridge, store *storage.Store, kv state.KV) tui.ShellOptions {
	settings := bridge.Settings()
	return tui.ShellOptions{
		Settings:  settings,
		Persister: state.NewPersister(kv, ""),
		History:   store,
		Player:    playerName(),
		Config:    runtimeConfig(settings),
		Hub:       bridge.Hub(),
		Logger:    log.Default(),
	}
}
