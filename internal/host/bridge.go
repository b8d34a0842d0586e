// Package host is the process-wide side of the playground: it owns the
// settings, decides when to nudge an idle user and tracks whether a panel is
// open so config changes can be pushed to it.
package host

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/focus-arcade/internal/config"
)

// Saver persists the settings file.
type Saver func(config.Settings) error

// Choice is the user's answer to an idle nudge.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoicePlay
	ChoiceSnooze
	ChoiceDisable
)

// Choices lists the nudge answers in display order.
var Choices = []Choice{ChoicePlay, ChoiceSnooze, ChoiceDisable}

// Label returns the button text for the choice.
func (c Choice) Label(settings config.Settings) string {
	switch c {
	case ChoicePlay:
		return config.MenuPlay
	case ChoiceSnooze:
		return fmt.Sprintf("Snooze %dm", settings.SnoozeMinutes)
	case ChoiceDisable:
		return "Disable"
	default:
		return ""
	}
}

// Bridge is the activated host state.
type Bridge struct {
	mu sync.Mutex

	settings config.Settings
	save     Saver
	hub      *Hub

	lastActivity time.Time
	snoozedUntil time.Time
	nudged       bool
	panelOpen    bool
}

var (
	activeMu sync.Mutex
	active   *Bridge
)

// Activate creates the process-wide bridge, replacing any previous one.
// save may be nil, in which case setting changes stay in memory.
func Activate(settings config.Settings, save Saver) *Bridge {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active != nil {
		active.hub.Close()
	}
	active = &Bridge{
		settings:     settings,
		save:         save,
		hub:          NewHub(),
		lastActivity: time.Now(),
	}
	return active
}

// Deactivate tears the bridge down and closes every panel subscription.
func Deactivate() {
	activeMu.Lock()
	defer activeMu.Unlock()

	if active == nil {
		return
	}
	active.hub.Close()
	active = nil
}

// Current returns the active bridge, or nil.
func Current() *Bridge {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// Settings returns a copy of the current settings.
func (b *Bridge) Settings() config.Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// Hub returns the config push hub.
func (b *Bridge) Hub() *Hub {
	return b.hub
}

// Touch records user activity and re-arms the nudge.
func (b *Bridge) Touch(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastActivity = now
	b.nudged = false
}

// Due reports whether the nudge should be shown now. It fires at most once
// per idle stretch.
func (b *Bridge) Due(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.settings.AutoShowOnIdle || b.panelOpen || b.nudged {
		return false
	}
	if now.Before(b.snoozedUntil) {
		return false
	}
	if now.Sub(b.lastActivity) < b.settings.IdleAfter() {
		return false
	}
	b.nudged = true
	return true
}

// Choose applies the answer to a nudge. It reports whether the panel should
// be opened.
func (b *Bridge) Choose(c Choice, now time.Time) (bool, error) {
	switch c {
	case ChoicePlay:
		return true, nil
	case ChoiceSnooze:
		b.mu.Lock()
		b.snoozedUntil = now.Add(b.settings.Snooze())
		b.mu.Unlock()
		return false, nil
	case ChoiceDisable:
		return false, b.setAutoShow(false)
	default:
		return false, nil
	}
}

// SnoozedUntil returns the end of the current snooze.
func (b *Bridge) SnoozedUntil() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snoozedUntil
}

// ToggleIdle flips auto-show on idle, persists it and returns the new value.
func (b *Bridge) ToggleIdle() (bool, error) {
	b.mu.Lock()
	on := !b.settings.AutoShowOnIdle
	b.mu.Unlock()
	return on, b.setAutoShow(on)
}

func (b *Bridge) setAutoShow(on bool) error {
	b.mu.Lock()
	b.settings.AutoShowOnIdle = on
	settings := b.settings
	b.mu.Unlock()

	if b.save == nil {
		return nil
	}
	if err := b.save(settings); err != nil {
		log.Warn("could not save settings", "error", err)
		return fmt.Errorf("host: save settings: %w", err)
	}
	return nil
}

// OpenPanel marks the panel as open. It reports true when a panel already
// existed, in which case the current duration is pushed to it.
func (b *Bridge) OpenPanel() bool {
	b.mu.Lock()
	existed := b.panelOpen
	b.panelOpen = true
	duration := b.settings.DefaultDuration
	b.mu.Unlock()

	if existed {
		b.hub.Publish(ConfigMsg{Duration: duration})
	}
	return existed
}

// ClosePanel marks the panel as closed.
func (b *Bridge) ClosePanel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.panelOpen = false
}

// PanelOpen reports whether a panel is open.
func (b *Bridge) PanelOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.panelOpen
}

// Reload replaces the settings and pushes the duration to every panel.
func (b *Bridge) Reload(settings config.Settings) {
	b.mu.Lock()
	b.settings = settings
	b.mu.Unlock()
	b.hub.Publish(ConfigMsg{Duration: settings.DefaultDuration})
}
