// Package state holds the mutable session state of a panel: the current
// screen, duration, best scores, sensitivity and runtime flags.
package state

import (
	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
)

// Screen is the panel's current view.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
)

// String returns a human-readable name for the screen.
func (s Screen) String() string {
	if s == ScreenGame {
		return "Game"
	}
	return "Menu"
}

// ClampDuration keeps a run duration within the configured bounds.
func ClampDuration(d int) int {
	return core.Clamp(d, config.MinDuration, config.MaxDuration)
}

// BestScores maps a game to the best score ever achieved in it.
type BestScores map[config.GameID]int

// DefaultBestScores returns a zeroed record for every game.
func DefaultBestScores() BestScores {
	return BestScores{config.GameAim: 0, config.GameMemory: 0}
}

// Get returns the best score for id, 0 if none.
func (b BestScores) Get(id config.GameID) int {
	return b[id]
}

// Record stores score if it is strictly greater than the current best.
// Returns true if the best improved.
func (b BestScores) Record(id config.GameID, score int) bool {
	if score <= b[id] {
		return false
	}
	b[id] = score
	return true
}

// RuntimeFlags is per-session state that is never persisted.
type RuntimeFlags struct {
	HasPlayedAimBefore bool
}

// Session is the state of one panel. It is mutated only from the panel's
// update loop.
type Session struct {
	Screen     Screen
	ActiveGame config.GameID // meaningful only on ScreenGame
	Best       BestScores
	Sens       Sensitivity
	Runtime    RuntimeFlags
	Settings   config.Settings

	duration int
	store    *Persister
}

// NewSession builds the initial state, hydrating scores and sensitivity from
// the persister. A nil persister yields defaults and no-op saves.
func NewSession(duration int, settings config.Settings, p *Persister) *Session {
	return &Session{
		Screen:   ScreenMenu,
		Best:     p.LoadScores(),
		Sens:     p.LoadSensitivity(),
		Settings: settings,
		duration: ClampDuration(duration),
		store:    p,
	}
}

// Duration returns the configured run length in seconds.
func (s *Session) Duration() int {
	return s.duration
}

// SetDuration clamps and stores d, returning the stored value.
func (s *Session) SetDuration(d int) int {
	s.duration = ClampDuration(d)
	return s.duration
}

// AdjustDuration shifts the duration by delta seconds.
func (s *Session) AdjustDuration(delta int) int {
	return s.SetDuration(s.duration + delta)
}

// ShowMenu switches to the menu screen.
func (s *Session) ShowMenu() {
	s.Screen = ScreenMenu
	s.ActiveGame = ""
}

// ShowGame switches to the game screen for id.
func (s *Session) ShowGame(id config.GameID) {
	s.Screen = ScreenGame
	s.ActiveGame = id
}

// Difficulty returns the currently selected tier.
func (s *Session) Difficulty() config.Difficulty {
	return s.Settings.Tier(s.Sens.Difficulty)
}

// SaveScores persists the best scores record.
func (s *Session) SaveScores() {
	s.store.SaveScores(s.Best)
}

// SaveSensitivity persists the sensitivity record.
func (s *Session) SaveSensitivity() {
	s.store.SaveSensitivity(s.Sens)
}
