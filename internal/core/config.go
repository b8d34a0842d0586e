package core

import "time"

// RuntimeConfig contains configuration passed to games at creation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	CellPxW  int   // Virtual pixels per cell horizontally
	CellPxH  int   // Virtual pixels per cell vertically
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		CellPxW:  8,
		CellPxH:  16,
	}
}

// TickInterval returns the fixed simulation step.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// CellPx returns the cell size in virtual pixels, falling back to 8x16.
func (c RuntimeConfig) CellPx() (float64, float64) {
	w, h := c.CellPxW, c.CellPxH
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 16
	}
	return float64(w), float64(h)
}

// GameState summarizes a game instance for the platform.
type GameState struct {
	Score    int  // Current score (hits or rounds)
	Running  bool // A run is in progress
	Finished bool // The last run has ended
}

// Effect is a side effect a game asks the platform to perform.
type Effect int

const (
	EffectNone Effect = iota
	EffectRequestCapture
	EffectReleaseCapture
)

// String returns a human-readable name for the effect.
func (e Effect) String() string {
	switch e {
	case EffectRequestCapture:
		return "RequestCapture"
	case EffectReleaseCapture:
		return "ReleaseCapture"
	default:
		return "None"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Effects []Effect
}
