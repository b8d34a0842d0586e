package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/focus.yaml
var defaultSettingsYAML []byte

// Settings is the user-editable settings file.
type Settings struct {
	DefaultDuration int  `yaml:"default_duration" toml:"default_duration"`
	AutoShowOnIdle  bool `yaml:"auto_show_on_idle" toml:"auto_show_on_idle"`
	IdleSeconds     int  `yaml:"idle_seconds" toml:"idle_seconds"`
	SnoozeMinutes   int  `yaml:"snooze_minutes" toml:"snooze_minutes"`
	Capture         bool `yaml:"capture" toml:"capture"` // pointer capture available
	TickRate        int  `yaml:"tick_rate" toml:"tick_rate"`

	Aim          AimTuning    `yaml:"aim" toml:"aim"`
	Memory       MemoryTuning `yaml:"memory" toml:"memory"`
	Difficulties []Difficulty `yaml:"difficulties" toml:"difficulties"`
}

// DefaultSettings returns the hard-coded defaults.
func DefaultSettings() Settings {
	return Settings{
		DefaultDuration: DefaultDuration,
		AutoShowOnIdle:  true,
		IdleSeconds:     25,
		SnoozeMinutes:   10,
		Capture:         true,
		TickRate:        60,
		Aim:             DefaultAimTuning(),
		Memory:          DefaultMemoryTuning(),
		Difficulties:    DefaultDifficulties(),
	}
}

// IdleAfter returns the inactivity period before a nudge.
func (s Settings) IdleAfter() time.Duration {
	return time.Duration(s.IdleSeconds) * time.Second
}

// Snooze returns how long a snoozed nudge stays quiet.
func (s Settings) Snooze() time.Duration {
	return time.Duration(s.SnoozeMinutes) * time.Minute
}

// Normalize replaces out-of-range values with defaults so a partially
// written file can never produce an unusable configuration.
func (s *Settings) Normalize() {
	def := DefaultSettings()

	if s.DefaultDuration <= 0 {
		s.DefaultDuration = def.DefaultDuration
	}
	if s.DefaultDuration < MinDuration {
		s.DefaultDuration = MinDuration
	}
	if s.DefaultDuration > MaxDuration {
		s.DefaultDuration = MaxDuration
	}
	if s.IdleSeconds <= 0 {
		s.IdleSeconds = def.IdleSeconds
	}
	if s.SnoozeMinutes <= 0 {
		s.SnoozeMinutes = def.SnoozeMinutes
	}
	if s.TickRate <= 0 || s.TickRate > 240 {
		s.TickRate = def.TickRate
	}

	if s.Aim.BaselineEDPI <= 0 || s.Aim.ScaleMin <= 0 || s.Aim.ScaleMax < s.Aim.ScaleMin ||
		s.Aim.PlacementAttempts <= 0 || s.Aim.RampEveryMS <= 0 {
		s.Aim = def.Aim
	}
	if s.Memory.StepMS <= 0 || s.Memory.FlashMS <= 0 {
		s.Memory = def.Memory
	}

	tiers := s.Difficulties[:0:0]
	for _, d := range s.Difficulties {
		if d.valid() {
			tiers = append(tiers, d)
		}
	}
	if len(tiers) == 0 {
		tiers = def.Difficulties
	}
	s.Difficulties = tiers
}
