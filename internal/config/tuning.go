package config

import "time"

// AimTuning holds the geometry and pacing constants of the aim game.
// Lengths are in virtual pixels.
type AimTuning struct {
	BaselineEDPI float64 `yaml:"baseline_edpi" toml:"baseline_edpi"`
	ScaleMin     float64 `yaml:"scale_min" toml:"scale_min"`
	ScaleMax     float64 `yaml:"scale_max" toml:"scale_max"`
	StartRadius  float64 `yaml:"start_radius" toml:"start_radius"`
	HitTolerance float64 `yaml:"hit_tolerance" toml:"hit_tolerance"`
	KeyNudge     float64 `yaml:"key_nudge" toml:"key_nudge"` // raw delta per arrow key press

	UnlockRadiusFactor float64 `yaml:"unlock_radius_factor" toml:"unlock_radius_factor"`
	UnlockRadiusMin    float64 `yaml:"unlock_radius_min" toml:"unlock_radius_min"`
	UnlockRadiusMax    float64 `yaml:"unlock_radius_max" toml:"unlock_radius_max"`
	ZoneWidthFactor    float64 `yaml:"zone_width_factor" toml:"zone_width_factor"`
	ZoneWidthMin       float64 `yaml:"zone_width_min" toml:"zone_width_min"`
	ZoneWidthMax       float64 `yaml:"zone_width_max" toml:"zone_width_max"`
	ZoneHeightFactor   float64 `yaml:"zone_height_factor" toml:"zone_height_factor"`
	ZoneHeightMin      float64 `yaml:"zone_height_min" toml:"zone_height_min"`
	ZoneHeightMax      float64 `yaml:"zone_height_max" toml:"zone_height_max"`
	ZoneMarginFactor   float64 `yaml:"zone_margin_factor" toml:"zone_margin_factor"`
	ZoneMarginMin      float64 `yaml:"zone_margin_min" toml:"zone_margin_min"`
	ZoneMarginMax      float64 `yaml:"zone_margin_max" toml:"zone_margin_max"`

	EdgePadding       float64 `yaml:"edge_padding" toml:"edge_padding"`
	MinSpread         float64 `yaml:"min_spread" toml:"min_spread"`
	PlacementAttempts int     `yaml:"placement_attempts" toml:"placement_attempts"`
	SpawnStepMS       int     `yaml:"spawn_step_ms" toml:"spawn_step_ms"`
	RampEveryMS       int     `yaml:"ramp_every_ms" toml:"ramp_every_ms"`
}

// SpawnStep is how much the spawn interval shrinks per spawned target.
func (t AimTuning) SpawnStep() time.Duration {
	return time.Duration(t.SpawnStepMS) * time.Millisecond
}

// RampEvery is the period of the spawn cadence restart.
func (t AimTuning) RampEvery() time.Duration {
	return time.Duration(t.RampEveryMS) * time.Millisecond
}

// DefaultAimTuning returns the built-in aim constants.
func DefaultAimTuning() AimTuning {
	return AimTuning{
		BaselineEDPI: 800,
		ScaleMin:     0.05,
		ScaleMax:     8,
		StartRadius:  40,
		HitTolerance: 2,
		KeyNudge:     16,

		UnlockRadiusFactor: 0.07,
		UnlockRadiusMin:    24,
		UnlockRadiusMax:    64,
		ZoneWidthFactor:    0.2,
		ZoneWidthMin:       110,
		ZoneWidthMax:       180,
		ZoneHeightFactor:   0.18,
		ZoneHeightMin:      42,
		ZoneHeightMax:      110,
		ZoneMarginFactor:   0.03,
		ZoneMarginMin:      8,
		ZoneMarginMax:      24,

		EdgePadding:       18,
		MinSpread:         4,
		PlacementAttempts: 15,
		SpawnStepMS:       10,
		RampEveryMS:       5000,
	}
}

// TileCount is the number of tiles in the sequence grid.
const TileCount = 9

// MemoryTuning holds the pacing and layout constants of the sequence game.
type MemoryTuning struct {
	StepMS     int     `yaml:"step_ms" toml:"step_ms"`
	AdvanceMS  int     `yaml:"advance_ms" toml:"advance_ms"`
	FlashMS    int     `yaml:"flash_ms" toml:"flash_ms"`
	WideAspect float64 `yaml:"wide_aspect" toml:"wide_aspect"`
	TallAspect float64 `yaml:"tall_aspect" toml:"tall_aspect"`
}

// Step is the delay between two flashes during playback.
func (t MemoryTuning) Step() time.Duration {
	return time.Duration(t.StepMS) * time.Millisecond
}

// Advance is the pause between a completed sequence and the next round.
func (t MemoryTuning) Advance() time.Duration {
	return time.Duration(t.AdvanceMS) * time.Millisecond
}

// Flash is how long a tile stays lit.
func (t MemoryTuning) Flash() time.Duration {
	return time.Duration(t.FlashMS) * time.Millisecond
}

// DefaultMemoryTuning returns the built-in sequence game constants.
func DefaultMemoryTuning() MemoryTuning {
	return MemoryTuning{
		StepMS:     450,
		AdvanceMS:  350,
		FlashMS:    250,
		WideAspect: 2.2,
		TallAspect: 0.45,
	}
}
