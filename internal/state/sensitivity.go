package state

import (
	"fmt"
	"math"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
)

// Sensitivity mirrors the mouse settings of a shooter so that crosshair
// motion in the aim game feels the same.
//
// SensX and SensY are authoritative only while AxisSplit is set; otherwise
// Sens applies to both axes.
type Sensitivity struct {
	GameID     string  `json:"gameId"`
	DPI        float64 `json:"dpi"`
	Sens       float64 `json:"sens"`
	SensX      float64 `json:"sensX"`
	SensY      float64 `json:"sensY"`
	AxisSplit  bool    `json:"axisSplit"`
	Difficulty string  `json:"difficulty"`

	lastSingle float64 // last unified value, restored when the split is turned off
}

// DefaultSensitivity returns the settings used when nothing is stored.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{
		GameID:     config.GameProfiles[0].ID,
		DPI:        config.DefaultDPI,
		Sens:       config.DefaultSens,
		SensX:      config.DefaultSens,
		SensY:      config.DefaultSens,
		Difficulty: config.DifficultyNormal,
		lastSingle: config.DefaultSens,
	}
}

// Hydrate turns a stored record into usable settings. Zero values fall back
// to defaults and the per-axis values fall back to the unified one.
func Hydrate(stored *Sensitivity) Sensitivity {
	if stored == nil {
		return DefaultSensitivity()
	}
	s := Sensitivity{
		GameID:     or(stored.GameID, config.GameProfiles[0].ID),
		DPI:        orF(stored.DPI, config.DefaultDPI),
		Sens:       orF(stored.Sens, config.DefaultSens),
		AxisSplit:  stored.AxisSplit,
		Difficulty: or(stored.Difficulty, config.DifficultyNormal),
	}
	s.SensX = orF(stored.SensX, s.Sens)
	s.SensY = orF(stored.SensY, s.Sens)

	s.DPI = clampLimit(s.DPI, config.DPILimit)
	s.Sens = clampLimit(s.Sens, config.SensLimit)
	s.SensX = clampLimit(s.SensX, config.SensLimit)
	s.SensY = clampLimit(s.SensY, config.SensLimit)
	s.lastSingle = s.Sens
	return s
}

// SetDPI clamps and stores the mouse DPI.
func (s *Sensitivity) SetDPI(v float64) {
	s.DPI = clampLimit(v, config.DPILimit)
}

// SetSens clamps and stores the unified multiplier.
func (s *Sensitivity) SetSens(v float64) {
	s.Sens = clampLimit(v, config.SensLimit)
	s.lastSingle = s.Sens
}

// SetSensX clamps and stores the horizontal multiplier.
func (s *Sensitivity) SetSensX(v float64) {
	s.SensX = clampLimit(v, config.SensLimit)
}

// SetSensY clamps and stores the vertical multiplier.
func (s *Sensitivity) SetSensY(v float64) {
	s.SensY = clampLimit(v, config.SensLimit)
}

// SetAxisSplit switches between unified and per-axis sensitivity. Enabling
// seeds both axes with the last unified value; disabling restores it.
func (s *Sensitivity) SetAxisSplit(on bool) {
	last := s.lastUnified()
	s.AxisSplit = on
	if on {
		s.SensX = last
		s.SensY = last
	} else {
		s.Sens = last
	}
}

// StepDPI moves the DPI by n input steps.
func (s *Sensitivity) StepDPI(n int) {
	s.SetDPI(s.DPI + float64(n)*config.DPILimit.Step)
}

// StepSens moves the unified multiplier, or the X multiplier while split,
// by n input steps.
func (s *Sensitivity) StepSens(n int) {
	if s.AxisSplit {
		s.SetSensX(s.SensX + float64(n)*config.SensLimit.Step)
		return
	}
	s.SetSens(s.Sens + float64(n)*config.SensLimit.Step)
}

// StepSensY moves the Y multiplier by n input steps. Only meaningful while
// split.
func (s *Sensitivity) StepSensY(n int) {
	if !s.AxisSplit {
		return
	}
	s.SetSensY(s.SensY + float64(n)*config.SensLimit.Step)
}

// CycleDifficulty selects the next tier from settings.
func (s *Sensitivity) CycleDifficulty(settings config.Settings) {
	s.Difficulty = settings.NextTier(s.Difficulty)
}

// CycleProfile selects the next game profile.
func (s *Sensitivity) CycleProfile() {
	s.GameID = config.NextProfile(s.GameID)
}

// Profile returns the selected game profile.
func (s Sensitivity) Profile() config.GameProfile {
	return config.ProfileByID(s.GameID)
}

// Effective returns the multipliers applied to each axis.
func (s Sensitivity) Effective() (x, y float64) {
	unified := orF(s.Sens, config.DefaultSens)
	if !s.AxisSplit {
		return unified, unified
	}
	return orF(s.SensX, unified), orF(s.SensY, unified)
}

// MotionScale returns the per-axis factor applied to raw pointer deltas:
// dpi*sens/baseline, clamped to [lo, hi].
func (s Sensitivity) MotionScale(baseline, lo, hi float64) (sx, sy float64) {
	if baseline <= 0 {
		baseline = config.DefaultDPI
	}
	dpi := orF(s.DPI, config.DefaultDPI)
	x, y := s.Effective()
	return core.ClampF(dpi*x/baseline, lo, hi), core.ClampF(dpi*y/baseline, lo, hi)
}

// EDPI is the displayed dpi*sens product.
type EDPI struct {
	X, Y  int
	Split bool
}

// String formats a unified value as "800" and a split one as "800 / 1200".
func (e EDPI) String() string {
	if e.Split {
		return fmt.Sprintf("%d / %d", e.X, e.Y)
	}
	return fmt.Sprintf("%d", e.X)
}

// EDPI returns round(dpi*sens), per axis while split.
func (s Sensitivity) EDPI() EDPI {
	dpi := orF(s.DPI, config.DefaultDPI)
	x, y := s.Effective()
	if s.AxisSplit {
		return EDPI{X: int(math.Round(dpi * x)), Y: int(math.Round(dpi * y)), Split: true}
	}
	v := int(math.Round(dpi * x))
	return EDPI{X: v, Y: v}
}

// CmPer360 returns the horizontal mouse travel for a full turn in the
// selected game profile.
func (s Sensitivity) CmPer360() float64 {
	dpi := orF(s.DPI, config.DefaultDPI)
	x, _ := s.Effective()
	yaw := s.Profile().Yaw
	if yaw <= 0 || x <= 0 || dpi <= 0 {
		return 0
	}
	inches := 360 / (yaw * x) / dpi
	return inches * 2.54
}

func (s Sensitivity) lastUnified() float64 {
	if s.lastSingle > 0 {
		return s.lastSingle
	}
	return orF(s.Sens, config.DefaultSens)
}

// clampLimit clamps v to l, dropping float drift left by repeated steps.
func clampLimit(v float64, l config.Limit) float64 {
	v = math.Round(v*1e6) / 1e6
	return core.ClampF(v, l.Min, l.Max)
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func orF(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
