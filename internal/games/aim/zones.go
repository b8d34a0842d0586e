package aim

import (
	"math"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
)

// Arena is the play field geometry in virtual pixels. All zone queries are
// pure functions of the arena size and tuning, so the renderer and the hit
// logic agree on what is where.
type Arena struct {
	Size   core.Size
	Tuning config.AimTuning
}

// UnlockZone returns the width, height and margin of the bottom-right unlock
// area.
func (a Arena) UnlockZone() (w, h, margin float64) {
	t := a.Tuning
	w = core.ClampF(a.Size.W*t.ZoneWidthFactor, t.ZoneWidthMin, t.ZoneWidthMax)
	h = core.ClampF(a.Size.H*t.ZoneHeightFactor, t.ZoneHeightMin, t.ZoneHeightMax)
	margin = core.ClampF(math.Min(a.Size.W, a.Size.H)*t.ZoneMarginFactor, t.ZoneMarginMin, t.ZoneMarginMax)
	return w, h, margin
}

// InUnlockZone reports whether p is inside the unlock area. The area is open
// towards the bottom-right corner.
func (a Arena) InUnlockZone(p core.Vec) bool {
	w, h, margin := a.UnlockZone()
	return p.X > a.Size.W-w-margin && p.Y > a.Size.H-h-margin
}

// UnlockCenter returns the centre of the unlock button.
func (a Arena) UnlockCenter() core.Vec {
	w, h, margin := a.UnlockZone()
	return core.Vec{X: a.Size.W - w/2 - margin, Y: a.Size.H - h/2 - margin}
}

// KeepOutRadius is the radius around the unlock centre kept clear of targets.
func (a Arena) KeepOutRadius() float64 {
	t := a.Tuning
	return core.ClampF(math.Min(a.Size.W, a.Size.H)*t.UnlockRadiusFactor, t.UnlockRadiusMin, t.UnlockRadiusMax)
}

// TooCloseToUnlock reports whether p is strictly within the keep-out radius.
func (a Arena) TooCloseToUnlock(p core.Vec) bool {
	r := a.KeepOutRadius()
	return p.Dist2(a.UnlockCenter()) < r*r
}

// Restricted reports whether a target may not be placed at p.
func (a Arena) Restricted(p core.Vec) bool {
	return a.InUnlockZone(p) || a.TooCloseToUnlock(p)
}

// Center returns the arena centre.
func (a Arena) Center() core.Vec {
	return core.Vec{X: a.Size.W / 2, Y: a.Size.H / 2}
}

// InStartZone reports whether p is within the start radius of the centre.
func (a Arena) InStartZone(p core.Vec) bool {
	r := a.Tuning.StartRadius
	return p.Dist2(a.Center()) <= r*r
}

// Contains reports whether p lies on the arena.
func (a Arena) Contains(p core.Vec) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= a.Size.W && p.Y <= a.Size.H
}

// Place picks a target position with rnd, which must return values in [0, 1).
// Candidates are uniform over the arena minus the edge padding. A candidate
// in a restricted area is retried; when every attempt fails the last
// candidate is mirrored through the centre, which clears the bottom-right
// unlock area on any arena wider and taller than twice the zone.
func (a Arena) Place(rnd func() float64) core.Vec {
	t := a.Tuning
	pad := t.EdgePadding
	spreadX := math.Max(t.MinSpread, a.Size.W-2*pad)
	spreadY := math.Max(t.MinSpread, a.Size.H-2*pad)

	attempts := t.PlacementAttempts
	if attempts < 1 {
		attempts = 1
	}

	var p core.Vec
	for i := 0; i < attempts; i++ {
		p = core.Vec{X: rnd()*spreadX + pad, Y: rnd()*spreadY + pad}
		if !a.Restricted(p) {
			return p
		}
	}
	return core.Vec{X: a.Size.W - p.X, Y: a.Size.H - p.Y}
}
