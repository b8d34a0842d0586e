package aim

import (
	"time"

	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/sched"
)

// Target is a live dot. Size and lifetime are fixed at spawn, so changing
// the difficulty never affects targets already on screen.
type Target struct {
	ID        int
	Pos       core.Vec // arena pixels
	Size      float64  // diameter in pixels
	Life      time.Duration
	SpawnedAt time.Duration // scheduler time

	expiry sched.Handle
}

// Radius returns the hit radius for the given tolerance.
func (t *Target) Radius(tolerance float64) float64 {
	return t.Size/2 + tolerance
}

// Remaining returns the fraction of lifetime left at now, in [0, 1].
func (t *Target) Remaining(now time.Duration) float64 {
	if t.Life <= 0 {
		return 0
	}
	left := t.SpawnedAt + t.Life - now
	return core.ClampF(float64(left)/float64(t.Life), 0, 1)
}

// spawn places a new target using the current tier and schedules its expiry.
func (g *Game) spawn() *Target {
	return g.addTarget(g.arenaGeom().Place(g.rng.Float64))
}

// addTarget registers a target at p.
func (g *Game) addTarget(p core.Vec) *Target {
	tier := g.sess.Difficulty()
	g.nextTargetID++
	t := &Target{
		ID:        g.nextTargetID,
		Pos:       p,
		Size:      tier.Size,
		Life:      tier.Lifetime(),
		SpawnedAt: g.sched.Now(),
	}
	id := t.ID
	t.expiry = g.sched.After(t.Life, func() {
		g.removeTarget(id)
	})
	g.targets = append(g.targets, t)
	return t
}

// removeTarget drops the target with the given id and cancels its expiry.
// Returns false if it was already gone, so a hit and an expiry racing on the
// same target resolve to whichever runs first.
func (g *Game) removeTarget(id int) bool {
	for i, t := range g.targets {
		if t.ID != id {
			continue
		}
		g.sched.Cancel(t.expiry)
		g.targets = append(g.targets[:i], g.targets[i+1:]...)
		return true
	}
	return false
}

// clearTargets removes every target and cancels their expiries.
func (g *Game) clearTargets() {
	for _, t := range g.targets {
		g.sched.Cancel(t.expiry)
	}
	g.targets = nil
}

// fireShot credits the first target, in creation order, whose hit radius
// contains p. A miss is a no-op.
func (g *Game) fireShot(p core.Vec) bool {
	for _, t := range g.targets {
		r := t.Radius(g.tuning.HitTolerance)
		if p.Dist2(t.Pos) <= r*r {
			if g.removeTarget(t.ID) {
				g.score++
				return true
			}
			return false
		}
	}
	return false
}
