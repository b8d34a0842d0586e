package aim

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/registry"
	"github.com/vovakirdan/focus-arcade/internal/state"
)

type hookLog struct {
	scores   int
	settings int
	finished []int
}

func newTestGame(t *testing.T) (*Game, *hookLog) {
	t.Helper()
	return newTestGameWith(t, config.DefaultSettings())
}

func newTestGameWith(t *testing.T, settings config.Settings) (*Game, *hookLog) {
	t.Helper()
	sess := state.NewSession(30, settings, state.NewPersister(state.NewMemoryKV(), ""))
	hl := &hookLog{}
	deps := registry.Deps{
		Session: sess,
		Config: core.RuntimeConfig{
			ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42, CellPxW: 8, CellPxH: 16,
		},
		Hooks: registry.Hooks{
			ScoresUpdated:   func() { hl.scores++ },
			SettingsUpdated: func() { hl.settings++ },
			RunFinished:     func(_ config.GameID, score int) { hl.finished = append(hl.finished, score) },
		},
	}
	return New(deps), hl
}

func frame() core.InputFrame {
	return core.NewInputFrame()
}

func withAction(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func withCapture(sig core.CaptureSignal) core.InputFrame {
	in := core.NewInputFrame()
	in.Capture = sig
	return in
}

func lock(g *Game) {
	g.Step(withCapture(core.CaptureGranted), 0)
}

func aimAt(g *Game, p core.Vec) {
	g.crosshair = core.Vec{X: p.X / g.arena.W, Y: p.Y / g.arena.H}
}

func hasEffect(res core.StepResult, e core.Effect) bool {
	for _, got := range res.Effects {
		if got == e {
			return true
		}
	}
	return false
}

func TestArenaFromLayout(t *testing.T) {
	g, _ := newTestGame(t)
	if g.arena.W != 624 || g.arena.H != 208 {
		t.Errorf("arena = %+v, expected 624x208", g.arena)
	}
}

func TestCaptureStateMachine(t *testing.T) {
	g, _ := newTestGame(t)

	if g.Locked() {
		t.Fatal("game should start unlocked")
	}

	res := g.Step(withAction(core.ActionFocus), 0)
	if !hasEffect(res, core.EffectRequestCapture) {
		t.Fatal("focus should request capture")
	}
	res = g.Step(withAction(core.ActionFocus), 0)
	if len(res.Effects) != 0 {
		t.Error("second request while pending should be a no-op")
	}

	g.Step(withCapture(core.CaptureDenied), 0)
	if g.Locked() || g.startVisible {
		t.Error("denied capture should show the overlay")
	}

	res = g.Step(withAction(core.ActionFocus), 0)
	if !hasEffect(res, core.EffectRequestCapture) {
		t.Fatal("retry after denial should request capture again")
	}
	g.Step(withCapture(core.CaptureGranted), 0)
	if !g.Locked() || !g.startVisible {
		t.Error("granted capture should show the start control")
	}

	res = g.Step(withAction(core.ActionFocus), 0)
	if len(res.Effects) != 0 {
		t.Error("requesting capture while captured should be a no-op")
	}

	res = g.Step(withAction(core.ActionUnlock), 0)
	if !hasEffect(res, core.EffectReleaseCapture) {
		t.Error("unlock should request release")
	}
	if !g.Locked() {
		t.Error("release is observed, not assumed")
	}
	g.Step(withCapture(core.CaptureReleased), 0)
	if g.Locked() || g.startVisible {
		t.Error("observed release should resync to unlocked")
	}
}

func TestStartWhileUnlockedRequestsCapture(t *testing.T) {
	g, _ := newTestGame(t)

	res := g.Step(withAction(core.ActionConfirm), 0)
	if !hasEffect(res, core.EffectRequestCapture) {
		t.Error("start without capture should request capture")
	}
	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, expected Idle", g.Phase())
	}
}

func TestLockedPressOnStartZone(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)

	// Crosshair starts at the centre, on the start control.
	if !g.HotZones().Start {
		t.Fatal("start control should be hot at the centre")
	}
	g.Step(withAction(core.ActionFire), 0)
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, expected Running", g.Phase())
	}
	if !g.sess.Runtime.HasPlayedAimBefore {
		t.Error("starting a run should set HasPlayedAimBefore")
	}
	if g.StartLabel() != config.AimRestart {
		t.Errorf("StartLabel() = %q, expected Restart", g.StartLabel())
	}
}

func TestLockedPressOnUnlockZone(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	aimAt(g, core.Vec{X: 600, Y: 200})

	if !g.HotZones().Unlock {
		t.Error("unlock area should be hot")
	}
	res := g.Step(withAction(core.ActionFire), 0)
	if !hasEffect(res, core.EffectReleaseCapture) {
		t.Error("press on unlock area should release capture")
	}
}

func TestHitAndMiss(t *testing.T) {
	tests := []struct {
		name     string
		offset   float64
		expected int
	}{
		{"centre", 0, 1},
		{"inside radius", 13.9, 1},
		{"outside radius", 14.2, 0},
		{"far", 100, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGame(t)
			lock(g)
			target := g.addTarget(core.Vec{X: 100, Y: 100})
			aimAt(g, core.Vec{X: 100 + tc.offset, Y: 100})

			g.Step(withAction(core.ActionFire), 0)
			if g.score != tc.expected {
				t.Errorf("score = %d, expected %d", g.score, tc.expected)
			}
			remaining := len(g.Targets())
			if remaining != 1-tc.expected {
				t.Errorf("targets = %d, expected %d", remaining, 1-tc.expected)
			}
			if tc.expected == 1 && g.sched.Active(target.expiry) {
				t.Error("hit target's expiry should be cancelled")
			}
		})
	}
}

func TestHitCreditsFirstTarget(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	first := g.addTarget(core.Vec{X: 100, Y: 100})
	g.addTarget(core.Vec{X: 104, Y: 100})
	aimAt(g, core.Vec{X: 102, Y: 100})

	g.Step(withAction(core.ActionFire), 0)
	if g.score != 1 || len(g.Targets()) != 1 {
		t.Fatalf("score = %d targets = %d, expected one hit", g.score, len(g.Targets()))
	}
	if g.Targets()[0].ID == first.ID {
		t.Error("the older target should be credited first")
	}
}

func TestExpiryAndHitRace(t *testing.T) {
	life := config.DefaultSettings().Tier("normal").Lifetime()

	t.Run("expires unclicked", func(t *testing.T) {
		g, _ := newTestGame(t)
		lock(g)
		g.addTarget(core.Vec{X: 100, Y: 100})
		aimAt(g, core.Vec{X: 100, Y: 100})

		g.Step(frame(), life-time.Millisecond)
		if len(g.Targets()) != 1 {
			t.Fatal("target expired early")
		}
		g.Step(frame(), time.Millisecond)
		if len(g.Targets()) != 0 {
			t.Fatal("target should expire after its lifetime")
		}

		g.Step(withAction(core.ActionFire), 0)
		if g.score != 0 {
			t.Errorf("shot at an expired target scored %d", g.score)
		}
	})

	t.Run("hit then expiry time passes", func(t *testing.T) {
		g, _ := newTestGame(t)
		lock(g)
		g.addTarget(core.Vec{X: 100, Y: 100})
		aimAt(g, core.Vec{X: 100, Y: 100})

		// Shot and expiry in the same frame: input is applied first.
		g.Step(withAction(core.ActionFire), life)
		g.Step(withAction(core.ActionFire), life)
		if g.score != 1 {
			t.Errorf("score = %d, expected exactly one hit", g.score)
		}
		if g.sched.Pending() != 0 {
			t.Errorf("pending timers = %d, expected 0", g.sched.Pending())
		}
	})

	t.Run("expiry then shot", func(t *testing.T) {
		g, _ := newTestGame(t)
		lock(g)
		target := g.addTarget(core.Vec{X: 100, Y: 100})
		g.Step(frame(), life)
		if g.removeTarget(target.ID) {
			t.Error("removing an expired target must be a no-op")
		}
		if g.score != 0 {
			t.Errorf("score = %d, expected 0", g.score)
		}
	})
}

func TestRunTimesOutWithZeroScore(t *testing.T) {
	g, hl := newTestGame(t)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, expected Running", g.Phase())
	}

	for i := 0; i < 29; i++ {
		g.Step(frame(), time.Second)
	}
	if g.Phase() != PhaseRunning || g.TimeLeft() != 1 {
		t.Fatalf("after 29s: phase = %v timeLeft = %d", g.Phase(), g.TimeLeft())
	}

	res := g.Step(frame(), time.Second)
	if !res.State.Finished || res.State.Score != 0 {
		t.Errorf("after 30s: state = %+v, expected finished with score 0", res.State)
	}
	if g.sess.Best.Get(config.GameAim) != 0 {
		t.Errorf("best = %d, expected 0", g.sess.Best.Get(config.GameAim))
	}
	if hl.scores != 0 {
		t.Error("scores hook should not fire without a new best")
	}
	if len(hl.finished) != 1 || hl.finished[0] != 0 {
		t.Errorf("RunFinished calls = %v, expected [0]", hl.finished)
	}
	if g.sched.Pending() != 0 || len(g.Targets()) != 0 {
		t.Errorf("finished run left %d timers and %d targets", g.sched.Pending(), len(g.Targets()))
	}
	if !g.startVisible || g.Summary() != config.AimDone(0, 0) {
		t.Errorf("summary = %q startVisible = %v", g.Summary(), g.startVisible)
	}
}

func TestNewBestIsRecorded(t *testing.T) {
	g, hl := newTestGame(t)
	g.sess.Best.Record(config.GameAim, 1)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)

	for i := 0; i < 2; i++ {
		g.addTarget(core.Vec{X: 100, Y: 100})
		aimAt(g, core.Vec{X: 100, Y: 100})
		g.Step(withAction(core.ActionFire), 0)
	}
	g.Step(frame(), 30*time.Second)

	if g.sess.Best.Get(config.GameAim) != 2 {
		t.Errorf("best = %d, expected 2", g.sess.Best.Get(config.GameAim))
	}
	if hl.scores != 1 {
		t.Errorf("scores hook fired %d times, expected 1", hl.scores)
	}
}

func TestRestartResetsRun(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)
	g.addTarget(core.Vec{X: 100, Y: 100})
	aimAt(g, core.Vec{X: 100, Y: 100})
	g.Step(withAction(core.ActionFire), 0)
	g.Step(frame(), 30*time.Second)

	g.Step(withAction(core.ActionConfirm), 0)
	if g.Phase() != PhaseRunning || g.score != 0 || g.TimeLeft() != 30 || g.Summary() != "" {
		t.Errorf("restart: phase=%v score=%d time=%d summary=%q", g.Phase(), g.score, g.TimeLeft(), g.Summary())
	}

	// Start is ignored while running.
	g.Step(frame(), 5*time.Second)
	g.Step(withAction(core.ActionConfirm), 0)
	if g.TimeLeft() != 25 {
		t.Errorf("start during a run reset the clock: %d", g.TimeLeft())
	}
}

func TestSpawnRamp(t *testing.T) {
	g, _ := newTestGame(t)
	g.sess.SetDuration(180)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)

	// Normal tier: 700ms start, 10ms step, ramp every 5s.
	g.Step(frame(), 5*time.Second)
	if g.spawned != 7 || g.spawnEvery != 630*time.Millisecond {
		t.Errorf("after 5s: spawned=%d every=%v, expected 7 and 630ms", g.spawned, g.spawnEvery)
	}

	g.Step(frame(), 5*time.Second)
	if g.spawned != 14 || g.spawnEvery != 560*time.Millisecond {
		t.Errorf("after 10s: spawned=%d every=%v, expected 14 and 560ms", g.spawned, g.spawnEvery)
	}

	for i := 0; i < 170; i++ {
		g.Step(frame(), time.Second)
		if g.spawnEvery < 250*time.Millisecond {
			t.Fatalf("spawn interval %v dropped below the tier minimum", g.spawnEvery)
		}
	}
	if g.spawnEvery != 250*time.Millisecond {
		t.Errorf("spawn interval = %v, expected floor 250ms", g.spawnEvery)
	}
	if g.Phase() != PhaseFinished {
		t.Errorf("phase = %v, expected Finished", g.Phase())
	}
}

func TestSpawnedTargetsAvoidUnlock(t *testing.T) {
	g, _ := newTestGame(t)
	g.sess.SetDuration(60)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)

	arena := g.arenaGeom()
	for i := 0; i < 600; i++ {
		g.Step(frame(), 100*time.Millisecond)
		for _, tg := range g.Targets() {
			if arena.Restricted(tg.Pos) {
				t.Fatalf("target %d spawned in the unlock area at %v", tg.ID, tg.Pos)
			}
		}
	}
}

func TestDifficultyAffectsOnlyNewTargets(t *testing.T) {
	g, hl := newTestGame(t)
	lock(g)
	first := g.addTarget(core.Vec{X: 100, Y: 100})

	g.Step(withAction(core.ActionCycleDifficulty), 0)
	if g.sess.Sens.Difficulty != "hard" {
		t.Fatalf("difficulty = %q, expected hard", g.sess.Sens.Difficulty)
	}
	second := g.addTarget(core.Vec{X: 200, Y: 100})

	if first.Size != 24 || second.Size != 20 {
		t.Errorf("sizes = %v/%v, expected 24/20", first.Size, second.Size)
	}
	if hl.settings != 1 {
		t.Errorf("settings hook fired %d times, expected 1", hl.settings)
	}
}

func TestMotionScaling(t *testing.T) {
	g, _ := newTestGame(t)

	move := func(dx, dy float64) {
		in := frame()
		in.Move(dx, dy)
		g.Step(in, 0)
	}

	move(50, 0)
	if p := g.CrosshairPx(); p.X != 312 {
		t.Fatalf("motion while unlocked moved the crosshair to %v", p)
	}

	lock(g)
	move(10, -4)
	if p := g.CrosshairPx(); !near(p.X, 322) || !near(p.Y, 100) {
		t.Errorf("unscaled motion: crosshair = %v, expected (322, 100)", p)
	}

	g.sess.Sens.SetDPI(1600)
	move(10, 0)
	if p := g.CrosshairPx(); !near(p.X, 342) {
		t.Errorf("doubled motion: crosshair x = %v, expected 342", p.X)
	}

	g.sess.Sens.SetAxisSplit(true)
	g.sess.Sens.SetSensY(0.5)
	move(0, 10)
	if p := g.CrosshairPx(); !near(p.Y, 110) {
		t.Errorf("split motion: crosshair y = %v, expected 110", p.Y)
	}

	move(1e6, 1e6)
	if p := g.CrosshairPx(); p.X != g.arena.W || p.Y != g.arena.H {
		t.Errorf("crosshair escaped the arena: %v", p)
	}
}

func TestArrowKeysNudge(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	g.Step(withAction(core.ActionRight), 0)
	if p := g.CrosshairPx(); !near(p.X, 312+g.tuning.KeyNudge) {
		t.Errorf("crosshair x = %v after nudge", p.X)
	}
}

func TestResizeKeepsCrosshairFraction(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	in := frame()
	in.Move(100, 40)
	g.Step(in, 0)
	before := g.crosshair

	g.Resize(120, 30)
	if g.crosshair != before {
		t.Errorf("resize changed the crosshair fraction: %v -> %v", before, g.crosshair)
	}
	p := g.CrosshairPx()
	if !near(p.X, before.X*g.arena.W) || !near(p.Y, before.Y*g.arena.H) {
		t.Errorf("crosshair px = %v, expected fraction x new size", p)
	}

	g.Resize(80, 24)
	if g.crosshair != before {
		t.Error("resizing back drifted the crosshair")
	}
}

func TestUncapturedClickScoresDuringRun(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)
	g.Step(withCapture(core.CaptureReleased), 0)
	if g.Phase() != PhaseRunning {
		t.Fatal("release must not end the run")
	}

	g.addTarget(core.Vec{X: 100, Y: 100})
	in := frame()
	// Arena origin is one cell right and three rows down.
	in.Press(100+8, 100+3*16)
	res := g.Step(in, 0)

	if g.score != 1 {
		t.Errorf("score = %d, expected fallback hit", g.score)
	}
	if !hasEffect(res, core.EffectRequestCapture) {
		t.Error("uncaptured click should also request capture")
	}
}

func TestUncapturedClickOutsideArena(t *testing.T) {
	g, _ := newTestGame(t)
	in := frame()
	in.Press(10, 10) // header row
	res := g.Step(in, 0)
	if len(res.Effects) != 0 {
		t.Error("click outside the arena should be ignored")
	}
}

func TestSettingsKeys(t *testing.T) {
	g, hl := newTestGame(t)

	g.Step(withAction(core.ActionSensYUp), 0)
	if hl.settings != 0 {
		t.Error("sens Y without split should not change settings")
	}

	steps := []core.Action{
		core.ActionDPIUp,
		core.ActionSensUp,
		core.ActionToggleAxis,
		core.ActionSensYUp,
		core.ActionCycleProfile,
	}
	for _, a := range steps {
		g.Step(withAction(a), 0)
	}

	s := g.sess.Sens
	if s.DPI != 850 || !s.AxisSplit || s.SensX != 1.01 || s.SensY != 1.02 || s.GameID != "val" {
		t.Errorf("unexpected sensitivity %+v", s)
	}
	if hl.settings != len(steps) {
		t.Errorf("settings hook fired %d times, expected %d", hl.settings, len(steps))
	}
	if got := s.EDPI().String(); got != "859 / 867" {
		t.Errorf("eDPI = %q, expected 859 / 867", got)
	}
}

func TestDispose(t *testing.T) {
	g, hl := newTestGame(t)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)
	g.Step(frame(), 2*time.Second)

	g.Dispose()
	if !g.sched.Stopped() || g.sched.Pending() != 0 {
		t.Errorf("dispose left %d timers", g.sched.Pending())
	}

	g.Step(frame(), time.Minute)
	if len(hl.finished) != 0 {
		t.Error("a disposed game must not finish its run")
	}
	g.Dispose()
}

func TestStartAfterDispose(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	g.Dispose()

	g.Start()
	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, a disposed game must not start", g.Phase())
	}
}

func TestTargetsSliceIsNotReused(t *testing.T) {
	g, _ := newTestGame(t)
	lock(g)
	g.Step(withAction(core.ActionConfirm), 0)
	g.addTarget(core.Vec{X: 100, Y: 100})
	before := g.Targets()

	g.clearTargets()
	g.addTarget(core.Vec{X: 300, Y: 150})

	if before[0].Pos != (core.Vec{X: 100, Y: 100}) {
		t.Errorf("earlier Targets() result was overwritten: %+v", before[0].Pos)
	}
}

func TestFallbackWithoutCapture(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Capture = false
	g, hl := newTestGameWith(t, settings)

	if !g.Fallback() || !g.startVisible {
		t.Fatal("without capture the start control should be shown")
	}

	res := g.Step(withAction(core.ActionConfirm), 0)
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, expected Running without capture", g.Phase())
	}
	if len(res.Effects) != 0 {
		t.Errorf("fallback start should not request capture, got %v", res.Effects)
	}

	g.addTarget(core.Vec{X: 100, Y: 100})
	in := frame()
	in.Press(100+8, 100+3*16)
	res = g.Step(in, 0)
	if g.score != 1 {
		t.Errorf("score = %d, expected a click hit", g.score)
	}
	if len(res.Effects) != 0 {
		t.Error("fallback clicks should not request capture")
	}

	g.Step(frame(), 31*time.Second)
	if g.Phase() != PhaseFinished || len(hl.finished) != 1 {
		t.Fatalf("run should finish, phase = %v", g.Phase())
	}
	if !g.startVisible {
		t.Error("start control should return after the run")
	}

	// Clicking the start zone at the arena centre restarts.
	c := g.arenaGeom().Center()
	in = frame()
	in.Press(c.X+8, c.Y+3*16)
	g.Step(in, 0)
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v, start click should restart", g.Phase())
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t)
	scr := core.NewScreen(80, 24)
	// Keep the crosshair off the centred labels.
	aimAt(g, core.Vec{X: 100, Y: 40})

	g.Render(scr)
	out := scr.String()
	for _, want := range []string{config.AimTitle, config.AimLockOff, config.AimOverlay, config.AimUnlock, "eDPI 800"} {
		if !strings.Contains(out, want) {
			t.Errorf("unlocked render missing %q", want)
		}
	}

	lock(g)
	scr.Clear()
	g.Render(scr)
	out = scr.String()
	if !strings.Contains(out, "[ Start ]") || !strings.Contains(out, config.AimLockOn) {
		t.Errorf("locked render missing start control:\n%s", out)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
