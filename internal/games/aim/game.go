// Package aim implements Aim Dots, a reflex trainer: fading dots spawn in
// the arena and the player shoots them with a crosshair driven by relative
// pointer motion scaled like a shooter's mouse sensitivity.
package aim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/registry"
	"github.com/vovakirdan/focus-arcade/internal/sched"
	"github.com/vovakirdan/focus-arcade/internal/state"
)

// Phase is the run state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseFinished:
		return "Finished"
	default:
		return "Idle"
	}
}

// Game implements the aim game.
type Game struct {
	deps   registry.Deps
	sess   *state.Session
	tuning config.AimTuning
	sched  *sched.Scheduler
	rng    *rand.Rand

	cellW, cellH float64
	layout       layout
	arena        core.Size // arena in pixels

	// Pointer capture.
	locked   bool
	pending  bool // capture requested, answer not yet received
	fallback bool // capture unavailable, runs are played by clicking

	// Run.
	phase        Phase
	score        int
	timeLeft     int
	crosshair    core.Vec // normalized [0,1]x[0,1]
	targets      []*Target
	nextTargetID int
	spawned      int
	startVisible bool
	summary      string

	runTier    config.Difficulty
	spawnEvery time.Duration

	countdown sched.Handle
	spawnTmr  sched.Handle
	ramp      sched.Handle

	effects  []core.Effect
	disposed bool
}

// New creates an aim game bound to the session in deps.
func New(deps registry.Deps) *Game {
	seed := deps.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cw, ch := deps.Config.CellPx()

	g := &Game{
		deps:      deps,
		sess:      deps.Session,
		tuning:    deps.Session.Settings.Aim,
		sched:     sched.New(),
		rng:       rand.New(rand.NewSource(seed)),
		cellW:     cw,
		cellH:     ch,
		crosshair: core.Vec{X: 0.5, Y: 0.5},
		timeLeft:  deps.Session.Duration(),
		fallback:  !deps.Session.Settings.Capture,
	}
	g.startVisible = g.fallback
	g.Resize(deps.Config.ScreenW, deps.Config.ScreenH)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() config.GameID {
	return config.GameAim
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return config.AimTitle
}

// Step applies the frame's input, then advances the game clock by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.disposed {
		return core.StepResult{State: g.State()}
	}

	g.applyCapture(in.Capture)
	g.applySettings(in)

	switch {
	case in.Has(core.ActionFocus):
		g.requestCapture()
	case in.Has(core.ActionUnlock):
		g.releaseCapture()
	case in.Has(core.ActionConfirm):
		g.Start()
	}

	if g.locked {
		g.nudge(in)
	}

	for _, ev := range in.Pointer {
		switch ev.Kind {
		case core.PointerMove:
			if g.locked {
				g.moveCrosshair(ev.Delta)
			}
		case core.PointerPress:
			g.press(ev.Pos)
		}
	}
	if in.Has(core.ActionFire) {
		switch {
		case g.locked:
			g.lockedPress()
		case g.fallback:
			g.Start()
		default:
			g.requestCapture()
		}
	}

	if dt > 0 {
		g.sched.Advance(dt)
	}

	effects := g.effects
	g.effects = nil
	return core.StepResult{State: g.State(), Effects: effects}
}

// applyCapture reacts to the platform's answer or an observed release.
// The badge, overlay and start control always follow the observed state.
func (g *Game) applyCapture(sig core.CaptureSignal) {
	switch sig {
	case core.CaptureGranted:
		g.locked = true
		g.pending = false
		if g.phase != PhaseRunning {
			g.startVisible = true
		}
	case core.CaptureDenied, core.CaptureReleased:
		g.locked = false
		g.pending = false
		g.startVisible = g.fallback && g.phase != PhaseRunning
	}
}

// requestCapture asks the platform for pointer capture. No-op while already
// captured or while a request is outstanding.
func (g *Game) requestCapture() {
	if g.locked || g.pending {
		return
	}
	g.pending = true
	g.effects = append(g.effects, core.EffectRequestCapture)
}

// releaseCapture asks the platform to release the pointer. The state only
// changes once the release is observed.
func (g *Game) releaseCapture() {
	if !g.locked {
		return
	}
	g.effects = append(g.effects, core.EffectReleaseCapture)
}

// applySettings handles the sensitivity and difficulty keys. They work in
// every phase and each change is persisted through the settings hook.
func (g *Game) applySettings(in core.InputFrame) {
	s := &g.sess.Sens
	changed := true
	switch {
	case in.Has(core.ActionDPIDown):
		s.StepDPI(-1)
	case in.Has(core.ActionDPIUp):
		s.StepDPI(1)
	case in.Has(core.ActionSensDown):
		s.StepSens(-1)
	case in.Has(core.ActionSensUp):
		s.StepSens(1)
	case in.Has(core.ActionSensYDown) && s.AxisSplit:
		s.StepSensY(-1)
	case in.Has(core.ActionSensYUp) && s.AxisSplit:
		s.StepSensY(1)
	case in.Has(core.ActionToggleAxis):
		s.SetAxisSplit(!s.AxisSplit)
	case in.Has(core.ActionCycleDifficulty):
		s.CycleDifficulty(g.sess.Settings)
	case in.Has(core.ActionCycleProfile):
		s.CycleProfile()
	default:
		changed = false
	}
	if changed {
		g.deps.Hooks.NotifySettings()
	}
}

// Start begins a run. Without capture it requests capture instead, unless
// capture is unavailable. Ignored while a run is in progress or after
// Dispose.
func (g *Game) Start() {
	if g.disposed || g.phase == PhaseRunning {
		return
	}
	if !g.locked && !g.fallback {
		g.requestCapture()
		return
	}

	g.phase = PhaseRunning
	g.sess.Runtime.HasPlayedAimBefore = true
	g.startVisible = false
	g.summary = ""
	g.clearTargets()
	g.score = 0
	g.timeLeft = g.sess.Duration()

	g.runTier = g.sess.Difficulty()
	g.spawnEvery = g.runTier.SpawnStart()

	g.countdown = g.sched.Every(time.Second, g.tick)
	g.spawnTmr = g.sched.Every(g.spawnEvery, g.spawnTick)
	g.ramp = g.sched.Every(g.tuning.RampEvery(), g.rampTick)
}

// tick is the one-second countdown.
func (g *Game) tick() {
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.finish()
	}
}

// spawnTick creates one target and shortens the cadence for the next ramp.
func (g *Game) spawnTick() {
	g.spawn()
	g.spawned++
	next := g.spawnEvery - g.tuning.SpawnStep()
	if floor := g.runTier.SpawnMin(); next < floor {
		next = floor
	}
	g.spawnEvery = next
}

// rampTick restarts the spawn cadence at the decayed interval.
func (g *Game) rampTick() {
	g.sched.Cancel(g.spawnTmr)
	every := g.spawnEvery
	if floor := g.runTier.SpawnMin(); every < floor {
		every = floor
	}
	g.spawnTmr = g.sched.Every(every, g.spawnTick)
}

// finish ends the run, cancels its timers and clears the arena.
func (g *Game) finish() {
	g.phase = PhaseFinished
	g.sched.Cancel(g.countdown)
	g.sched.Cancel(g.spawnTmr)
	g.sched.Cancel(g.ramp)
	g.countdown, g.spawnTmr, g.ramp = 0, 0, 0
	g.clearTargets()

	if g.sess.Best.Record(config.GameAim, g.score) {
		g.deps.Hooks.NotifyScores()
	}
	g.deps.Hooks.NotifyFinished(config.GameAim, g.score)
	g.summary = config.AimDone(g.score, g.sess.Best.Get(config.GameAim))

	if g.locked || g.fallback {
		g.startVisible = true
	}
}

// press handles a primary button press at an absolute position in the game
// area. While captured the position is ignored and the crosshair is used.
func (g *Game) press(pos core.Vec) {
	if g.locked {
		g.lockedPress()
		return
	}

	p, ok := g.toArena(pos)
	if !ok {
		return
	}
	// Uncaptured clicks still score while a run is in progress.
	if g.phase == PhaseRunning {
		g.fireShot(p)
	}
	if !g.fallback {
		g.requestCapture()
		return
	}
	if g.startVisible && g.arenaGeom().InStartZone(p) {
		g.Start()
	}
}

// lockedPress is a shot at the crosshair. The start control and the unlock
// area take precedence over targets.
func (g *Game) lockedPress() {
	arena := g.arenaGeom()
	p := g.CrosshairPx()

	if g.startVisible && arena.InStartZone(p) {
		g.Start()
		return
	}
	if arena.InUnlockZone(p) {
		g.releaseCapture()
		return
	}
	g.fireShot(p)
}

// moveCrosshair integrates a raw relative delta scaled by sensitivity.
func (g *Game) moveCrosshair(delta core.Vec) {
	t := g.tuning
	sx, sy := g.sess.Sens.MotionScale(t.BaselineEDPI, t.ScaleMin, t.ScaleMax)
	w, h := g.arena.W, g.arena.H

	x := core.ClampF(g.crosshair.X*w+delta.X*sx, 0, w)
	y := core.ClampF(g.crosshair.Y*h+delta.Y*sy, 0, h)

	g.crosshair = core.Vec{X: 0.5, Y: 0.5}
	if w > 0 {
		g.crosshair.X = x / w
	}
	if h > 0 {
		g.crosshair.Y = y / h
	}
}

// nudge turns arrow keys into raw deltas.
func (g *Game) nudge(in core.InputFrame) {
	step := g.tuning.KeyNudge
	var d core.Vec
	if in.Has(core.ActionLeft) {
		d.X -= step
	}
	if in.Has(core.ActionRight) {
		d.X += step
	}
	if in.Has(core.ActionUp) {
		d.Y -= step
	}
	if in.Has(core.ActionDown) {
		d.Y += step
	}
	if d != (core.Vec{}) {
		g.moveCrosshair(d)
	}
}

// CrosshairPx returns the crosshair position in arena pixels.
func (g *Game) CrosshairPx() core.Vec {
	return core.Vec{X: g.crosshair.X * g.arena.W, Y: g.crosshair.Y * g.arena.H}
}

// Hot reports which interactive areas the crosshair is over, for highlighting.
type Hot struct {
	Start   bool
	Overlay bool
	Unlock  bool
}

// HotZones derives the highlight state from the crosshair position.
func (g *Game) HotZones() Hot {
	arena := g.arenaGeom()
	p := g.CrosshairPx()
	inStart := arena.InStartZone(p)
	return Hot{
		Start:   g.locked && g.startVisible && inStart,
		Overlay: !g.locked && !g.fallback && inStart,
		Unlock:  arena.InUnlockZone(p),
	}
}

// Fallback reports whether capture is unavailable and runs are played by
// clicking.
func (g *Game) Fallback() bool {
	return g.fallback
}

// Locked reports whether the pointer is captured.
func (g *Game) Locked() bool {
	return g.locked
}

// Phase returns the run state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Targets returns the live targets in creation order.
func (g *Game) Targets() []*Target {
	return g.targets
}

// TimeLeft returns the remaining seconds of the current run.
func (g *Game) TimeLeft() int {
	return g.timeLeft
}

// Summary returns the message shown after a run.
func (g *Game) Summary() string {
	return g.summary
}

// StartLabel returns the start control's label.
func (g *Game) StartLabel() string {
	if g.sess.Runtime.HasPlayedAimBefore {
		return config.AimRestart
	}
	return config.AimStart
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Running:  g.phase == PhaseRunning,
		Finished: g.phase == PhaseFinished,
	}
}

// Dispose cancels every timer and drops the targets.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.sched.Stop()
	g.targets = nil
	g.phase = PhaseIdle
}

func (g *Game) arenaGeom() Arena {
	return Arena{Size: g.arena, Tuning: g.tuning}
}

// Register the game with the registry
func init() {
	registry.Register(registry.GameInfo{
		ID:          config.GameAim,
		Title:       config.AimTitle,
		Description: config.MenuAimDesc,
	}, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}
