// Package memory implements Sequence Memory: a growing sequence of tiles is
// flashed on a 3x3 grid and the player repeats it, one more tile per round.
package memory

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/registry"
	"github.com/vovakirdan/focus-arcade/internal/sched"
	"github.com/vovakirdan/focus-arcade/internal/state"
)

// Phase is the game state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlayback
	PhaseAwaitingInput
	PhaseRoundAdvancing
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlayback:
		return "Playback"
	case PhaseAwaitingInput:
		return "AwaitingInput"
	case PhaseRoundAdvancing:
		return "RoundAdvancing"
	case PhaseFinished:
		return "Finished"
	default:
		return "Idle"
	}
}

// Outcome is how a finished run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeMistake
	OutcomeTimeUp
)

// Game implements the sequence memory game.
type Game struct {
	deps   registry.Deps
	sess   *state.Session
	tuning config.MemoryTuning
	sched  *sched.Scheduler
	rng    *rand.Rand

	cellW, cellH float64
	layout       layout

	phase    Phase
	outcome  Outcome
	sequence []int
	cursor   int
	round    int
	timeLeft int
	summary  string

	lit   [config.TileCount]bool
	flash [config.TileCount]sched.Handle

	countdown sched.Handle
	playback  sched.Handle
	advance   sched.Handle

	disposed bool
}

// New creates a sequence game bound to the session in deps.
func New(deps registry.Deps) *Game {
	seed := deps.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cw, ch := deps.Config.CellPx()

	g := &Game{
		deps:     deps,
		sess:     deps.Session,
		tuning:   deps.Session.Settings.Memory,
		sched:    sched.New(),
		rng:      rand.New(rand.NewSource(seed)),
		cellW:    cw,
		cellH:    ch,
		timeLeft: deps.Session.Duration(),
	}
	g.Resize(deps.Config.ScreenW, deps.Config.ScreenH)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() config.GameID {
	return config.GameMemory
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return config.MemoryTitle
}

// Step applies the frame's input, then advances the game clock by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.disposed {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.Start()
	}
	for _, i := range in.Taps {
		g.Tap(i)
	}
	for _, ev := range in.Pointer {
		if ev.Kind != core.PointerPress {
			continue
		}
		if g.layout.start.Contains(g.cellAt(ev.Pos)) {
			g.Start()
			continue
		}
		if i, ok := g.TileAt(ev.Pos); ok {
			g.Tap(i)
		}
	}

	if dt > 0 {
		g.sched.Advance(dt)
	}
	return core.StepResult{State: g.State()}
}

// Start begins a run from Idle or Finished. Ignored otherwise.
func (g *Game) Start() {
	if g.phase != PhaseIdle && g.phase != PhaseFinished {
		return
	}

	g.sequence = g.sequence[:0]
	g.cursor = 0
	g.round = 0
	g.outcome = OutcomeNone
	g.summary = ""
	g.timeLeft = g.sess.Duration()

	g.sched.Cancel(g.countdown)
	g.countdown = g.sched.Every(time.Second, g.tick)
	g.nextRound()
}

// tick is the one-second countdown. Running out ends the run in any phase.
func (g *Game) tick() {
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.finish(OutcomeTimeUp)
	}
}

// nextRound appends one random tile and replays the whole sequence.
func (g *Game) nextRound() {
	g.advance = 0
	g.round++
	g.sequence = append(g.sequence, g.rng.Intn(config.TileCount))
	g.phase = PhasePlayback
	g.cursor = 0
	g.playStep(0)
}

// playStep flashes sequence[i] and schedules the next step. After the last
// step's delay the game accepts input.
func (g *Game) playStep(i int) {
	if i >= len(g.sequence) {
		g.playback = 0
		g.phase = PhaseAwaitingInput
		g.cursor = 0
		return
	}
	g.flashTile(g.sequence[i])
	g.playback = g.sched.After(g.tuning.Step(), func() {
		g.playStep(i + 1)
	})
}

// Tap handles a tile press. Returns false when input is not accepted.
func (g *Game) Tap(i int) bool {
	if g.phase != PhaseAwaitingInput || i < 0 || i >= config.TileCount {
		return false
	}

	g.flashTile(i)
	if i != g.sequence[g.cursor] {
		g.finish(OutcomeMistake)
		return true
	}

	g.cursor++
	if g.cursor >= len(g.sequence) {
		g.phase = PhaseRoundAdvancing
		g.advance = g.sched.After(g.tuning.Advance(), g.nextRound)
	}
	return true
}

// flashTile lights tile i and schedules it to go dark. A repeated flash
// restarts the timer.
func (g *Game) flashTile(i int) {
	g.sched.Cancel(g.flash[i])
	g.lit[i] = true
	g.flash[i] = g.sched.After(g.tuning.Flash(), func() {
		g.lit[i] = false
		g.flash[i] = 0
	})
}

// finish ends the run and cancels its timers. Running flashes are left to
// fade so the last tap stays visible.
func (g *Game) finish(outcome Outcome) {
	if g.phase == PhaseFinished {
		return
	}
	g.phase = PhaseFinished
	g.outcome = outcome

	g.sched.Cancel(g.countdown)
	g.sched.Cancel(g.playback)
	g.sched.Cancel(g.advance)
	g.countdown, g.playback, g.advance = 0, 0, 0

	if g.sess.Best.Record(config.GameMemory, g.round) {
		g.deps.Hooks.NotifyScores()
	}
	g.deps.Hooks.NotifyFinished(config.GameMemory, g.round)

	best := g.sess.Best.Get(config.GameMemory)
	if outcome == OutcomeMistake {
		g.summary = config.MemoryOops(g.round, best)
	} else {
		g.summary = config.MemoryTimeUp(g.round, best)
	}
}

// Phase returns the game state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Outcome returns how the last run ended.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Sequence returns a copy of the current sequence.
func (g *Game) Sequence() []int {
	return append([]int(nil), g.sequence...)
}

// Round returns the current round, 0 before the first start.
func (g *Game) Round() int {
	return g.round
}

// Cursor returns the index of the next expected tile.
func (g *Game) Cursor() int {
	return g.cursor
}

// TimeLeft returns the remaining seconds.
func (g *Game) TimeLeft() int {
	return g.timeLeft
}

// Lit reports whether tile i is currently flashing.
func (g *Game) Lit(i int) bool {
	if i < 0 || i >= config.TileCount {
		return false
	}
	return g.lit[i]
}

// Accepting reports whether taps are accepted.
func (g *Game) Accepting() bool {
	return g.phase == PhaseAwaitingInput
}

// Summary returns the message shown after a run.
func (g *Game) Summary() string {
	return g.summary
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.round,
		Running:  g.phase != PhaseIdle && g.phase != PhaseFinished,
		Finished: g.phase == PhaseFinished,
	}
}

// Dispose cancels every pending flash, playback step and countdown.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.sched.Stop()
}

// Register the game with the registry
func init() {
	registry.Register(registry.GameInfo{
		ID:          config.GameMemory,
		Title:       config.MemoryTitle,
		Description: config.MenuMemoryDesc,
	}, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}
