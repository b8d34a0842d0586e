// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the shell
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/state"
)

// Game is the interface every mini-game implements.
// Games contain pure logic with no Bubble Tea dependency. They own their
// timers and release them in Dispose.
type Game interface {
	// ID returns the game identifier, also used as the score key.
	ID() config.GameID

	// Title returns a human-readable name for display.
	Title() string

	// Step applies one frame of input and then advances the game's clock
	// by dt. Returns the game state and any effects the platform must run.
	Step(in core.InputFrame, dt time.Duration) core.StepResult

	// Resize sets the size of the game area in cells.
	Resize(w, h int)

	// Render draws the game area into dst. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState

	// Dispose cancels every timer. The instance must not be used afterwards.
	Dispose()
}

// Hooks are the callbacks a game uses to reach the shell.
type Hooks struct {
	ScoresUpdated   func()                            // best scores changed
	SettingsUpdated func()                            // sensitivity record changed
	RunFinished     func(id config.GameID, score int) // a run ended
}

// NotifyScores calls ScoresUpdated if set.
func (h Hooks) NotifyScores() {
	if h.ScoresUpdated != nil {
		h.ScoresUpdated()
	}
}

// NotifySettings calls SettingsUpdated if set.
func (h Hooks) NotifySettings() {
	if h.SettingsUpdated != nil {
		h.SettingsUpdated()
	}
}

// NotifyFinished calls RunFinished if set.
func (h Hooks) NotifyFinished(id config.GameID, score int) {
	if h.RunFinished != nil {
		h.RunFinished(id, score)
	}
}

// Deps is everything a game instance needs from its surroundings.
type Deps struct {
	Session *state.Session
	Config  core.RuntimeConfig
	Hooks   Hooks
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          config.GameID
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func(deps Deps) Game

var (
	factories = make(map[config.GameID]Factory)
	infos     = make(map[config.GameID]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata of a registered game.
func Info(id config.GameID) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id config.GameID, deps Deps) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(deps), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id config.GameID) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
