// Package registry maps game IDs to factories. Game packages register
// themselves from init, so hosts discover them with a blank import.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cubefall/internal/core"
)

// Game is what a host drives: fixed-rate steps in, a character screen out.
// Implementations hold no UI code.
type Game interface {
	// ID is the stable identifier used on the command line and in score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Description is a one-line summary for listings.
	Description() string

	// Reset starts over with the given runtime config.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick of 1/TickRate seconds, applying the frame's actions first.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current summary.
	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without starting over. Hosts reset games that do not implement it.
type Resizer interface {
	Resize(width, height int)
}

// Tunable is implemented by games that accept a named difficulty preset
// per instance, so concurrent sessions can pick different ones.
type Tunable interface {
	SetPreset(name string) error
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	g := f()
	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: g.Title(), Description: g.Description()}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Info returns the metadata for id.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
