// Package registry maps game mode IDs to factories. Modes register from
// init, so the CLI and the menu discover them by importing the game package.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

// Game is what the platform drives: pure simulation without terminal,
// audio or storage access. The shell maps keys to input frames, calls Step
// once per tick and turns the returned events into side effects.
type Game interface {
	// ID is the stable mode key used by the CLI and the score table.
	ID() string
	Title() string

	// Reset starts a fresh round for the given screen.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick and reports what happened during it.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new game instance.
type Factory func() Game

type entry struct {
	info GameInfo
	new  Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode. It panics on an empty or duplicate id, or when the
// factory builds a game reporting a different ID.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: empty id or nil factory")
	}
	probe := f()
	if probe.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds %q", id, probe.ID()))
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: probe.Title()}, new: f}
}

// List returns every mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a fresh game for id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.new(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
