// Package behavior implements the per-tick decision pipeline: a controller
// owning six behavior states, three interrupt layers (panic, hesitation,
// mistake injection), and the emotion model that modulates all of them.
package behavior

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/entropy"
	"github.com/talgya/mimic/internal/grid"
)

// StateID identifies one member of the closed behavior set. Exactly one is
// active at any time.
type StateID uint8

const (
	StateExplore StateID = iota
	StateJump
	StateCollect
	StateFlee
	StateStuck
	StateHesitate
	numStates
)

var stateNames = [numStates]string{"explore", "jump", "collect", "flee", "stuck", "hesitate"}

func (id StateID) String() string {
	if id < numStates {
		return stateNames[id]
	}
	return "unknown"
}

// EmotionReader is the read-only view of the emotion model handed to states.
// The draw methods consult the random stream but never mutate traits; only
// the controller holds the mutable model.
type EmotionReader interface {
	Confidence() float64
	Curiosity() float64
	ShouldHesitate() bool
	ShouldMakeMistake() bool
	MistakeSeverity() float64
	ShouldExploreForCoins() bool
}

// Context is the read-only tick view handed to every state call. States may
// not reach past it into controller internals.
type Context struct {
	Terrain grid.Grid
	Enemies grid.Grid
	X       float64

	Emotion EmotionReader
	Rand    entropy.Source

	// StuckCounter is the controller's no-progress streak counter,
	// exposed read-only.
	StuckCounter int
}

// state is the capability contract every behavior variant implements. Each
// state owns its private counters, reset exclusively in Enter.
type state interface {
	ID() StateID

	// Act analyzes the grids and synthesizes this tick's action set.
	Act(ctx *Context) action.Set

	// Next evaluates the state's own transition predicate. ok is false to
	// remain in this state.
	Next(ctx *Context) (next StateID, ok bool)

	// Enter resets the state's private counters on activation.
	Enter(ctx *Context)

	// Exit discards in-flight commitments when the state is left.
	Exit(ctx *Context)
}
