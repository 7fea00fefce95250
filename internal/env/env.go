// Package env defines the environment accessor contract: the read-only
// per-tick observations the decision core consumes and the action channel it
// emits into. The physics simulation behind it is an external collaborator;
// this package also ships a synthetic world so the repo is runnable on its
// own.
package env

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/emotion"
	"github.com/talgya/mimic/internal/grid"
)

// Snapshot is one tick's view of the world. Both grids are fresh snapshots
// valid only for this tick; no identity persists between ticks.
type Snapshot struct {
	Terrain grid.Grid
	Enemies grid.Grid
	X       float64
	Signal  emotion.Signal
}

// Env is what the decision core needs from the environment: an observation
// per tick, and a sink for the action set it produces.
type Env interface {
	Observe() Snapshot
	Apply(set action.Set)
}
