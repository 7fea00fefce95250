package behavior

import (
	"math"

	"github.com/talgya/mimic/internal/action"
)

const (
	// stuckEpsilon is the per-tick displacement that counts as movement at
	// all; anything above it resets the stall timer immediately.
	stuckEpsilon = 0.1
	// stuckBreakout is the cumulative displacement from the entry position
	// that counts as a real escape. One tick at run speed reaches it.
	stuckBreakout = 1.0

	// attemptCadence switches strategy every this many ticks.
	attemptCadence = 30

	// Frustration escalations.
	frustrationTicks = 60
	missedJumpChance = 0.1
	giveUpTicks      = 180
	giveUpChance     = 0.05

	// Exit thresholds.
	stuckHesitateTicks = 240
	stuckMaxAttempts   = 8
	stuckCeiling       = 400

	stuckCollectibleRows  = 2
	stuckCollectibleDepth = 4
	stuckCollectibleMin   = 2
)

// stuckState cycles through escalating attempt strategies when progress
// stalls: plain jump, run+jump, a slow deliberate approach, then flailing.
type stuckState struct {
	ticks    int
	attempts int
	strategy int
	entryX   float64
	lastX    float64
}

func (s *stuckState) ID() StateID { return StateStuck }

func (s *stuckState) Enter(ctx *Context) {
	s.ticks = 0
	s.attempts = 0
	s.strategy = 0
	s.entryX = ctx.X
	s.lastX = ctx.X
}

func (s *stuckState) Exit(ctx *Context) {}

func (s *stuckState) Act(ctx *Context) action.Set {
	// Any movement at all: reset the stall clock and just run.
	if math.Abs(ctx.X-s.lastX) > stuckEpsilon {
		s.lastX = ctx.X
		s.ticks = 0
		return action.Set{Right: true, Speed: true}
	}

	s.ticks++
	if s.ticks%attemptCadence == 0 {
		s.attempts++
		s.strategy = s.attempts % 4
	}

	var set action.Set
	switch s.strategy {
	case 0: // plain jump
		set.Right = true
		set.Jump = true
	case 1: // run and jump, trying harder
		set.Right = true
		set.Jump = true
		set.Speed = true
	case 2: // slow cautious approach with a delayed jump
		set.Right = s.ticks%60 < 30
		if s.ticks%40 == 20 {
			set.Jump = true
		}
	case 3: // frustrated flailing
		set.Right = ctx.Rand.Float64() < 0.7
		if ctx.Rand.Float64() < 0.5 {
			set.Jump = true
		}
		if ctx.Rand.Float64() < 0.3 {
			set.Speed = true
		}
	}

	// Frustration makes the timing worse, not better.
	if s.ticks > frustrationTicks && set.Jump && ctx.Rand.Float64() < missedJumpChance {
		set.Jump = false
	}

	// After a long stall, sometimes just stop for a moment.
	if s.ticks > giveUpTicks && ctx.Rand.Float64() < giveUpChance {
		set.Clear()
	}

	return set
}

func (s *stuckState) Next(ctx *Context) (StateID, bool) {
	if math.Abs(ctx.X-s.entryX) >= stuckBreakout {
		if ctx.Terrain.CountCollectibles(stuckCollectibleRows, stuckCollectibleDepth) >= stuckCollectibleMin {
			return StateCollect, true
		}
		return StateExplore, true
	}
	if ctx.Enemies.EnemyAdjacent() {
		return StateFlee, true
	}
	if s.ticks > stuckHesitateTicks && s.attempts > stuckMaxAttempts {
		return StateHesitate, true
	}
	if s.ticks > stuckCeiling {
		return StateExplore, true
	}
	return 0, false
}
