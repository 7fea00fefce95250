package behavior

import "github.com/talgya/mimic/internal/action"

const (
	// fleePanicTicks is the initial erratic phase length.
	fleePanicTicks = 30
	// fleeMinDwell is the minimum time fleeing before the escaped flag can
	// release the state.
	fleeMinDwell = 60
	// fleeCeiling forces an exit when fleeing stops working.
	fleeCeiling = 200

	fleeForwardChance   = 0.7
	fleePanicJumpChance = 0.4
	fleeNervousJump     = 0.2
	fleeErrorChance     = 0.3

	fleeEnemyScanDepth = 3
)

// fleeState escapes immediate threats in two phases: blind panic, then a
// controlled sprint that hops over anything still in the way.
type fleeState struct {
	ticks   int
	escaped bool
}

func (s *fleeState) ID() StateID { return StateFlee }

func (s *fleeState) Enter(ctx *Context) {
	s.ticks = 0
	s.escaped = false
}

func (s *fleeState) Exit(ctx *Context) {}

func (s *fleeState) Act(ctx *Context) action.Set {
	var set action.Set

	if s.ticks < fleePanicTicks {
		// Erratic phase: mostly sprint, sometimes freeze, jump at random.
		if ctx.Rand.Float64() < fleeForwardChance {
			set.Right = true
			set.Speed = true
		}
		if ctx.Rand.Float64() < fleePanicJumpChance {
			set.Jump = true
		}
	} else {
		set.Right = true
		set.Speed = true
		if ctx.Enemies.EnemiesInCone(fleeEnemyScanDepth) > 0 {
			// Jump over whatever is directly ahead.
			set.Jump = true
		} else if ctx.Rand.Float64() < fleeNervousJump {
			set.Jump = true
		}

		// Panic-adjacent input errors persist into the calmer phase.
		if ctx.Emotion.ShouldMakeMistake() && ctx.Rand.Float64() < fleeErrorChance {
			if ctx.Rand.Float64() < 0.5 {
				set.Right = false
			} else {
				set.Speed = false
			}
		}
	}

	s.ticks++
	if !ctx.Enemies.EnemyAdjacent() {
		s.escaped = true
	}
	return set
}

func (s *fleeState) Next(ctx *Context) (StateID, bool) {
	// A wall too tall to clear blocks the escape route entirely.
	if ctx.Terrain.WallHeight() >= blockingWallHeight {
		return StateJump, true
	}
	if s.escaped && s.ticks > fleeMinDwell && !ctx.Enemies.EnemyAdjacent() {
		return StateExplore, true
	}
	if s.ticks > fleeCeiling {
		if ctx.StuckCounter > 0 {
			return StateStuck, true
		}
		return StateJump, true
	}
	return 0, false
}
