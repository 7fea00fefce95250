package behavior

import "github.com/talgya/mimic/internal/action"

const (
	// Phase boundaries: observe, test, decide.
	observePhaseTicks = 30
	testPhaseTicks    = 60

	// hesitateCeiling forces a way out of indecision.
	hesitateCeiling = 120

	// Confidence gates for the decision phase.
	commitConfidence = 0.7
	runConfidence    = 0.8

	nervousJumpChance  = 0.1
	nervousPauseChance = 0.05

	hesitateDensityRisk = 3

	hesitateValuableRows = 3
	hesitateValuableCols = 5
)

// hesitateState is deliberate caution in three phases: stand and look, poke
// at the terrain with small taps, then decide whether to commit.
type hesitateState struct {
	ticks    int
	assessed bool
	safePath bool
}

func (s *hesitateState) ID() StateID { return StateHesitate }

func (s *hesitateState) Enter(ctx *Context) {
	s.ticks = 0
	s.assessed = false
	s.safePath = false
}

func (s *hesitateState) Exit(ctx *Context) {}

func (s *hesitateState) Act(ctx *Context) action.Set {
	s.ticks++
	var set action.Set

	switch {
	case s.ticks < observePhaseTicks:
		// Observation: stand still and watch.

	case s.ticks < testPhaseTicks:
		// Small test movements: brief rightward taps, no running.
		if s.ticks%20 < 10 {
			set.Right = true
		}
		if s.ticks%30 == 25 {
			set.Jump = true
		}

	default:
		s.assessed = true
		risky := riskyAhead(ctx.Terrain, ctx.Enemies) ||
			obstacleDensity(ctx.Terrain) >= hesitateDensityRisk

		if !risky || ctx.Emotion.Confidence() > commitConfidence {
			set.Right = true
			if ctx.Emotion.Confidence() > runConfidence {
				set.Speed = true
			}
			if ctx.Terrain.SolidAhead() {
				set.Jump = true
			}
			s.safePath = true
		} else {
			// Still too risky: cautious shuffle with nervous hops.
			if s.ticks%40 < 20 {
				set.Right = true
			}
			if ctx.Rand.Float64() < nervousJumpChance {
				set.Jump = true
			}
		}
	}

	// Jitter pause: every so often the hands just come off the controls.
	if ctx.Rand.Float64() < nervousPauseChance {
		set.Clear()
	}

	return set
}

func (s *hesitateState) Next(ctx *Context) (StateID, bool) {
	if ctx.Enemies.EnemyAdjacent() {
		return StateFlee, true
	}
	if s.assessed && s.safePath {
		if needsComplexJump(ctx.Terrain) {
			return StateJump, true
		}
		if ctx.Terrain.HasPowerBlock(hesitateValuableRows, hesitateValuableCols) {
			return StateCollect, true
		}
		return StateExplore, true
	}
	if s.ticks > hesitateCeiling {
		if ctx.StuckCounter > 0 {
			return StateStuck, true
		}
		return StateJump, true
	}
	return 0, false
}
