package behavior

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/entropy"
	"github.com/talgya/mimic/internal/grid"
)

// Jump timing. A committed jump holds the button for a computed duration
// instead of re-deciding every tick, the way a player holds the button
// through a maneuver rather than re-aiming mid-air.
const (
	jumpBaseTicks = 8
	minJumpTicks  = 5
	maxJumpTicks  = 20

	jumpTimingJitter   = 2 // symmetric, always applied
	mistimedJumpJitter = 5 // extra symmetric error on a mistake

	gapDurationFactor  = 2
	wallDurationFactor = 3

	overcorrectChance = 0.1

	// multiObstacleCols/Count: more than this many obstacle columns in the
	// next several keeps the state committed to jumping.
	multiObstacleCols  = 5
	multiObstacleCount = 2
)

// jumpState navigates obstacles and gaps with committed, human-timed jumps.
type jumpState struct {
	jumpTicks int
	committed bool
}

func (s *jumpState) ID() StateID { return StateJump }

func (s *jumpState) Enter(ctx *Context) {
	s.jumpTicks = 0
	s.committed = false
}

// Exit discards any in-flight commitment; a new state never inherits it.
func (s *jumpState) Exit(ctx *Context) {
	s.jumpTicks = 0
	s.committed = false
}

func (s *jumpState) Act(ctx *Context) action.Set {
	var set action.Set
	set.Right = true
	set.Speed = true

	if s.committed || shouldStartJump(ctx.Terrain) {
		if !s.committed {
			s.committed = true
			s.jumpTicks = jumpDuration(ctx.Terrain, ctx.Rand)
			if ctx.Emotion.ShouldMakeMistake() {
				s.jumpTicks += entropy.Jitter(ctx.Rand, mistimedJumpJitter)
				s.jumpTicks = clampInt(s.jumpTicks, minJumpTicks, maxJumpTicks)
			}
		}
		if s.jumpTicks > 0 {
			set.Jump = true
			s.jumpTicks--
		} else {
			s.committed = false
		}
	}

	// Airborne, humans sometimes overcorrect toward the landing.
	if !ctx.Terrain.OnGround() && ctx.Rand.Float64() < overcorrectChance {
		set.Right = ctx.Rand.Float64() < 0.7
	}

	return set
}

// Next leaves once the commitment is spent and no multi-obstacle sequence
// remains ahead.
func (s *jumpState) Next(ctx *Context) (StateID, bool) {
	if !s.committed && !multiObstacleAhead(ctx.Terrain) {
		return StateExplore, true
	}
	return 0, false
}

// shouldStartJump fires on an immediate obstacle or missing ground at the
// next-but-one column.
func shouldStartJump(terrain grid.Grid) bool {
	return terrain.SolidAhead() || !terrain.HasGroundAt(2)
}

// baseJumpDuration is the deterministic part of the hold time: the base,
// stretched by measured gap width and wall height, before any jitter.
func baseJumpDuration(terrain grid.Grid) int {
	d := jumpBaseTicks
	if gap := terrain.GapWidth(); gap > 0 && gap*gapDurationFactor > d {
		d = gap * gapDurationFactor
	}
	if h := terrain.WallHeight(); h > 0 && h*wallDurationFactor > d {
		d = h * wallDurationFactor
	}
	return d
}

// jumpDuration adds the human timing jitter and clamps to the global range.
func jumpDuration(terrain grid.Grid, src entropy.Source) int {
	d := baseJumpDuration(terrain) + entropy.Jitter(src, jumpTimingJitter)
	return clampInt(d, minJumpTicks, maxJumpTicks)
}

// multiObstacleAhead counts obstacle columns at body or leg height in the
// next several columns; a dense run keeps the jump sequence going.
func multiObstacleAhead(terrain grid.Grid) bool {
	count := 0
	for offset := 1; offset <= multiObstacleCols; offset++ {
		c := terrain.CenterCol() + offset
		if grid.IsSolid(terrain.At(terrain.CenterRow(), c)) ||
			grid.IsSolid(terrain.At(terrain.CenterRow()+1, c)) {
			count++
		}
	}
	return count > multiObstacleCount
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
