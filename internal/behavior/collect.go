package behavior

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/entropy"
)

const (
	// Search window for targets and the "anything left" check.
	collectRowSpan    = 4
	collectDepth      = 7
	collectRemainRows = 3
	collectRemainCols = 5

	// collectBudget caps how long the agent fixates before moving on.
	collectBudget = 120

	// Human imperfections while collecting.
	collectOvershootChance = 0.1  // excited speed burst at high curiosity
	collectMistimeChance   = 0.3  // scaled by mistake severity
	collectDistraction     = 0.05 // blank tick, mind wandered
)

// collectState chases the nearest valuable cell with human-grade aim: a
// sticky target, mistimed jumps, and the occasional lapse of attention.
type collectState struct {
	ticks     int
	targetRow int
	targetCol int
}

func (s *collectState) ID() StateID { return StateCollect }

func (s *collectState) Enter(ctx *Context) {
	s.ticks = 0
	s.targetRow = -1
	s.targetCol = -1
}

func (s *collectState) Exit(ctx *Context) {}

func (s *collectState) Act(ctx *Context) action.Set {
	var set action.Set
	terrain := ctx.Terrain

	// Acquire a target once and stick with it across ticks.
	if s.targetRow < 0 {
		if r, c, ok := terrain.NearestCollectible(collectRowSpan, collectDepth); ok {
			s.targetRow, s.targetCol = r, c
		}
	}

	if s.targetRow >= 0 {
		switch {
		case s.targetCol > terrain.CenterCol():
			set.Right = true
			if ctx.Emotion.Curiosity() > 0.8 && ctx.Rand.Float64() < collectOvershootChance {
				set.Speed = true
			}
		case s.targetCol < terrain.CenterCol():
			// Backtracking for something valuable.
			set.Left = true
		}

		if s.targetRow < terrain.CenterRow() {
			set.Jump = true
			if entropy.Chance(ctx.Rand, collectMistimeChance*ctx.Emotion.MistakeSeverity()) {
				set.Jump = false
			}
		}
	} else {
		// Nothing targeted: drift forward slowly.
		set.Right = true
	}

	if ctx.Rand.Float64() < collectDistraction {
		set.Clear()
	}

	s.ticks++
	return set
}

// Next pre-empts to Flee on an immediate threat, then to Jump for complex
// terrain, and otherwise leaves once the budget runs out or the window
// empties.
func (s *collectState) Next(ctx *Context) (StateID, bool) {
	if ctx.Enemies.EnemyAdjacent() {
		return StateFlee, true
	}
	if needsComplexJump(ctx.Terrain) {
		return StateJump, true
	}
	if s.ticks > collectBudget || !ctx.Terrain.HasCollectible(collectRemainRows, collectRemainCols) {
		return StateExplore, true
	}
	return 0, false
}
