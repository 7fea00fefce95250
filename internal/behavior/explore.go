package behavior

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/grid"
)

// Collectible scan window for the curiosity fallback.
const (
	exploreCollectibleRows  = 2
	exploreCollectibleDepth = 3
)

// exploreState is the default behavior: forward-biased movement with
// environmental scanning. It carries no commitments, so it keeps no counters.
type exploreState struct{}

func (s *exploreState) ID() StateID        { return StateExplore }
func (s *exploreState) Enter(ctx *Context) {}
func (s *exploreState) Exit(ctx *Context)  {}

func (s *exploreState) Act(ctx *Context) action.Set {
	var set action.Set
	set.Right = true

	if ctx.Terrain.SolidAhead() {
		set.Jump = true
	}

	// Full speed only when the path ahead isn't crowded.
	set.Speed = ctx.Enemies.EnemiesInCone(threatConeDepth) < manyThreats

	if trail, ok := findCoinTrail(ctx.Terrain); ok {
		steerForTrail(&set, ctx.Terrain, trail)
	} else if ctx.Emotion.ShouldExploreForCoins() &&
		ctx.Terrain.HasCollectible(exploreCollectibleRows, exploreCollectibleDepth) {
		adjustForCollectible(&set, ctx.Terrain)
	}

	return set
}

// Next checks, in fixed priority order: immediate threat, stall, risky
// ground worth a deliberate pause, then terrain needing a committed jump.
func (s *exploreState) Next(ctx *Context) (StateID, bool) {
	if ctx.Enemies.EnemyAdjacent() {
		return StateFlee, true
	}
	if ctx.StuckCounter > 0 {
		return StateStuck, true
	}
	if riskyAhead(ctx.Terrain, ctx.Enemies) && ctx.Emotion.ShouldHesitate() {
		return StateHesitate, true
	}
	if needsComplexJump(ctx.Terrain) {
		return StateJump, true
	}
	return 0, false
}

// adjustForCollectible nudges the default movement toward a coin or block
// spotted above the path: hop if it sits overhead within two columns.
func adjustForCollectible(set *action.Set, terrain grid.Grid) {
	for r := maxInt(0, terrain.CenterRow()-3); r < terrain.CenterRow(); r++ {
		for c := terrain.CenterCol() + 1; c <= terrain.CenterCol()+2; c++ {
			if grid.IsCollectible(terrain.At(r, c)) {
				set.Jump = true
				return
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
