package behavior

import "github.com/talgya/mimic/internal/grid"

// Shared risk thresholds. One canonical definition per metric; every state
// reads the same numbers.
const (
	// riskyGapWidth is the gap width that makes a forward move risky.
	riskyGapWidth = 3
	// complexWallHeight is the wall height beyond which a committed jump
	// sequence is needed (strictly greater).
	complexWallHeight = 2
	// blockingWallHeight is a wall the agent cannot clear casually.
	blockingWallHeight = 4
	// threatConeDepth is how far ahead the enemy cone scans.
	threatConeDepth = 4
	// manyThreats is the cone count that reads as "crowded".
	manyThreats = 2
)

// riskyAhead is the risk predicate shared by the hesitation gate and the
// Explore transition: a crowded cone, a wide gap, or a tall wall.
func riskyAhead(terrain, enemies grid.Grid) bool {
	return enemies.EnemiesInCone(threatConeDepth) >= manyThreats ||
		terrain.GapWidth() >= riskyGapWidth ||
		terrain.WallHeight() >= blockingWallHeight
}

// needsComplexJump reports terrain that warrants committing to the Jump
// state: no ground at the next-but-one column, or a wall too tall for a hop.
func needsComplexJump(terrain grid.Grid) bool {
	return !terrain.HasGroundAt(2) || terrain.WallHeight() > complexWallHeight
}

// obstacleDensity counts forward columns (next four) holding any solid cell
// between two rows above the body and leg height.
func obstacleDensity(terrain grid.Grid) int {
	count := 0
	for offset := 1; offset <= 4; offset++ {
		c := terrain.CenterCol() + offset
		for r := terrain.CenterRow() - 2; r <= terrain.CenterRow()+1; r++ {
			if grid.IsSolid(terrain.At(r, c)) {
				count++
				break
			}
		}
	}
	return count
}
