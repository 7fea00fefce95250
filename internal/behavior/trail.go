package behavior

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/grid"
)

// trailPattern tags the shape of a detected coin trail.
type trailPattern uint8

const (
	trailHorizontal trailPattern = iota
	trailVertical
	trailArc
	trailCluster
)

var trailNames = [4]string{"horizontal", "vertical", "arc", "cluster"}

func (p trailPattern) String() string { return trailNames[p] }

// coinTrail is a transient description of a collectible formation ahead:
// bounding box (window coordinates), coin count, pattern tag, and whether
// the trail is valuable enough to slow down for. Recomputed fresh each tick
// inside Explore, never persisted.
type coinTrail struct {
	minRow, maxRow int
	minCol, maxCol int
	coins          int
	powerBlocks    int
	pattern        trailPattern
	highValue      bool
}

// Trail scan window and worth thresholds.
const (
	trailRowSpan   = 4
	trailDepth     = 7
	trailMinRun    = 3 // consecutive coins for a horizontal/vertical run
	trailMinArc    = 4 // coins for an arc formation
	trailMinSpan   = 2 // arc must span this much in both axes
	trailCluster33 = 4 // 3x3 density for a cluster
	trailHighCoins = 5
)

// findCoinTrail runs the four pattern detectors in priority order
// (horizontal run, vertical run, arc, dense cluster) and returns the first
// formation worth pursuing: three or more coins, or any power block.
func findCoinTrail(terrain grid.Grid) (coinTrail, bool) {
	if t, ok := detectHorizontalRun(terrain); ok {
		return t, true
	}
	if t, ok := detectVerticalRun(terrain); ok {
		return t, true
	}
	if t, ok := detectArc(terrain); ok {
		return t, true
	}
	if t, ok := detectCluster(terrain); ok {
		return t, true
	}
	return coinTrail{}, false
}

// detectHorizontalRun finds a row with trailMinRun consecutive coins ahead.
func detectHorizontalRun(terrain grid.Grid) (coinTrail, bool) {
	center := terrain.CenterRow()
	for r := center - trailRowSpan; r <= center+trailRowSpan; r++ {
		run := 0
		start := 0
		for c := terrain.CenterCol() + 1; c <= terrain.CenterCol()+trailDepth; c++ {
			if terrain.At(r, c) == grid.CellCoin {
				if run == 0 {
					start = c
				}
				run++
				if run >= trailMinRun {
					// Extend to the run's full length.
					end := c
					for terrain.At(r, end+1) == grid.CellCoin && end < terrain.CenterCol()+trailDepth {
						end++
						run++
					}
					return finishTrail(coinTrail{
						minRow: r, maxRow: r,
						minCol: start, maxCol: end,
						coins:   run,
						pattern: trailHorizontal,
					}), true
				}
			} else {
				run = 0
			}
		}
	}
	return coinTrail{}, false
}

// detectVerticalRun finds a column ahead with trailMinRun stacked coins.
func detectVerticalRun(terrain grid.Grid) (coinTrail, bool) {
	center := terrain.CenterRow()
	for c := terrain.CenterCol() + 1; c <= terrain.CenterCol()+trailDepth; c++ {
		run := 0
		start := 0
		for r := center + trailRowSpan; r >= center-trailRowSpan; r-- {
			if terrain.At(r, c) == grid.CellCoin {
				if run == 0 {
					start = r
				}
				run++
				if run >= trailMinRun {
					end := r
					for terrain.At(end-1, c) == grid.CellCoin && end > center-trailRowSpan {
						end--
						run++
					}
					return finishTrail(coinTrail{
						minRow: end, maxRow: start,
						minCol: c, maxCol: c,
						coins:   run,
						pattern: trailVertical,
					}), true
				}
			} else {
				run = 0
			}
		}
	}
	return coinTrail{}, false
}

// detectArc gathers every coin in the window and reads the bounding box: an
// arc needs trailMinArc coins spanning at least trailMinSpan in both axes.
func detectArc(terrain grid.Grid) (coinTrail, bool) {
	t := coinTrail{pattern: trailArc}
	first := true
	for r := terrain.CenterRow() - trailRowSpan; r <= terrain.CenterRow()+trailRowSpan; r++ {
		for c := terrain.CenterCol() + 1; c <= terrain.CenterCol()+trailDepth; c++ {
			if terrain.At(r, c) != grid.CellCoin {
				continue
			}
			t.coins++
			if first {
				t.minRow, t.maxRow, t.minCol, t.maxCol = r, r, c, c
				first = false
				continue
			}
			t.minRow = minInt(t.minRow, r)
			t.maxRow = maxInt(t.maxRow, r)
			t.minCol = minInt(t.minCol, c)
			t.maxCol = maxInt(t.maxCol, c)
		}
	}
	if t.coins < trailMinArc ||
		t.maxRow-t.minRow < trailMinSpan || t.maxCol-t.minCol < trailMinSpan {
		return coinTrail{}, false
	}
	return finishTrail(t), true
}

// detectCluster slides a 3x3 window ahead looking for a dense pocket of
// coins and power blocks.
func detectCluster(terrain grid.Grid) (coinTrail, bool) {
	for r := terrain.CenterRow() - trailRowSpan; r <= terrain.CenterRow()+trailRowSpan-2; r++ {
		for c := terrain.CenterCol() + 1; c <= terrain.CenterCol()+trailDepth-2; c++ {
			coins, blocks := 0, 0
			for dr := 0; dr < 3; dr++ {
				for dc := 0; dc < 3; dc++ {
					switch terrain.At(r+dr, c+dc) {
					case grid.CellCoin:
						coins++
					case grid.CellPowerBlock:
						blocks++
					}
				}
			}
			if coins+blocks >= trailCluster33 {
				return finishTrail(coinTrail{
					minRow: r, maxRow: r + 2,
					minCol: c, maxCol: c + 2,
					coins:       coins,
					powerBlocks: blocks,
					pattern:     trailCluster,
				}), true
			}
		}
	}
	return coinTrail{}, false
}

// finishTrail derives the high-value flag: any power block, or a long run.
func finishTrail(t coinTrail) coinTrail {
	t.highValue = t.powerBlocks > 0 || t.coins >= trailHighCoins
	return t
}

// steerForTrail overrides the default movement with pattern-specific timing:
// close the distance first, hop when aligned with the trail start, and take
// high-value formations slowly.
func steerForTrail(set *action.Set, terrain grid.Grid, t coinTrail) {
	set.Right = true
	aligned := t.minCol <= terrain.CenterCol()+1
	if aligned {
		if t.minRow < terrain.CenterRow() || t.pattern == trailVertical {
			set.Jump = true
		}
	}
	if t.highValue {
		set.Speed = false
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
