package grid

// The agent occupies two cells: the body at the center row and the legs one
// row below. Ground scans look beneath the legs; obstacle scans look at body
// and leg height in the column ahead.

// SolidAhead reports a solid cell in the next column at body or leg height,
// the "jump now" trigger for simple obstacles.
func (g Grid) SolidAhead() bool {
	c := g.CenterCol() + 1
	return IsSolid(g.At(g.CenterRow(), c)) || IsSolid(g.At(g.CenterRow()+1, c))
}

// HasGroundAt reports any solid cell below the body row in the column at the
// given forward offset from center. Offset 0 is the agent's own column.
func (g Grid) HasGroundAt(offset int) bool {
	c := g.CenterCol() + offset
	if c < 0 || c >= g.Cols() {
		return false
	}
	for r := g.CenterRow() + 1; r < g.Rows(); r++ {
		if IsSolid(g.At(r, c)) {
			return true
		}
	}
	return false
}

// OnGround reports solid support directly beneath the agent's legs.
func (g Grid) OnGround() bool {
	return IsSolid(g.At(g.CenterRow()+2, g.CenterCol()))
}

// GapWidth is the canonical gap metric: the number of consecutive columns
// ahead of the agent with no ground anywhere below body height, starting at
// the next column and stopping at the first supported column.
func (g Grid) GapWidth() int {
	width := 0
	for offset := 1; g.CenterCol()+offset < g.Cols(); offset++ {
		if g.HasGroundAt(offset) {
			break
		}
		width++
	}
	return width
}

// WallHeight is the canonical wall metric: contiguous solid cells in the next
// column, counted upward from the body row.
func (g Grid) WallHeight() int {
	c := g.CenterCol() + 1
	height := 0
	for r := g.CenterRow(); r >= 0; r-- {
		if !IsSolid(g.At(r, c)) {
			break
		}
		height++
	}
	return height
}

// EnemyAdjacent reports a nonzero enemy code in the cells immediately around
// the agent (one row either side, one column behind through two ahead).
func (g Grid) EnemyAdjacent() bool {
	for r := g.CenterRow() - 1; r <= g.CenterRow()+1; r++ {
		for c := g.CenterCol() - 1; c <= g.CenterCol()+2; c++ {
			if g.At(r, c) != 0 {
				return true
			}
		}
	}
	return false
}

// EnemiesInCone counts enemy cells in the forward cone: one row either side
// of the body, from the next column out to the given depth.
func (g Grid) EnemiesInCone(depth int) int {
	count := 0
	for r := g.CenterRow() - 1; r <= g.CenterRow()+1; r++ {
		for c := g.CenterCol() + 1; c <= g.CenterCol()+depth; c++ {
			if g.At(r, c) != 0 {
				count++
			}
		}
	}
	return count
}

// EnemiesWithin counts enemy cells in a window rowSpan rows either side of
// the body, from back columns behind through ahead columns in front. The
// panic detector compares this count across ticks.
func (g Grid) EnemiesWithin(rowSpan, back, ahead int) int {
	count := 0
	for r := g.CenterRow() - rowSpan; r <= g.CenterRow()+rowSpan; r++ {
		for c := g.CenterCol() - back; c <= g.CenterCol()+ahead; c++ {
			if g.At(r, c) != 0 {
				count++
			}
		}
	}
	return count
}

// HasCollectible reports any coin or power block in a forward window rowSpan
// rows either side of the body and depth columns ahead (inclusive of the
// agent's own column).
func (g Grid) HasCollectible(rowSpan, depth int) bool {
	for r := g.CenterRow() - rowSpan; r <= g.CenterRow()+rowSpan; r++ {
		for c := g.CenterCol(); c <= g.CenterCol()+depth; c++ {
			if IsCollectible(g.At(r, c)) {
				return true
			}
		}
	}
	return false
}

// CountCollectibles counts coins and power blocks in the same forward window
// shape as HasCollectible.
func (g Grid) CountCollectibles(rowSpan, depth int) int {
	count := 0
	for r := g.CenterRow() - rowSpan; r <= g.CenterRow()+rowSpan; r++ {
		for c := g.CenterCol(); c <= g.CenterCol()+depth; c++ {
			if IsCollectible(g.At(r, c)) {
				count++
			}
		}
	}
	return count
}

// HasPowerBlock reports a power block in the forward window.
func (g Grid) HasPowerBlock(rowSpan, depth int) bool {
	for r := g.CenterRow() - rowSpan; r <= g.CenterRow()+rowSpan; r++ {
		for c := g.CenterCol(); c <= g.CenterCol()+depth; c++ {
			if g.At(r, c) == CellPowerBlock {
				return true
			}
		}
	}
	return false
}

// NearestCollectible returns the window coordinates of the closest coin or
// power block by Manhattan distance, searching rowSpan rows either side and
// depth columns ahead. ok is false when the window holds nothing.
func (g Grid) NearestCollectible(rowSpan, depth int) (row, col int, ok bool) {
	best := int(^uint(0) >> 1)
	for r := g.CenterRow() - rowSpan; r <= g.CenterRow()+rowSpan; r++ {
		for c := g.CenterCol(); c <= g.CenterCol()+depth; c++ {
			if !g.InBounds(r, c) || !IsCollectible(g.cells[r][c]) {
				continue
			}
			d := absInt(r-g.CenterRow()) + absInt(c-g.CenterCol())
			if d < best {
				best = d
				row, col, ok = r, c, true
			}
		}
	}
	return row, col, ok
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
