// Package grid provides the per-tick observation snapshots and the terrain
// metrics shared by every behavior state. Snapshots are read-only views valid
// for exactly one tick; the agent always sits at the geometric center.
//
// Every scan bounds its row/column ranges against the grid's actual extents,
// so reads near a level boundary never index out of range.
package grid

// Terrain codes. Zero is empty/passable; coins are the one nonzero code the
// agent can walk through.
const (
	CellEmpty      = 0
	CellGround     = 1
	CellCoin       = 2
	CellPipe       = 3
	CellBrick      = 6
	CellPowerBlock = 9
)

// IsSolid reports whether a terrain code blocks movement.
func IsSolid(code int) bool {
	return code != CellEmpty && code != CellCoin
}

// IsCollectible reports whether a terrain code is worth picking up.
func IsCollectible(code int) bool {
	return code == CellCoin || code == CellPowerBlock
}

// Grid is a fixed-size window of integer cell codes. The same type carries
// terrain codes and enemy codes; for enemy grids any nonzero cell is a threat.
type Grid struct {
	cells [][]int
}

// New returns an empty grid of the given dimensions.
func New(rows, cols int) Grid {
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
	}
	return Grid{cells: cells}
}

// FromCells wraps an existing cell matrix. The matrix is not copied; callers
// hand over ownership for the tick.
func FromCells(cells [][]int) Grid {
	return Grid{cells: cells}
}

func (g Grid) Rows() int {
	return len(g.cells)
}

func (g Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// CenterRow is the agent's row: the geometric center of the window.
func (g Grid) CenterRow() int { return g.Rows() / 2 }

// CenterCol is the agent's column.
func (g Grid) CenterCol() int { return g.Cols() / 2 }

// InBounds reports whether (r, c) lies inside the window.
func (g Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Rows() && c >= 0 && c < g.Cols()
}

// At returns the cell code at (r, c), or CellEmpty outside the window.
func (g Grid) At(r, c int) int {
	if !g.InBounds(r, c) {
		return CellEmpty
	}
	return g.cells[r][c]
}

// Set writes a cell code. Writes outside the window are dropped.
func (g *Grid) Set(r, c, code int) {
	if g.InBounds(r, c) {
		g.cells[r][c] = code
	}
}
