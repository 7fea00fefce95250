package env

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/emotion"
	"github.com/talgya/mimic/internal/entropy"
	"github.com/talgya/mimic/internal/grid"
)

// WorldConfig shapes the synthetic level strip.
type WorldConfig struct {
	Length      int     `yaml:"length"`       // columns in the strip
	Height      int     `yaml:"height"`       // rows in the strip
	Window      int     `yaml:"window"`       // observation window size
	GapChance   float64 `yaml:"gap_chance"`   // per-column chance a gap starts
	CoinChance  float64 `yaml:"coin_chance"`  // per-column chance a coin run starts
	EnemyChance float64 `yaml:"enemy_chance"` // per-column chance of an enemy
}

// DefaultWorldConfig returns a strip long enough for a few minutes of play.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Length:      600,
		Height:      16,
		Window:      16,
		GapChance:   0.04,
		CoinChance:  0.08,
		EnemyChance: 0.05,
	}
}

// Movement tuning for the crude kinematics.
const (
	walkSpeed   = 0.6
	runSpeed    = 1.0
	jumpKick    = -1.1
	gravity     = 0.16
	holdGravity = 0.06 // reduced while the jump button is held on the way up
	stompSpeed  = 0.3  // falling faster than this squashes an enemy
)

// World is a synthetic side-scroller: procedurally generated terrain,
// stationary hazards scattered along the surface, and just enough physics to
// make the agent's choices matter. It stands in for the real game engine
// during development.
type World struct {
	cfg WorldConfig
	rng entropy.Source

	groundTop []int   // top ground row per column; -1 marks a gap
	terrain   [][]int // [row][col] terrain codes
	enemies   [][]int // [row][col] enemy codes

	x       float64 // body column
	y       float64 // body row
	vy      float64
	rising  bool
	lastGX  int // last grounded column, for respawns
	pending emotion.Outcome

	coins    int
	kills    int
	deaths   int
	finished bool
}

// NewWorld generates a deterministic strip from the seed.
func NewWorld(cfg WorldConfig, seed int64) *World {
	w := &World{
		cfg: cfg,
		rng: entropy.NewStream(seed + 1),
	}
	w.generate(seed)
	w.spawnAt(1)
	return w
}

// generate builds the strip: octave-noise ground height, noise-thresholded
// gaps, coin runs and arcs over plateaus, enemies on open ground.
func (w *World) generate(seed int64) {
	heightNoise := opensimplex.NewNormalized(seed)
	gapNoise := opensimplex.NewNormalized(seed + 1)

	w.groundTop = make([]int, w.cfg.Length)
	w.terrain = makeCells(w.cfg.Height, w.cfg.Length)
	w.enemies = makeCells(w.cfg.Height, w.cfg.Length)

	base := float64(w.cfg.Height) * 0.7
	amplitude := float64(w.cfg.Height) * 0.15

	gapLeft := 0
	for c := 0; c < w.cfg.Length; c++ {
		// Flat start and finish so spawn and goal are always safe.
		nearEdge := c < 8 || c > w.cfg.Length-8

		h := base - amplitude*octaveNoise(heightNoise, float64(c), 0, 3, 0.05, 0.5)
		top := int(math.Round(h))
		if top < 4 {
			top = 4
		}
		if top > w.cfg.Height-2 {
			top = w.cfg.Height - 2
		}

		if gapLeft > 0 && !nearEdge {
			gapLeft--
			w.groundTop[c] = -1
			continue
		}
		if !nearEdge && gapNoise.Eval2(float64(c)*0.3, 7.5) < w.cfg.GapChance*2 &&
			w.rng.Float64() < 0.5 {
			gapLeft = 1 + w.rng.IntN(3) // gaps of 2-4 columns
			w.groundTop[c] = -1
			continue
		}

		w.groundTop[c] = top
		for r := top; r < w.cfg.Height; r++ {
			w.terrain[r][c] = grid.CellGround
		}

		if nearEdge {
			continue
		}

		// Decorations above the surface.
		switch {
		case w.rng.Float64() < w.cfg.CoinChance:
			w.placeCoinRun(c, top)
		case w.rng.Float64() < w.cfg.CoinChance*0.3:
			w.terrain[top-4][c] = grid.CellPowerBlock
		}

		if w.rng.Float64() < w.cfg.EnemyChance {
			w.enemies[top-1][c] = 1
		}
	}
}

// placeCoinRun lays a short horizontal run or a small arc of coins above the
// surface at column c.
func (w *World) placeCoinRun(c, top int) {
	count := 3 + w.rng.IntN(3)
	arc := w.rng.Float64() < 0.4
	for i := 0; i < count && c+i < w.cfg.Length; i++ {
		r := top - 3
		if arc {
			// Shallow parabola peaking mid-run.
			mid := float64(count-1) / 2
			r = top - 3 - int(2-math.Abs(float64(i)-mid))
		}
		if r >= 0 && w.terrain[r][c+i] == grid.CellEmpty {
			w.terrain[r][c+i] = grid.CellCoin
		}
	}
}

func (w *World) spawnAt(col int) {
	w.x = float64(col)
	top := w.groundTop[col]
	if top < 0 {
		top = w.cfg.Height - 2
	}
	w.y = float64(top - 2)
	w.vy = 0
	w.rising = false
	w.lastGX = col
}

// Observe snapshots the windows around the agent. The pending outcome signal
// is consumed: win/lose report exactly once.
func (w *World) Observe() Snapshot {
	snap := Snapshot{
		Terrain: w.windowOf(w.terrain),
		Enemies: w.windowOf(w.enemies),
		X:       w.x,
		Signal: emotion.Signal{
			Status: w.pending,
			Coins:  w.coins,
			Kills:  w.kills,
		},
	}
	w.pending = emotion.StatusRunning
	return snap
}

// windowOf copies a Window x Window view centered on the agent's body cell.
func (w *World) windowOf(cells [][]int) grid.Grid {
	size := w.cfg.Window
	g := grid.New(size, size)
	cr, cc := size/2, size/2
	br, bc := int(math.Round(w.y)), int(w.x)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			wr, wc := br+r-cr, bc+c-cc
			if wr >= 0 && wr < w.cfg.Height && wc >= 0 && wc < w.cfg.Length {
				g.Set(r, c, cells[wr][wc])
			}
		}
	}
	return g
}

// Apply integrates one tick of movement from the action set.
func (w *World) Apply(set action.Set) {
	if w.finished {
		return
	}

	speed := walkSpeed
	if set.Speed {
		speed = runSpeed
	}
	switch {
	case set.Right:
		w.x += speed
	case set.Left:
		w.x -= speed
	}
	if w.x < 1 {
		w.x = 1
	}

	grounded := w.onGround()
	if set.Jump && grounded {
		w.vy = jumpKick
		w.rising = true
	}
	g := gravity
	if w.rising && set.Jump && w.vy < 0 {
		g = holdGravity
	}
	w.vy += g
	w.y += w.vy
	if w.vy >= 0 {
		w.rising = false
	}

	w.settle()
	w.interact()

	if int(w.x) >= w.cfg.Length-2 {
		w.finished = true
		w.pending = emotion.StatusWin
	}
}

// onGround reports solid support directly beneath the legs.
func (w *World) onGround() bool {
	col := int(w.x)
	top := w.groundTopAt(col)
	return top >= 0 && int(math.Round(w.y)) >= top-2
}

func (w *World) groundTopAt(col int) int {
	if col < 0 || col >= w.cfg.Length {
		return -1
	}
	return w.groundTop[col]
}

// settle lands the agent on the surface or lets it fall into a gap.
func (w *World) settle() {
	col := int(w.x)
	top := w.groundTopAt(col)
	if top >= 0 && w.vy >= 0 && w.y >= float64(top-2) {
		w.y = float64(top - 2)
		w.vy = 0
		w.lastGX = col
	}
	if w.y > float64(w.cfg.Height) {
		w.die()
	}
}

// interact resolves coin pickup and enemy contact at the body and leg cells.
func (w *World) interact() {
	col := int(w.x)
	body := int(math.Round(w.y))
	for _, r := range [2]int{body, body + 1} {
		if r < 0 || r >= w.cfg.Height || col < 0 || col >= w.cfg.Length {
			continue
		}
		if grid.IsCollectible(w.terrain[r][col]) {
			if w.terrain[r][col] == grid.CellCoin {
				w.coins++
			}
			w.terrain[r][col] = grid.CellEmpty
		}
		if w.enemies[r][col] != 0 {
			if w.vy > stompSpeed {
				w.enemies[r][col] = 0
				w.kills++
				w.vy = jumpKick * 0.5
			} else {
				w.die()
				return
			}
		}
	}
}

// die respawns at the last grounded column and queues a lose signal for the
// next observation.
func (w *World) die() {
	w.deaths++
	w.pending = emotion.StatusLose
	w.spawnAt(w.lastGX)
}

func (w *World) X() float64     { return w.x }
func (w *World) Coins() int     { return w.coins }
func (w *World) Kills() int     { return w.kills }
func (w *World) Deaths() int    { return w.deaths }
func (w *World) Finished() bool { return w.finished }

// Length returns the strip length in columns.
func (w *World) Length() int { return w.cfg.Length }

func makeCells(rows, cols int) [][]int {
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
	}
	return cells
}

// octaveNoise layers multiple noise frequencies for natural-looking ground.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
