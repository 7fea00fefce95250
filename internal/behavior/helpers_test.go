package behavior

import (
	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/grid"
)

const testWindow = 16

// fixedSource pins every draw: Float64 returns v, IntN scales it.
type fixedSource struct{ v float64 }

func (s fixedSource) Float64() float64 { return s.v }
func (s fixedSource) IntN(n int) int   { return int(s.v * float64(n)) }

// stubEmotions is a scripted EmotionReader for exercising single states.
type stubEmotions struct {
	confidence float64
	curiosity  float64
	severity   float64
	hesitate   bool
	mistake    bool
	coins      bool
}

func calmEmotions() *stubEmotions {
	return &stubEmotions{confidence: 0.7, curiosity: 0.6, severity: 0.3}
}

func (s *stubEmotions) Confidence() float64         { return s.confidence }
func (s *stubEmotions) Curiosity() float64          { return s.curiosity }
func (s *stubEmotions) ShouldHesitate() bool        { return s.hesitate }
func (s *stubEmotions) ShouldMakeMistake() bool     { return s.mistake }
func (s *stubEmotions) MistakeSeverity() float64    { return s.severity }
func (s *stubEmotions) ShouldExploreForCoins() bool { return s.coins }

// flatTerrain has continuous ground two rows beneath the body row: the clean
// walking surface where nothing is risky.
func flatTerrain() grid.Grid {
	g := grid.New(testWindow, testWindow)
	ground := g.CenterRow() + 2
	for c := 0; c < testWindow; c++ {
		g.Set(ground, c, grid.CellGround)
	}
	return g
}

// gapTerrain removes width columns of ground starting at the next column.
func gapTerrain(width int) grid.Grid {
	g := flatTerrain()
	for i := 1; i <= width; i++ {
		g.Set(g.CenterRow()+2, g.CenterCol()+i, grid.CellEmpty)
	}
	return g
}

// wallTerrain stacks height solid cells in the next column, counted upward
// from body height.
func wallTerrain(height int) grid.Grid {
	g := flatTerrain()
	c := g.CenterCol() + 1
	g.Set(g.CenterRow()+1, c, grid.CellGround)
	for i := 0; i < height; i++ {
		g.Set(g.CenterRow()-i, c, grid.CellGround)
	}
	return g
}

func emptyEnemies() grid.Grid { return grid.New(testWindow, testWindow) }

// enemyAt places a single enemy at an offset from the agent's cell.
func enemyAt(rowOff, colOff int) grid.Grid {
	e := emptyEnemies()
	e.Set(e.CenterRow()+rowOff, e.CenterCol()+colOff, 1)
	return e
}

// testContext builds a quiet tick view: calm emotions, draws that never fire.
func testContext(terrain, enemies grid.Grid) *Context {
	return &Context{
		Terrain: terrain,
		Enemies: enemies,
		X:       100,
		Emotion: calmEmotions(),
		Rand:    fixedSource{v: 0.99},
	}
}

// spyState records lifecycle calls for controller pipeline tests.
type spyState struct {
	id     StateID
	log    *[]string
	out    action.Set
	next   StateID
	jump   bool
	acts   int
	nexts  int
	enters int
	exits  int
}

func (s *spyState) ID() StateID { return s.id }

func (s *spyState) Act(ctx *Context) action.Set {
	s.acts++
	s.record("act")
	return s.out
}

func (s *spyState) Next(ctx *Context) (StateID, bool) {
	s.nexts++
	s.record("next")
	return s.next, s.jump
}

func (s *spyState) Enter(ctx *Context) {
	s.enters++
	s.record("enter")
}

func (s *spyState) Exit(ctx *Context) {
	s.exits++
	s.record("exit")
}

func (s *spyState) record(event string) {
	if s.log != nil {
		*s.log = append(*s.log, event+":"+s.id.String())
	}
}
