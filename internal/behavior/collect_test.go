package behavior

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/mimic/internal/grid"
)

func TestCollect_Act(t *testing.T) {
	t.Run("moves toward an elevated coin and jumps", func(t *testing.T) {
		terrain := flatTerrain()
		terrain.Set(terrain.CenterRow()-2, terrain.CenterCol()+4, grid.CellCoin)

		s := &collectState{}
		ctx := testContext(terrain, emptyEnemies())
		s.Enter(ctx)

		set := s.Act(ctx)
		require.True(t, set.Right)
		require.True(t, set.Jump)
		require.Equal(t, terrain.CenterRow()-2, s.targetRow)
		require.Equal(t, terrain.CenterCol()+4, s.targetCol)
	})

	t.Run("target is sticky across ticks", func(t *testing.T) {
		terrain := flatTerrain()
		terrain.Set(terrain.CenterRow()-1, terrain.CenterCol()+2, grid.CellCoin)

		s := &collectState{}
		ctx := testContext(terrain, emptyEnemies())
		s.Enter(ctx)
		s.Act(ctx)
		row, col := s.targetRow, s.targetCol

		// A closer coin appearing later does not steal the lock.
		terrain.Set(terrain.CenterRow()-1, terrain.CenterCol()+1, grid.CellCoin)
		s.Act(ctx)
		require.Equal(t, row, s.targetRow)
		require.Equal(t, col, s.targetCol)
	})

	t.Run("nothing in the window drifts forward", func(t *testing.T) {
		s := &collectState{}
		ctx := testContext(flatTerrain(), emptyEnemies())
		s.Enter(ctx)

		set := s.Act(ctx)
		require.True(t, set.Right)
		require.False(t, set.Jump)
	})

	t.Run("excited curiosity bursts into a sprint", func(t *testing.T) {
		terrain := flatTerrain()
		terrain.Set(terrain.CenterRow(), terrain.CenterCol()+5, grid.CellCoin)

		s := &collectState{}
		ctx := testContext(terrain, emptyEnemies())
		ctx.Emotion.(*stubEmotions).curiosity = 0.9
		ctx.Rand = fixedSource{v: 0.08} // under the overshoot chance
		s.Enter(ctx)

		set := s.Act(ctx)
		require.True(t, set.Speed)
	})

	t.Run("severe mistakes cancel the pickup jump", func(t *testing.T) {
		terrain := flatTerrain()
		terrain.Set(terrain.CenterRow()-2, terrain.CenterCol()+2, grid.CellCoin)

		s := &collectState{}
		ctx := testContext(terrain, emptyEnemies())
		ctx.Emotion.(*stubEmotions).severity = 1.0
		ctx.Rand = fixedSource{v: 0.2} // under 0.3 * severity
		s.Enter(ctx)

		set := s.Act(ctx)
		require.False(t, set.Jump)
	})
}

func TestCollect_Next(t *testing.T) {
	coined := func() grid.Grid {
		g := flatTerrain()
		g.Set(g.CenterRow()-1, g.CenterCol()+2, grid.CellCoin)
		return g
	}

	t.Run("enemy pre-empts collection", func(t *testing.T) {
		s := &collectState{}
		next, ok := s.Next(testContext(coined(), enemyAt(0, 1)))
		require.True(t, ok)
		require.Equal(t, StateFlee, next)
	})

	t.Run("complex terrain defers to jump", func(t *testing.T) {
		g := gapTerrain(3)
		g.Set(g.CenterRow()-1, g.CenterCol()+1, grid.CellCoin)

		s := &collectState{}
		next, ok := s.Next(testContext(g, emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateJump, next)
	})

	t.Run("budget exhaustion returns to explore", func(t *testing.T) {
		s := &collectState{ticks: collectBudget + 1}
		next, ok := s.Next(testContext(coined(), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateExplore, next)
	})

	t.Run("empty window returns to explore", func(t *testing.T) {
		s := &collectState{}
		next, ok := s.Next(testContext(flatTerrain(), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateExplore, next)
	})

	t.Run("stays while coins remain and budget allows", func(t *testing.T) {
		s := &collectState{ticks: 10}
		_, ok := s.Next(testContext(coined(), emptyEnemies()))
		require.False(t, ok)
	})
}
