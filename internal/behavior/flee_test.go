package behavior

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlee_PanicPhase(t *testing.T) {
	t.Run("erratic sprint and random hops", func(t *testing.T) {
		s := &fleeState{}
		ctx := testContext(flatTerrain(), enemyAt(0, 1))
		ctx.Rand = fixedSource{v: 0.1}
		s.Enter(ctx)

		set := s.Act(ctx)
		require.True(t, set.Right)
		require.True(t, set.Speed)
		require.True(t, set.Jump)
	})

	t.Run("sometimes freezes instead", func(t *testing.T) {
		s := &fleeState{}
		ctx := testContext(flatTerrain(), enemyAt(0, 1))
		ctx.Rand = fixedSource{v: 0.9}
		s.Enter(ctx)

		set := s.Act(ctx)
		require.True(t, set.IsEmpty())
	})
}

func TestFlee_ControlledPhase(t *testing.T) {
	t.Run("sprints and clears pursuers ahead", func(t *testing.T) {
		s := &fleeState{ticks: fleePanicTicks}
		ctx := testContext(flatTerrain(), enemyAt(0, 2))

		set := s.Act(ctx)
		require.True(t, set.Right)
		require.True(t, set.Speed)
		require.True(t, set.Jump)
	})

	t.Run("clean path runs without jumping", func(t *testing.T) {
		s := &fleeState{ticks: fleePanicTicks}
		ctx := testContext(flatTerrain(), emptyEnemies())

		set := s.Act(ctx)
		require.True(t, set.Right)
		require.True(t, set.Speed)
		require.False(t, set.Jump)
	})

	t.Run("lingering errors drop a button", func(t *testing.T) {
		s := &fleeState{ticks: fleePanicTicks}
		ctx := testContext(flatTerrain(), emptyEnemies())
		ctx.Emotion.(*stubEmotions).mistake = true
		ctx.Rand = fixedSource{v: 0.25}

		set := s.Act(ctx)
		// 0.25 < error chance, then 0.25 < 0.5 drops forward movement.
		require.False(t, set.Right)
		require.True(t, set.Speed)
	})
}

func TestFlee_EscapeTracking(t *testing.T) {
	s := &fleeState{}
	ctx := testContext(flatTerrain(), enemyAt(0, 1))
	s.Enter(ctx)

	s.Act(ctx)
	require.False(t, s.escaped)

	ctx.Enemies = emptyEnemies()
	s.Act(ctx)
	require.True(t, s.escaped)
}

func TestFlee_Next(t *testing.T) {
	t.Run("blocking wall defers to jump", func(t *testing.T) {
		s := &fleeState{}
		next, ok := s.Next(testContext(wallTerrain(4), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateJump, next)
	})

	t.Run("escape needs the minimum dwell", func(t *testing.T) {
		s := &fleeState{escaped: true, ticks: fleeMinDwell - 1}
		_, ok := s.Next(testContext(flatTerrain(), emptyEnemies()))
		require.False(t, ok)
	})

	t.Run("escaped after dwell returns to explore", func(t *testing.T) {
		s := &fleeState{escaped: true, ticks: fleeMinDwell + 1}
		next, ok := s.Next(testContext(flatTerrain(), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateExplore, next)
	})

	t.Run("escaped flag alone is not enough while shadowed", func(t *testing.T) {
		s := &fleeState{escaped: true, ticks: fleeMinDwell + 1}
		_, ok := s.Next(testContext(flatTerrain(), enemyAt(0, 1)))
		require.False(t, ok)
	})

	t.Run("ceiling without a stall jumps", func(t *testing.T) {
		s := &fleeState{ticks: fleeCeiling + 1}
		next, ok := s.Next(testContext(flatTerrain(), enemyAt(0, 1)))
		require.True(t, ok)
		require.Equal(t, StateJump, next)
	})

	t.Run("ceiling with a stall goes to stuck", func(t *testing.T) {
		s := &fleeState{ticks: fleeCeiling + 1}
		ctx := testContext(flatTerrain(), enemyAt(0, 1))
		ctx.StuckCounter = 3

		next, ok := s.Next(ctx)
		require.True(t, ok)
		require.Equal(t, StateStuck, next)
	})
}
