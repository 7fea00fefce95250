package behavior

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/mimic/internal/grid"
)

func TestHesitate_ObservePhase(t *testing.T) {
	s := &hesitateState{}
	ctx := testContext(gapTerrain(3), emptyEnemies())
	s.Enter(ctx)

	for i := 0; i < observePhaseTicks-1; i++ {
		set := s.Act(ctx)
		require.True(t, set.IsEmpty(), "tick %d", i)
	}
	require.False(t, s.assessed)
}

func TestHesitate_TestPhase(t *testing.T) {
	ctx := testContext(gapTerrain(3), emptyEnemies())

	// A tick where the tap window is open.
	s := &hesitateState{ticks: 39}
	set := s.Act(ctx)
	require.True(t, set.Right)
	require.False(t, set.Speed)

	// A tick where it is closed.
	s = &hesitateState{ticks: 30}
	set = s.Act(ctx)
	require.False(t, set.Right)

	// The periodic probe jump.
	s = &hesitateState{ticks: 54}
	set = s.Act(ctx)
	require.True(t, set.Jump)
}

func TestHesitate_DecidePhase(t *testing.T) {
	t.Run("safe ground commits", func(t *testing.T) {
		s := &hesitateState{ticks: testPhaseTicks}
		ctx := testContext(flatTerrain(), emptyEnemies())

		set := s.Act(ctx)
		require.True(t, s.assessed)
		require.True(t, s.safePath)
		require.True(t, set.Right)
		require.False(t, set.Speed) // confidence 0.7 is under the run gate
	})

	t.Run("high confidence commits at speed", func(t *testing.T) {
		s := &hesitateState{ticks: testPhaseTicks}
		ctx := testContext(flatTerrain(), emptyEnemies())
		ctx.Emotion.(*stubEmotions).confidence = 0.9

		set := s.Act(ctx)
		require.True(t, set.Right)
		require.True(t, set.Speed)
	})

	t.Run("confidence overrides risk", func(t *testing.T) {
		s := &hesitateState{ticks: testPhaseTicks}
		ctx := testContext(gapTerrain(3), emptyEnemies())
		ctx.Emotion.(*stubEmotions).confidence = 0.75

		s.Act(ctx)
		require.True(t, s.safePath)
	})

	t.Run("risk plus low confidence keeps shuffling", func(t *testing.T) {
		s := &hesitateState{ticks: testPhaseTicks}
		ctx := testContext(gapTerrain(3), emptyEnemies())
		ctx.Emotion.(*stubEmotions).confidence = 0.5

		s.Act(ctx)
		require.True(t, s.assessed)
		require.False(t, s.safePath)
	})

	t.Run("obstacle forces a committed hop", func(t *testing.T) {
		s := &hesitateState{ticks: testPhaseTicks}
		ctx := testContext(wallTerrain(1), emptyEnemies())

		set := s.Act(ctx)
		require.True(t, set.Jump)
	})
}

func TestHesitate_NervousPause(t *testing.T) {
	s := &hesitateState{ticks: testPhaseTicks}
	ctx := testContext(flatTerrain(), emptyEnemies())
	ctx.Rand = fixedSource{v: 0.01}

	set := s.Act(ctx)
	require.True(t, set.IsEmpty())
}

func TestHesitate_Next(t *testing.T) {
	t.Run("enemy pre-empts deliberation", func(t *testing.T) {
		s := &hesitateState{}
		next, ok := s.Next(testContext(flatTerrain(), enemyAt(0, 1)))
		require.True(t, ok)
		require.Equal(t, StateFlee, next)
	})

	t.Run("committed safe path explores", func(t *testing.T) {
		s := &hesitateState{assessed: true, safePath: true}
		next, ok := s.Next(testContext(flatTerrain(), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateExplore, next)
	})

	t.Run("committed path over complex terrain jumps", func(t *testing.T) {
		s := &hesitateState{assessed: true, safePath: true}
		next, ok := s.Next(testContext(gapTerrain(3), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateJump, next)
	})

	t.Run("committed path near a power block collects", func(t *testing.T) {
		terrain := flatTerrain()
		terrain.Set(terrain.CenterRow()-2, terrain.CenterCol()+2, grid.CellPowerBlock)

		s := &hesitateState{assessed: true, safePath: true}
		next, ok := s.Next(testContext(terrain, emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateCollect, next)
	})

	t.Run("ceiling without a stall jumps anyway", func(t *testing.T) {
		s := &hesitateState{ticks: hesitateCeiling + 1}
		next, ok := s.Next(testContext(gapTerrain(3), emptyEnemies()))
		require.True(t, ok)
		require.Equal(t, StateJump, next)
	})

	t.Run("ceiling with a stall goes to stuck", func(t *testing.T) {
		s := &hesitateState{ticks: hesitateCeiling + 1}
		ctx := testContext(gapTerrain(3), emptyEnemies())
		ctx.StuckCounter = 2

		next, ok := s.Next(ctx)
		require.True(t, ok)
		require.Equal(t, StateStuck, next)
	})

	t.Run("keeps deliberating otherwise", func(t *testing.T) {
		s := &hesitateState{ticks: 40}
		_, ok := s.Next(testContext(gapTerrain(3), emptyEnemies()))
		require.False(t, ok)
	})
}
