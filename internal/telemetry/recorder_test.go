package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/mimic/internal/action"
)

func openTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	rec, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestRecorder_NilIsSafe(t *testing.T) {
	var rec *Recorder

	require.NotPanics(t, func() {
		id, err := rec.BeginRun(1)
		require.NoError(t, err)
		require.Empty(t, id)

		rec.RecordTick(0, "explore", action.Set{Right: true}, 0.7, 0.5, 0, 0)
		rec.RecordTransition(0, "explore", "jump")
		require.NoError(t, rec.Flush())
		require.NoError(t, rec.Close())
	})
}

func TestRecorder_RoundTrip(t *testing.T) {
	rec := openTestRecorder(t)

	runID, err := rec.BeginRun(42)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	rec.RecordTick(0, "explore", action.Set{Right: true, Speed: true}, 0.7, 0.5, 0, 0)
	rec.RecordTick(1, "jump", action.Set{Right: true, Jump: true}, 0.7, 0.5, 0, 0)
	rec.RecordTransition(1, "explore", "jump")
	rec.RecordTransition(9, "jump", "explore")
	require.NoError(t, rec.Flush())

	transitions, err := rec.Transitions(runID)
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	require.Equal(t, "explore", transitions[0].From)
	require.Equal(t, "jump", transitions[0].To)
	require.Equal(t, 9, transitions[1].Tick)
}

func TestRecorder_FlushClearsBuffers(t *testing.T) {
	rec := openTestRecorder(t)

	runID, err := rec.BeginRun(1)
	require.NoError(t, err)

	rec.RecordTransition(3, "explore", "flee")
	require.NoError(t, rec.Flush())
	require.NoError(t, rec.Flush()) // nothing buffered: a no-op

	transitions, err := rec.Transitions(runID)
	require.NoError(t, err)
	require.Len(t, transitions, 1)
}

func TestRecorder_SeparateRuns(t *testing.T) {
	rec := openTestRecorder(t)

	first, err := rec.BeginRun(1)
	require.NoError(t, err)
	rec.RecordTransition(1, "explore", "jump")
	require.NoError(t, rec.Flush())

	second, err := rec.BeginRun(2)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	rec.RecordTransition(2, "explore", "collect")
	require.NoError(t, rec.Flush())

	transitions, err := rec.Transitions(first)
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	require.Equal(t, "jump", transitions[0].To)
}
