package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func summary(pool int, rate float64) fault.Summary {
	return fault.Summary{
		Pool: pool, K: 2, V: 13, Amplitude: 0.5,
		AvgSteps: 14.5, MinSteps: 12, MaxSteps: 18,
		AvgCoherence: 0.91, SuccessRate: rate, Trials: 4,
	}
}

func TestOpen_CreatesSchemaOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	v, err := getSchemaVersion(context.Background(), s.db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
	require.NoError(t, s.Close())

	// Reopening keeps the existing schema.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestScaling_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	in := &experiment.Scaling{
		Started:   started,
		Completed: started.Add(90 * time.Minute),
		MaxPool:   100,
		Trials:    4,
		Total:     2,
		Points: []experiment.ScalePoint{
			{Summary: summary(50, 1), TestTimeSec: 0.5},
			{Summary: summary(100, 0.75), TestTimeSec: 1.25},
		},
		AllPassed: false,
		Failures:  []int{100},
	}

	id, err := s.SaveScaling(ctx, in, 42)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	out, err := s.LoadScaling(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.InDelta(t, 1.5, out.DurationHours(), 1e-9)
}

func TestComparison_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	points := []experiment.ComparisonPoint{
		{
			Pool: 50, Seed: 13,
			Geometry:   experiment.StrategyStats{Steps: 14, Coherence: 0.92, SuccessRate: 1},
			Correction: experiment.StrategyStats{Steps: 9, Coherence: 0.93, Corrections: 180, SuccessRate: 1},
			Ratio:      180.0 / 13,
		},
		{
			Pool: 63, Seed: 13,
			Geometry:   experiment.StrategyStats{Steps: 16, Coherence: 0.91, SuccessRate: 1},
			Correction: experiment.StrategyStats{Steps: 9, Coherence: 0.94, Corrections: 230, SuccessRate: 1},
			Ratio:      230.0 / 13,
		},
	}
	in := &experiment.Comparison{MaxPool: 70, Trials: 2, Points: points, Summary: experiment.Summarize(points)}

	id, err := s.SaveComparison(ctx, in, 0)
	require.NoError(t, err)

	out, err := s.LoadComparison(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 14.0, out.Summary.GeometrySteps.Min)
	assert.Equal(t, 230.0, out.Summary.CorrectionCounts.Max)
}

func TestFault_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	in := summary(50, 1)
	id, err := s.SaveFault(ctx, in, 7)
	require.NoError(t, err)

	out, err := s.LoadFault(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	scaleID, err := s.SaveScaling(ctx, &experiment.Scaling{
		MaxPool: 50, Trials: 1, AllPassed: true,
		Points: []experiment.ScalePoint{{Summary: summary(50, 1)}},
	}, 1)
	require.NoError(t, err)
	faultID, err := s.SaveFault(ctx, summary(200, 0.5), 2)
	require.NoError(t, err)

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]Run{}
	for _, r := range runs {
		byID[r.ID] = r
		assert.False(t, r.CreatedAt.IsZero())
	}
	assert.Equal(t, KindScale, byID[scaleID].Kind)
	assert.True(t, byID[scaleID].AllPassed)
	assert.Equal(t, 1, byID[scaleID].Points)
	assert.Equal(t, int64(1), byID[scaleID].Seed)

	assert.Equal(t, KindFault, byID[faultID].Kind)
	assert.False(t, byID[faultID].AllPassed)
	assert.Equal(t, 200, byID[faultID].MaxPool)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.LoadScaling(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = s.LoadComparison(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = s.LoadFault(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, s.DeleteRun(ctx, "missing"), ErrRunNotFound)

	// A run of another kind is not found either.
	id, err := s.SaveFault(ctx, summary(50, 1), 0)
	require.NoError(t, err)
	_, err = s.LoadScaling(ctx, id)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestDeleteRun_Cascades(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	id, err := s.SaveFault(ctx, summary(50, 1), 0)
	require.NoError(t, err)
	require.NoError(t, s.DeleteRun(ctx, id))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fault_points`).Scan(&n))
	assert.Zero(t, n)
}

func TestScaling_InterruptedKeepsTotal(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	id, err := s.SaveScaling(ctx, &experiment.Scaling{
		MaxPool: 500, Trials: 1, Total: 4, AllPassed: true,
		Points: []experiment.ScalePoint{{Summary: summary(50, 1)}, {Summary: summary(100, 1)}},
	}, 3)
	require.NoError(t, err)

	out, err := s.LoadScaling(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	assert.Len(t, out.Points, 2)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Points)
	assert.Equal(t, 4, runs[0].Total)
}

func TestInitSchema_MigratesV1(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.SaveFault(ctx, summary(50, 1), 0)
	require.NoError(t, err)

	// Rewind the file to the v1 layout.
	for _, stmt := range []string{
		`ALTER TABLE runs DROP COLUMN total`,
		`DELETE FROM schema_version`,
		`INSERT INTO schema_version (version, applied_at) VALUES (1, datetime('now'))`,
	} {
		_, err := s.db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := getSchemaVersion(ctx, s.db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, 1, runs[0].Total)
}
