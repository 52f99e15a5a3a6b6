package load_test

import (
	"testing"
	"time"

	"github.com/strenlab/trainload/internal/trainload/load"
	"github.com/strenlab/trainload/internal/trainload/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolume(t *testing.T) {
	set := records.SetRecord{
		ID:           1,
		UserID:       1,
		ExerciseName: "Bench Press",
		Weight:       100,
		Reps:         5,
		PerformedAt:  time.Now(),
	}

	volume, err := load.Volume(set)
	require.NoError(t, err)
	assert.Equal(t, float64(500), volume)
}

func TestVolume_ZeroWeight(t *testing.T) {
	// bodyweight movements log zero weight, their volume is zero but
	// the set itself is valid
	set := records.SetRecord{
		ID:           1,
		UserID:       1,
		ExerciseName: "Pull Up",
		Weight:       0,
		Reps:         12,
		PerformedAt:  time.Now(),
	}

	volume, err := load.Volume(set)
	require.NoError(t, err)
	assert.Zero(t, volume)
}

func TestVolume_InvalidRecord(t *testing.T) {
	invalidRPE := 11.5
	testCases := []struct {
		name string
		set  records.SetRecord
	}{
		{
			name: "negative weight",
			set:  records.SetRecord{Weight: -10, Reps: 5, PerformedAt: time.Now()},
		},
		{
			name: "negative reps",
			set:  records.SetRecord{Weight: 100, Reps: -1, PerformedAt: time.Now()},
		},
		{
			name: "rpe out of range",
			set:  records.SetRecord{Weight: 100, Reps: 5, RPE: &invalidRPE, PerformedAt: time.Now()},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load.Volume(tc.set)
			assert.ErrorIs(t, err, records.ErrInvalidRecord)
		})
	}
}

func TestTotalVolume(t *testing.T) {
	sets := []records.SetRecord{
		{Weight: 100, Reps: 5, PerformedAt: time.Now()},
		{Weight: 80, Reps: 10, PerformedAt: time.Now()},
		{Weight: 60, Reps: 12, PerformedAt: time.Now()},
	}

	total, err := load.TotalVolume(sets)
	require.NoError(t, err)
	assert.Equal(t, float64(500+800+720), total)

	total, err = load.TotalVolume(nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunEffort(t *testing.T) {
	cfg := load.DefaultConfig()

	// 3km in 20min, exactly the reference pace
	run := records.RunRecord{
		ID:              1,
		UserID:          1,
		DistanceMeters:  3000,
		DurationSeconds: 1200,
		StartedAt:       time.Now(),
	}

	effort, err := load.RunEffort(cfg, run)
	require.NoError(t, err)
	assert.InDelta(t, 20*cfg.RunLoadWeight, effort, 0.001)

	// double the pace doubles the effort
	run.DurationSeconds = 600
	effort, err = load.RunEffort(cfg, run)
	require.NoError(t, err)
	assert.InDelta(t, 10*2*cfg.RunLoadWeight, effort, 0.001)
}

func TestRunEffort_ZeroDuration(t *testing.T) {
	effort, err := load.RunEffort(load.DefaultConfig(), records.RunRecord{
		DistanceMeters: 1000,
		StartedAt:      time.Now(),
	})
	require.NoError(t, err)
	assert.Zero(t, effort)
}

func TestRunEffort_InvalidRecord(t *testing.T) {
	_, err := load.RunEffort(load.DefaultConfig(), records.RunRecord{
		DistanceMeters:  -5,
		DurationSeconds: 600,
		StartedAt:       time.Now(),
	})
	assert.ErrorIs(t, err, records.ErrInvalidRecord)
}
