package records_test

import (
	"testing"
	"time"

	"github.com/strenlab/trainload/internal/trainload/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRecord_Validate(t *testing.T) {
	validRPE := 8.5
	set := records.SetRecord{
		ID:           1,
		UserID:       1,
		ExerciseName: "Deadlift",
		Weight:       140,
		Reps:         3,
		RPE:          &validRPE,
		PerformedAt:  time.Now(),
	}
	require.NoError(t, set.Validate())

	set.Weight = -1
	assert.ErrorIs(t, set.Validate(), records.ErrInvalidRecord)

	set.Weight = 140
	set.Reps = -1
	assert.ErrorIs(t, set.Validate(), records.ErrInvalidRecord)

	set.Reps = 3
	badRPE := 10.5
	set.RPE = &badRPE
	assert.ErrorIs(t, set.Validate(), records.ErrInvalidRecord)

	// zero reps is a valid (if useless) record
	set.RPE = nil
	set.Reps = 0
	require.NoError(t, set.Validate())
}

func TestRunRecord_Validate(t *testing.T) {
	run := records.RunRecord{
		ID:              1,
		UserID:          1,
		DistanceMeters:  5000,
		DurationSeconds: 1500,
		StartedAt:       time.Now(),
	}
	require.NoError(t, run.Validate())

	run.DistanceMeters = -1
	assert.ErrorIs(t, run.Validate(), records.ErrInvalidRecord)

	run.DistanceMeters = 5000
	run.DurationSeconds = -1
	assert.ErrorIs(t, run.Validate(), records.ErrInvalidRecord)
}

func TestTimeRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	tr := records.TimeRange{From: from, To: to}
	require.NoError(t, tr.Validate())

	// empty and inverted windows are both invalid
	assert.ErrorIs(t, records.TimeRange{From: from, To: from}.Validate(), records.ErrInvalidRange)
	assert.ErrorIs(t, records.TimeRange{From: to, To: from}.Validate(), records.ErrInvalidRange)

	// half-open: From inclusive, To exclusive
	assert.True(t, tr.Contains(from))
	assert.True(t, tr.Contains(to.Add(-time.Second)))
	assert.False(t, tr.Contains(to))
	assert.False(t, tr.Contains(from.Add(-time.Second)))
}
