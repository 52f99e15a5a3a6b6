// Package journal merges strength workouts and runs into one
// reverse-chronological activity feed.
package journal

import (
	"fmt"
	"sort"
	"time"

	"github.com/strenlab/trainload/internal/trainload/load"
	"github.com/strenlab/trainload/internal/trainload/records"
)

// Kind can be one of:
//   - strength
//   - run
type Kind string

const (
	KindStrength Kind = "strength"
	KindRun      Kind = "run"
)

// Entry is a pure view model, derived on every query.
type Entry struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Merge builds one entry per workout and per run, sorts the full
// candidate set newest first and only then truncates to limit.
// Truncating per source before merging would bias the feed toward
// whichever source logs denser recent records. A limit < 1 means no
// truncation. Equal timestamps order by kind, then by id, so the feed
// is deterministic.
func Merge(
	workouts []records.WorkoutLog,
	setsByWorkout map[int64][]records.SetRecord,
	runs []records.RunRecord,
	limit int,
) ([]Entry, error) {
	entries := make([]Entry, 0, len(workouts)+len(runs))

	for _, w := range workouts {
		sets := setsByWorkout[w.ID]
		volume, err := load.TotalVolume(sets)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:         fmt.Sprintf("workout-%d", w.ID),
			Kind:       KindStrength,
			Title:      w.Name,
			Summary:    fmt.Sprintf("%d sets, %.0f volume", len(sets), volume),
			OccurredAt: w.StartedAt,
		})
	}

	for _, run := range runs {
		if err := run.Validate(); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:         fmt.Sprintf("run-%d", run.ID),
			Kind:       KindRun,
			Title:      "Run",
			Summary:    runSummary(run),
			OccurredAt: run.StartedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].OccurredAt.Equal(entries[j].OccurredAt) {
			return entries[i].OccurredAt.After(entries[j].OccurredAt)
		}
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].ID < entries[j].ID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func runSummary(run records.RunRecord) string {
	km := run.DistanceMeters / 1000
	duration := time.Duration(run.DurationSeconds) * time.Second
	if run.DistanceMeters == 0 {
		return fmt.Sprintf("%.2f km in %s", km, duration)
	}
	paceSecPerKm := float64(run.DurationSeconds) / km
	pace := time.Duration(paceSecPerKm) * time.Second
	return fmt.Sprintf("%.2f km in %s (%s/km)", km, duration, pace)
}
