// Package prs detects personal records over the raw set history.
package prs

import (
	"errors"
	"sort"
	"time"

	"github.com/strenlab/trainload/internal/trainload/records"
)

// PersonalRecord is a set flagged as the best effort for its exercise
// at the time it was performed. Derived, never persisted.
type PersonalRecord struct {
	SetID              int64     `json:"setId"`
	ExerciseName       string    `json:"exerciseName"`
	Weight             float64   `json:"weight"`
	Reps               int       `json:"reps"`
	AchievedAt         time.Time `json:"achievedAt"`
	EstimatedOneRepMax float64   `json:"estimatedOneRepMax"`
}

// OneRepMax is the Epley estimate: weight x (1 + reps/30). A set with
// zero reps estimates nothing.
func OneRepMax(weight float64, reps int) float64 {
	if reps == 0 {
		return 0
	}
	return weight * (1 + float64(reps)/30)
}

// History walks all sets in performance order and returns every set
// that strictly beat the best prior estimate for its exercise, in
// chronological order. Ties never count as new PRs, so re-grinding an
// identical effort does not re-flag it.
func History(sets []records.SetRecord) ([]PersonalRecord, error) {
	ordered := make([]records.SetRecord, len(sets))
	copy(ordered, sets)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].PerformedAt.Equal(ordered[j].PerformedAt) {
			return ordered[i].PerformedAt.Before(ordered[j].PerformedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	best := make(map[string]float64)
	history := make([]PersonalRecord, 0)
	for _, set := range ordered {
		if err := set.Validate(); err != nil {
			return nil, err
		}
		estimate := OneRepMax(set.Weight, set.Reps)
		if estimate <= best[set.ExerciseName] {
			continue
		}
		best[set.ExerciseName] = estimate
		history = append(history, PersonalRecord{
			SetID:              set.ID,
			ExerciseName:       set.ExerciseName,
			Weight:             set.Weight,
			Reps:               set.Reps,
			AchievedAt:         set.PerformedAt,
			EstimatedOneRepMax: estimate,
		})
	}

	return history, nil
}

// Current returns the PR of one exercise as of the given time: the set
// with the maximum estimate at or before asOf, earliest timestamp
// winning ties. Nil when no set qualifies.
func Current(sets []records.SetRecord, exerciseName string, asOf time.Time) (*PersonalRecord, error) {
	var filtered []records.SetRecord
	for _, set := range sets {
		if set.ExerciseName == exerciseName && !set.PerformedAt.After(asOf) {
			filtered = append(filtered, set)
		}
	}

	history, err := History(filtered)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	// the last history entry holds the highest estimate; earlier ties
	// were already skipped by the strict comparison
	pr := history[len(history)-1]
	return &pr, nil
}

// Page returns one page of PR history ordered (achievedAt DESC, setId
// DESC). The sort key makes pages stable: a PR logged after a page was
// delivered lands before it, it never reshuffles what was already
// read. hasMore is true iff the page came back exactly full; a short
// page is the authoritative end of history.
func Page(history []PersonalRecord, pageIndex, pageSize int) (_ []PersonalRecord, hasMore bool, err error) {
	if pageIndex < 0 {
		return nil, false, errors.New("page index must not be negative")
	}
	if pageSize < 1 {
		return nil, false, errors.New("page size must be greater than 0")
	}

	ordered := make([]PersonalRecord, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].AchievedAt.Equal(ordered[j].AchievedAt) {
			return ordered[i].AchievedAt.After(ordered[j].AchievedAt)
		}
		return ordered[i].SetID > ordered[j].SetID
	})

	start := pageIndex * pageSize
	if start >= len(ordered) {
		return []PersonalRecord{}, false, nil
	}
	end := start + pageSize
	if end > len(ordered) {
		end = len(ordered)
	}

	page := ordered[start:end]
	return page, len(page) == pageSize, nil
}
