package records

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRecord marks raw records with negative or nonsensical
	// values. They get rejected at the boundary, never silently clamped.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidRange marks a malformed query time window.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrUpstreamUnavailable wraps record store failures. Retrying is up
	// to the caller, the engine itself never retries.
	ErrUpstreamUnavailable = errors.New("record store unavailable")
)

// SetRecord is a single logged strength set. Immutable once logged,
// owned by the workout it belongs to.
type SetRecord struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	WorkoutID    int64     `json:"workoutId"`
	ExerciseName string    `json:"exerciseName"`
	MuscleGroup  string    `json:"muscleGroup"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	RPE          *float64  `json:"rpe,omitempty"`
	PerformedAt  time.Time `json:"performedAt"`
}

func (s SetRecord) Validate() error {
	if s.Weight < 0 {
		return fmt.Errorf("%w: set %d has negative weight", ErrInvalidRecord, s.ID)
	}
	if s.Reps < 0 {
		return fmt.Errorf("%w: set %d has negative reps", ErrInvalidRecord, s.ID)
	}
	if s.RPE != nil && (*s.RPE < 0 || *s.RPE > 10) {
		return fmt.Errorf("%w: set %d has rpe out of [0, 10]", ErrInvalidRecord, s.ID)
	}
	return nil
}

// RunRecord is a single logged endurance run. Immutable.
type RunRecord struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	DistanceMeters  float64   `json:"distanceMeters"`
	DurationSeconds int       `json:"durationSeconds"`
	StartedAt       time.Time `json:"startedAt"`
}

func (r RunRecord) Validate() error {
	if r.DistanceMeters < 0 {
		return fmt.Errorf("%w: run %d has negative distance", ErrInvalidRecord, r.ID)
	}
	if r.DurationSeconds < 0 {
		return fmt.Errorf("%w: run %d has negative duration", ErrInvalidRecord, r.ID)
	}
	return nil
}

// WorkoutLog groups the sets performed in one session; set insertion
// order is performance order.
type WorkoutLog struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Name      string     `json:"name"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// TimeRange is a half-open query window [From, To).
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (tr TimeRange) Validate() error {
	if !tr.To.After(tr.From) {
		return fmt.Errorf("%w: window end must be after window start", ErrInvalidRange)
	}
	return nil
}

func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.From) && t.Before(tr.To)
}
