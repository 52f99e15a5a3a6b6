package records

import (
	"context"
	"fmt"

	"github.com/strenlab/trainload/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the record store boundary. The engine only ever reads from
// it; writes come from the logging endpoints of the surrounding app.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListSets returns all strength sets of a user in [from, to), ordered
// by performed_at ascending. The muscle group comes from the exercise
// metadata table, not from the raw set row.
func (r *Repo) ListSets(ctx context.Context, userID int64, tr TimeRange) (_ []SetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainload.listsets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))
	span.SetAttributes(attribute.String("from", tr.From.String()))
	span.SetAttributes(attribute.String("to", tr.To.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				s.id, s.user_id, s.workout_id, s.exercise_name, et.muscle_group,
				s.weight, s.reps, s.rpe, s.performed_at
			FROM set_record s
			JOIN exercise_type et ON s.exercise_name = et.exercise_name
				WHERE s.user_id = $1
				AND s.performed_at >= $2
				AND s.performed_at < $3
			ORDER BY s.performed_at ASC, s.id ASC;`,
		userID, tr.From, tr.To,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query sets: %s", ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	sets := make([]SetRecord, 0)
	for rows.Next() {
		var s SetRecord
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.WorkoutID, &s.ExerciseName, &s.MuscleGroup,
			&s.Weight, &s.Reps, &s.RPE, &s.PerformedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan set: %s", ErrUpstreamUnavailable, err)
		}
		sets = append(sets, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %s", ErrUpstreamUnavailable, err)
	}

	return sets, nil
}

// ListRuns returns all runs of a user in [from, to), ordered by
// started_at ascending.
func (r *Repo) ListRuns(ctx context.Context, userID int64, tr TimeRange) (_ []RunRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainload.listruns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, distance_meters, duration_seconds, started_at
			FROM run_record
				WHERE user_id = $1
				AND started_at >= $2
				AND started_at < $3
			ORDER BY started_at ASC, id ASC;`,
		userID, tr.From, tr.To,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query runs: %s", ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	runs := make([]RunRecord, 0)
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(
			&run.ID, &run.UserID, &run.DistanceMeters, &run.DurationSeconds, &run.StartedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan run: %s", ErrUpstreamUnavailable, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %s", ErrUpstreamUnavailable, err)
	}

	return runs, nil
}

// ListWorkouts returns all workout logs of a user in [from, to),
// ordered by started_at ascending.
func (r *Repo) ListWorkouts(ctx context.Context, userID int64, tr TimeRange) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainload.listworkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, name, started_at, ended_at
			FROM workout_log
				WHERE user_id = $1
				AND started_at >= $2
				AND started_at < $3
			ORDER BY started_at ASC, id ASC;`,
		userID, tr.From, tr.To,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query workouts: %s", ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	workouts := make([]WorkoutLog, 0)
	for rows.Next() {
		var w WorkoutLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.StartedAt, &w.EndedAt); err != nil {
			return nil, fmt.Errorf("%w: scan workout: %s", ErrUpstreamUnavailable, err)
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %s", ErrUpstreamUnavailable, err)
	}

	return workouts, nil
}
