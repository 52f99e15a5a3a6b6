package deload

import (
	"context"
	"errors"
	"fmt"

	"github.com/strenlab/trainload/internal/telemetry/tracing"
	"github.com/strenlab/trainload/internal/trainload/records"
	"github.com/strenlab/trainload/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// ErrAlreadyAcked means this recommendation was acknowledged before;
// deload_ack is unique per (user_id, recommendation_id).
var ErrAlreadyAcked = errors.New("recommendation already acknowledged")

// Repo stores deload acknowledgments written by the external approval
// workflow. The advisor only ever reads the latest one per user.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, ack Acknowledgment) (_ *Acknowledgment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.deload.ack.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", ack.UserID))
	span.SetAttributes(attribute.String("recommendation_id", ack.RecommendationID))

	err = r.db.QueryRow(ctx, `
		INSERT INTO deload_ack (user_id, recommendation_id, acked_at)
		VALUES ($1, $2, $3)
		RETURNING id;
	`,
		ack.UserID, ack.RecommendationID, ack.AckedAt,
	).Scan(&ack.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrAlreadyAcked
		}
		return nil, fmt.Errorf("%w: insert ack: %s", records.ErrUpstreamUnavailable, err)
	}
	return &ack, nil
}

// Latest returns the most recent acknowledgment of the user, or nil
// when none was ever recorded.
func (r *Repo) Latest(ctx context.Context, userID int64) (_ *Acknowledgment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.deload.ack.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	ack := &Acknowledgment{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, recommendation_id, acked_at
		FROM deload_ack
		WHERE user_id = $1
		ORDER BY acked_at DESC, id DESC
		LIMIT 1;
	`, userID).Scan(&ack.ID, &ack.UserID, &ack.RecommendationID, &ack.AckedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: query latest ack: %s", records.ErrUpstreamUnavailable, err)
	}
	return ack, nil
}
