// Package trainload is the training-load analytics engine: it reads
// raw workout records from the record store and derives volume trends,
// fatigue scores, deload recommendations, personal records and the
// activity journal. All derived results are recomputed from raw
// records on every query; nothing here is a source of truth.
package trainload

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/strenlab/trainload/internal/telemetry/tracing"
	"github.com/strenlab/trainload/internal/trainload/aggregate"
	"github.com/strenlab/trainload/internal/trainload/deload"
	"github.com/strenlab/trainload/internal/trainload/fatigue"
	"github.com/strenlab/trainload/internal/trainload/journal"
	"github.com/strenlab/trainload/internal/trainload/load"
	"github.com/strenlab/trainload/internal/trainload/prs"
	"github.com/strenlab/trainload/internal/trainload/records"

	"github.com/coocood/freecache"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=trainload_test

type recordsRepo interface {
	ListSets(ctx context.Context, userID int64, tr records.TimeRange) ([]records.SetRecord, error)
	ListRuns(ctx context.Context, userID int64, tr records.TimeRange) ([]records.RunRecord, error)
	ListWorkouts(ctx context.Context, userID int64, tr records.TimeRange) ([]records.WorkoutLog, error)
}

type acksRepo interface {
	Add(ctx context.Context, ack deload.Acknowledgment) (*deload.Acknowledgment, error)
	Latest(ctx context.Context, userID int64) (*deload.Acknowledgment, error)
}

// deloadHorizon is how far back the advisor replays history on each
// evaluation.
const deloadHorizon = 120 * 24 * time.Hour

const volumeCacheTTLSeconds = 60

type Config struct {
	Load    load.Config    `toml:"load"`
	Fatigue fatigue.Config `toml:"fatigue"`
	Deload  deload.Config  `toml:"deload"`
}

func DefaultConfig() Config {
	return Config{
		Load:    load.DefaultConfig(),
		Fatigue: fatigue.DefaultConfig(),
		Deload:  deload.DefaultConfig(),
	}
}

type Service struct {
	repo recordsRepo
	acks acksRepo
	cfg  Config

	// read-through cache over recomputed aggregates; purely an
	// optimization, correctness never depends on it
	cache *freecache.Cache

	// injectable clock for deterministic tests
	NowFunc func() time.Time
}

func NewService(repo recordsRepo, acks acksRepo, cfg Config, cache *freecache.Cache) *Service {
	return &Service{
		repo:    repo,
		acks:    acks,
		cfg:     cfg,
		cache:   cache,
		NowFunc: time.Now,
	}
}

// VolumeAnalytics returns the dense volume bucket series for the
// window, one bucket per granularity period.
func (s *Service) VolumeAnalytics(
	ctx context.Context,
	userID int64,
	window records.TimeRange,
	granularity aggregate.Granularity,
) (_ []aggregate.VolumeBucket, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.volume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))
	span.SetAttributes(attribute.String("granularity", granularity.String()))

	if err := window.Validate(); err != nil {
		return nil, err
	}
	if !granularity.IsValid() {
		return nil, fmt.Errorf("%w: unknown granularity %q", records.ErrInvalidRange, granularity)
	}

	cacheKey := []byte(fmt.Sprintf("vol|%d|%d|%d|%s", userID, window.From.Unix(), window.To.Unix(), granularity))
	if s.cache != nil {
		if cached, err := s.cache.Get(cacheKey); err == nil {
			var buckets []aggregate.VolumeBucket
			if err := json.Unmarshal(cached, &buckets); err == nil {
				span.SetAttributes(attribute.Bool("cache_hit", true))
				return buckets, nil
			}
		}
	}

	sets, runs, err := s.fetchSetsAndRuns(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	buckets, err := aggregate.Aggregate(s.cfg.Load, sets, runs, window, granularity)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(buckets); err == nil {
			_ = s.cache.Set(cacheKey, encoded, volumeCacheTTLSeconds)
		}
	}

	return buckets, nil
}

// FatigueAnalytics computes the fatigue point series over the window
// from daily buckets. A user with no records in the window gets an
// insufficient-data result, never an error.
func (s *Service) FatigueAnalytics(
	ctx context.Context,
	userID int64,
	window records.TimeRange,
) (_ *fatigue.Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.fatigue")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	assessment, _, err := s.assessFatigue(ctx, userID, window)
	return assessment, err
}

// DeloadRecommendation replays the recent fatigue history through the
// advisor state machine. Absent an acknowledgment from the approval
// workflow it keeps recommending on every call.
func (s *Service) DeloadRecommendation(ctx context.Context, userID int64) (_ *deload.Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.deload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	now := s.NowFunc().UTC()
	window := records.TimeRange{
		From: aggregate.GranularityDay.BucketStart(now.Add(-deloadHorizon)),
		To:   aggregate.GranularityDay.BucketStart(now).AddDate(0, 0, 1),
	}

	assessment, buckets, err := s.assessFatigue(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	ack, err := s.acks.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := deload.Evaluate(s.cfg.Deload, assessment, buckets, ack, now)
	return &rec, nil
}

// AcknowledgeDeload records the approval workflow's signal that the
// user accepted (or dismissed) a recommendation.
func (s *Service) AcknowledgeDeload(ctx context.Context, userID int64, recommendationID string) (_ *deload.Acknowledgment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.deload.ack")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	return s.acks.Add(ctx, deload.Acknowledgment{
		UserID:           userID,
		RecommendationID: recommendationID,
		AckedAt:          s.NowFunc().UTC(),
	})
}

// PersonalRecords pages through the PR history, newest first. hasMore
// is true iff the page came back exactly full.
func (s *Service) PersonalRecords(
	ctx context.Context,
	userID int64,
	pageIndex, pageSize int,
) (_ []prs.PersonalRecord, hasMore bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.prs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))
	span.SetAttributes(attribute.Int("page", pageIndex))
	span.SetAttributes(attribute.Int("size", pageSize))

	sets, err := s.repo.ListSets(ctx, userID, s.allHistory())
	if err != nil {
		return nil, false, err
	}

	history, err := prs.History(sets)
	if err != nil {
		return nil, false, err
	}

	return prs.Page(history, pageIndex, pageSize)
}

// CurrentPersonalRecord returns the best effort of one exercise as of
// now, or nil when the user never logged it.
func (s *Service) CurrentPersonalRecord(
	ctx context.Context,
	userID int64,
	exerciseName string,
) (_ *prs.PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.prs.current")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))
	span.SetAttributes(attribute.String("exercise", exerciseName))

	sets, err := s.repo.ListSets(ctx, userID, s.allHistory())
	if err != nil {
		return nil, err
	}

	return prs.Current(sets, exerciseName, s.NowFunc().UTC())
}

// Journal merges workouts and runs into the reverse-chronological
// activity feed, truncated to limit after the full merge.
func (s *Service) Journal(ctx context.Context, userID int64, limit int) (_ []journal.Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainload.journal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user_id", userID))

	window := s.allHistory()

	workouts, err := s.repo.ListWorkouts(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	sets, runs, err := s.fetchSetsAndRuns(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	setsByWorkout := make(map[int64][]records.SetRecord)
	for _, set := range sets {
		setsByWorkout[set.WorkoutID] = append(setsByWorkout[set.WorkoutID], set)
	}

	return journal.Merge(workouts, setsByWorkout, runs, limit)
}

// assessFatigue builds the daily bucket series behind the fatigue
// estimate. The series starts at the user's first record inside the
// window, so missing leading history shows up as insufficient data
// instead of being zero-filled into a fake baseline.
func (s *Service) assessFatigue(
	ctx context.Context,
	userID int64,
	window records.TimeRange,
) (*fatigue.Assessment, []aggregate.VolumeBucket, error) {
	if err := window.Validate(); err != nil {
		return nil, nil, err
	}

	sets, runs, err := s.fetchSetsAndRuns(ctx, userID, window)
	if err != nil {
		return nil, nil, err
	}

	if len(sets) == 0 && len(runs) == 0 {
		return &fatigue.Assessment{
			Points:  make([]fatigue.Point, 0),
			Current: fatigue.Current{InsufficientData: true},
		}, nil, nil
	}

	effective := records.TimeRange{
		From: aggregate.GranularityDay.BucketStart(s.earliestRecord(sets, runs)),
		To:   window.To,
	}

	buckets, err := aggregate.Aggregate(s.cfg.Load, sets, runs, effective, aggregate.GranularityDay)
	if err != nil {
		return nil, nil, err
	}

	assessment, err := fatigue.Estimate(s.cfg.Fatigue, buckets)
	if err != nil {
		return nil, nil, err
	}
	return assessment, buckets, nil
}

// fetchSetsAndRuns reads both record streams concurrently; they are
// independent reads over the same immutable snapshot.
func (s *Service) fetchSetsAndRuns(
	ctx context.Context,
	userID int64,
	window records.TimeRange,
) ([]records.SetRecord, []records.RunRecord, error) {
	var (
		wg      sync.WaitGroup
		sets    []records.SetRecord
		runs    []records.RunRecord
		setsErr error
		runsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sets, setsErr = s.repo.ListSets(ctx, userID, window)
	}()
	go func() {
		defer wg.Done()
		runs, runsErr = s.repo.ListRuns(ctx, userID, window)
	}()
	wg.Wait()

	if setsErr != nil {
		return nil, nil, setsErr
	}
	if runsErr != nil {
		return nil, nil, runsErr
	}
	return sets, runs, nil
}

func (s *Service) earliestRecord(sets []records.SetRecord, runs []records.RunRecord) time.Time {
	var earliest time.Time
	for _, set := range sets {
		if earliest.IsZero() || set.PerformedAt.Before(earliest) {
			earliest = set.PerformedAt
		}
	}
	for _, run := range runs {
		if earliest.IsZero() || run.StartedAt.Before(earliest) {
			earliest = run.StartedAt
		}
	}
	return earliest
}

func (s *Service) allHistory() records.TimeRange {
	return records.TimeRange{
		From: time.Unix(0, 0).UTC(),
		To:   s.NowFunc().UTC().Add(time.Hour),
	}
}
