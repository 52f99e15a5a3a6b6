package trainload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/strenlab/trainload/internal/auth"
	"github.com/strenlab/trainload/internal/telemetry/metrics"
	"github.com/strenlab/trainload/internal/telemetry/tracing"
	"github.com/strenlab/trainload/internal/trainload/aggregate"
	"github.com/strenlab/trainload/internal/trainload/deload"
	"github.com/strenlab/trainload/internal/trainload/fatigue"
	"github.com/strenlab/trainload/internal/trainload/journal"
	"github.com/strenlab/trainload/internal/trainload/prs"
	"github.com/strenlab/trainload/internal/trainload/records"
	"github.com/strenlab/trainload/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=trainload_test

type analytics interface {
	VolumeAnalytics(ctx context.Context, userID int64, window records.TimeRange, granularity aggregate.Granularity) ([]aggregate.VolumeBucket, error)
	FatigueAnalytics(ctx context.Context, userID int64, window records.TimeRange) (*fatigue.Assessment, error)
	DeloadRecommendation(ctx context.Context, userID int64) (*deload.Recommendation, error)
	AcknowledgeDeload(ctx context.Context, userID int64, recommendationID string) (*deload.Acknowledgment, error)
	PersonalRecords(ctx context.Context, userID int64, pageIndex, pageSize int) (_ []prs.PersonalRecord, hasMore bool, err error)
	CurrentPersonalRecord(ctx context.Context, userID int64, exerciseName string) (*prs.PersonalRecord, error)
	Journal(ctx context.Context, userID int64, limit int) ([]journal.Entry, error)
}

type VolumeResponse struct {
	Buckets     []aggregate.VolumeBucket `json:"buckets"`
	Granularity aggregate.Granularity    `json:"granularity"`
}

type PersonalRecordsResponse struct {
	Records []prs.PersonalRecord `json:"records"`
	HasMore bool                 `json:"hasMore"`
}

type AckDeloadRequest struct {
	RecommendationID string `json:"recommendationId"`
}

type AckDeloadResponse struct {
	AckID int64 `json:"ackId"`
}

type JournalResponse struct {
	Entries []journal.Entry `json:"entries"`
}

type Handler struct {
	service analytics
	metrics *metrics.Manager
}

func NewHandler(service analytics, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

// observeQuery counts one analytics query and times its computation.
func (handler *Handler) observeQuery(kind string) func() {
	handler.metrics.CounterAnalyticsQueries.WithLabelValues(kind).Inc()
	startedAt := time.Now()
	return func() {
		handler.metrics.HistAnalyticsDuration.
			WithLabelValues(kind).
			Observe(time.Since(startedAt).Seconds())
	}
}

func (handler *Handler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.volume")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	window, err := windowFromQuery(r)
	if err != nil {
		http.Error(w, "invalid time range", http.StatusBadRequest)
		return
	}

	granularity := aggregate.Granularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = aggregate.GranularityDay
	}

	observed := handler.observeQuery("volume")
	buckets, err := handler.service.VolumeAnalytics(ctx, userID, window, granularity)
	observed()
	if err != nil {
		log.Errorf("failed to get volume analytics for user %d: %s", userID, err)
		writeAnalyticsError(w, err)
		return
	}

	respJson, err := json.Marshal(VolumeResponse{
		Buckets:     buckets,
		Granularity: granularity,
	})
	if err != nil {
		log.Errorf("failed to marshal volume response: %s", err)
		http.Error(w, "failed to marshal volume response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleFatigue(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.fatigue")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	window, err := windowFromQuery(r)
	if err != nil {
		http.Error(w, "invalid time range", http.StatusBadRequest)
		return
	}

	observed := handler.observeQuery("fatigue")
	assessment, err := handler.service.FatigueAnalytics(ctx, userID, window)
	observed()
	if err != nil {
		log.Errorf("failed to get fatigue analytics for user %d: %s", userID, err)
		writeAnalyticsError(w, err)
		return
	}

	respJson, err := json.Marshal(assessment)
	if err != nil {
		log.Errorf("failed to marshal fatigue response: %s", err)
		http.Error(w, "failed to marshal fatigue response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.deload")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	observed := handler.observeQuery("deload")
	recommendation, err := handler.service.DeloadRecommendation(ctx, userID)
	observed()
	if err != nil {
		log.Errorf("failed to get deload recommendation for user %d: %s", userID, err)
		writeAnalyticsError(w, err)
		return
	}

	if recommendation.Recommended {
		handler.metrics.CounterDeloadRecommended.Inc()
	}

	respJson, err := json.Marshal(recommendation)
	if err != nil {
		log.Errorf("failed to marshal deload response: %s", err)
		http.Error(w, "failed to marshal deload response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleAckDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.deload.ack")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var ackReq AckDeloadRequest
	if err := json.NewDecoder(r.Body).Decode(&ackReq); err != nil {
		log.Tracef("ack deload, unmarshal json params: %s", err)
		http.Error(w, "ack deload failed", http.StatusBadRequest)
		return
	}
	if ackReq.RecommendationID == "" {
		http.Error(w, "error, recommendation id empty", http.StatusBadRequest)
		return
	}

	ack, err := handler.service.AcknowledgeDeload(ctx, userID, ackReq.RecommendationID)
	if err != nil {
		log.Errorf("failed to ack deload [%s] for user %d: %s", ackReq.RecommendationID, userID, err)
		writeAnalyticsError(w, err)
		return
	}
	handler.metrics.CounterDeloadAcks.Inc()

	respJson, err := json.Marshal(AckDeloadResponse{AckID: ack.ID})
	if err != nil {
		log.Errorf("failed to marshal ack response: %s", err)
		http.Error(w, "failed to marshal ack response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.prs")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle get prs page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle get prs page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 0 {
		http.Error(w, "invalid page (has to be non-negative)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	observed := handler.observeQuery("prs")
	prsPage, hasMore, err := handler.service.PersonalRecords(ctx, userID, page, size)
	observed()
	if err != nil {
		log.Errorf("failed to get personal records for user %d: %s", userID, err)
		writeAnalyticsError(w, err)
		return
	}

	respJson, err := json.Marshal(PersonalRecordsResponse{
		Records: prsPage,
		HasMore: hasMore,
	})
	if err != nil {
		log.Errorf("failed to marshal prs response: %s", err)
		http.Error(w, "failed to marshal prs response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleCurrentPR(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.prs.current")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	observed := handler.observeQuery("prs")
	record, err := handler.service.CurrentPersonalRecord(ctx, userID, exercise)
	observed()
	if err != nil {
		log.Errorf("failed to get current pr [%s] for user %d: %s", exercise, userID, err)
		writeAnalyticsError(w, err)
		return
	}

	if record == nil {
		http.Error(w, "no personal record", http.StatusNotFound)
		return
	}

	respJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal current pr response: %s", err)
		http.Error(w, "failed to marshal current pr response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleJournal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainload.journal")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	observed := handler.observeQuery("journal")
	entries, err := handler.service.Journal(ctx, userID, limit)
	observed()
	if err != nil {
		log.Errorf("failed to get journal for user %d: %s", userID, err)
		writeAnalyticsError(w, err)
		return
	}

	respJson, err := json.Marshal(JournalResponse{Entries: entries})
	if err != nil {
		log.Errorf("failed to marshal journal response: %s", err)
		http.Error(w, "failed to marshal journal response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// windowFromQuery reads from/to unix second timestamps. Both are
// required; validation of the range itself happens in the service.
func windowFromQuery(r *http.Request) (records.TimeRange, error) {
	fromSec, err := strconv.ParseInt(r.URL.Query().Get("from"), 10, 64)
	if err != nil {
		return records.TimeRange{}, err
	}
	toSec, err := strconv.ParseInt(r.URL.Query().Get("to"), 10, 64)
	if err != nil {
		return records.TimeRange{}, err
	}
	return records.TimeRange{
		From: time.Unix(fromSec, 0).UTC(),
		To:   time.Unix(toSec, 0).UTC(),
	}, nil
}

// writeAnalyticsError maps engine errors to status codes: caller
// mistakes to 400, record store failures to 502 so clients can tell
// them apart from bugs here.
func writeAnalyticsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, records.ErrInvalidRange) || errors.Is(err, records.ErrInvalidRecord):
		http.Error(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, deload.ErrAlreadyAcked):
		http.Error(w, "already acknowledged", http.StatusConflict)
	case errors.Is(err, records.ErrUpstreamUnavailable):
		http.Error(w, "record store unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
