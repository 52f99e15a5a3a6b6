// Package deload decides whether a reduced-intensity training period
// should be recommended, based on the fatigue trend rather than any
// single score.
package deload

import (
	"fmt"
	"time"

	"github.com/strenlab/trainload/internal/trainload/aggregate"
	"github.com/strenlab/trainload/internal/trainload/fatigue"
)

// State can be one of:
//   - normal
//   - elevated
//   - overreaching
//   - deload_recommended
type State string

const (
	StateNormal            State = "normal"
	StateElevated          State = "elevated"
	StateOverreaching      State = "overreaching"
	StateDeloadRecommended State = "deload_recommended"
)

func (s State) String() string {
	return string(s)
}

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

type ReasonCode string

const (
	ReasonHighAcuteLoad           ReasonCode = "high_acute_load"
	ReasonSustainedVolumeIncrease ReasonCode = "sustained_volume_increase"
	ReasonMissedRecovery          ReasonCode = "missed_recovery"
)

type Config struct {
	// T1Score is the elevated-fatigue threshold, T2Score the
	// overreached one; both on the 0-100 fatigue scale.
	T1Score int `toml:"t1_score"`
	T2Score int `toml:"t2_score"`
	// SustainedPoints is how many consecutive points above T1 (with
	// volume still climbing) escalate Elevated to Overreaching.
	SustainedPoints int `toml:"sustained_points"`
	// MaxOverreachingPoints caps how long Overreaching may persist
	// before a deload is recommended regardless of T2.
	MaxOverreachingPoints int `toml:"max_overreaching_points"`
}

func DefaultConfig() Config {
	return Config{
		T1Score:               65,
		T2Score:               85,
		SustainedPoints:       3,
		MaxOverreachingPoints: 7,
	}
}

// Recommendation is recomputed on every query; acceptance or dismissal
// lives in the external approval workflow, not here.
type Recommendation struct {
	ID               string       `json:"id"`
	Recommended      bool         `json:"recommended"`
	State            State        `json:"state"`
	Severity         Severity     `json:"severity"`
	ReasonCodes      []ReasonCode `json:"reasonCodes"`
	GeneratedAt      time.Time    `json:"generatedAt"`
	InsufficientData bool         `json:"insufficientData"`
}

// Acknowledgment is the approval workflow's signal that the user saw
// (and acted on) a recommendation.
type Acknowledgment struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	RecommendationID string    `json:"recommendationId"`
	AckedAt          time.Time `json:"ackedAt"`
}

// Evaluate replays the whole fatigue history through the state machine
// and returns the resulting recommendation. State lives in the data:
// two calls over the same history and the same acknowledgment yield
// the same answer.
func Evaluate(
	cfg Config,
	assessment *fatigue.Assessment,
	buckets []aggregate.VolumeBucket,
	ack *Acknowledgment,
	asOf time.Time,
) Recommendation {
	if assessment == nil || assessment.Current.InsufficientData {
		return Recommendation{
			State:            StateNormal,
			Severity:         SeverityNone,
			ReasonCodes:      []ReasonCode{},
			GeneratedAt:      asOf,
			InsufficientData: true,
		}
	}

	loadAt := bucketLoadIndex(buckets)

	state := StateNormal
	aboveT1Streak := 0
	overreachingFor := 0
	recommendedAt := time.Time{}
	reasons := map[ReasonCode]bool{}

	for i, point := range assessment.Points {
		above1 := point.Score > cfg.T1Score
		if above1 {
			aboveT1Streak++
		} else {
			aboveT1Streak = 0
		}

		switch state {
		case StateNormal:
			overreachingFor = 0
			if above1 {
				state = StateElevated
			}
		case StateElevated:
			if !above1 {
				state = StateNormal
				break
			}
			if aboveT1Streak >= cfg.SustainedPoints && loadTrendRising(loadAt, assessment.Points, i) {
				state = StateOverreaching
				overreachingFor = 0
			}
		case StateOverreaching:
			if !above1 {
				state = StateNormal
				overreachingFor = 0
				break
			}
			overreachingFor++
			if point.Score > cfg.T2Score {
				state = StateDeloadRecommended
				recommendedAt = point.Timestamp
				reasons[ReasonHighAcuteLoad] = true
				reasons[ReasonSustainedVolumeIncrease] = true
			} else if overreachingFor > cfg.MaxOverreachingPoints {
				state = StateDeloadRecommended
				recommendedAt = point.Timestamp
				reasons[ReasonSustainedVolumeIncrease] = true
				reasons[ReasonMissedRecovery] = true
			}
		case StateDeloadRecommended:
			// leaving DeloadRecommended takes both the external ack and a
			// post-ack point back under T1; absent the ack we keep
			// recommending on every query
			if ack != nil && point.Timestamp.After(ack.AckedAt) && !above1 {
				state = StateNormal
				aboveT1Streak = 0
				overreachingFor = 0
				recommendedAt = time.Time{}
				reasons = map[ReasonCode]bool{}
			}
		}
	}

	rec := Recommendation{
		State:       state,
		Severity:    SeverityNone,
		ReasonCodes: reasonList(reasons),
		GeneratedAt: asOf,
	}

	if state == StateDeloadRecommended {
		rec.Recommended = true
		rec.ID = fmt.Sprintf("deload-%d", recommendedAt.Unix())
		latest := assessment.Points[len(assessment.Points)-1]
		rec.Severity = severityOf(cfg, latest.Score, overreachingFor)
	}

	return rec
}

func severityOf(cfg Config, latestScore, overreachingFor int) Severity {
	exceedance := latestScore - cfg.T2Score
	switch {
	case exceedance > 10 || overreachingFor > 2*cfg.MaxOverreachingPoints:
		return SeveritySevere
	case exceedance > 0 || overreachingFor > cfg.MaxOverreachingPoints:
		return SeverityModerate
	default:
		return SeverityMild
	}
}

// loadTrendRising reports whether the acute load behind point i is
// still higher than the acute load one point earlier.
func loadTrendRising(loadAt map[time.Time]float64, points []fatigue.Point, i int) bool {
	if i == 0 {
		return false
	}
	current, okCurrent := loadAt[points[i].Timestamp]
	previous, okPrevious := loadAt[points[i-1].Timestamp]
	if !okCurrent || !okPrevious {
		// buckets not supplied, fall back to the ratio trend
		return points[i].Ratio > points[i-1].Ratio
	}
	return current > previous
}

// bucketLoadIndex maps each bucket boundary to the trailing 7-bucket
// load ending there, the advisor's volume-trend signal.
func bucketLoadIndex(buckets []aggregate.VolumeBucket) map[time.Time]float64 {
	const trailing = 7
	index := make(map[time.Time]float64, len(buckets))
	var window float64
	for i, b := range buckets {
		window += b.TotalLoad
		if i >= trailing {
			window -= buckets[i-trailing].TotalLoad
		}
		index[b.PeriodEnd] = window
	}
	return index
}

func reasonList(reasons map[ReasonCode]bool) []ReasonCode {
	// stable order, it ends up in JSON responses
	ordered := []ReasonCode{ReasonHighAcuteLoad, ReasonSustainedVolumeIncrease, ReasonMissedRecovery}
	list := make([]ReasonCode, 0, len(reasons))
	for _, r := range ordered {
		if reasons[r] {
			list = append(list, r)
		}
	}
	return list
}
