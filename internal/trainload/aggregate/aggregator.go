// Package aggregate groups raw records into dense time buckets and
// per-muscle-group volume totals.
package aggregate

import (
	"fmt"
	"time"

	"github.com/strenlab/trainload/internal/trainload/load"
	"github.com/strenlab/trainload/internal/trainload/records"
)

// Granularity can be one of:
//   - day
//   - week (Monday 00:00 UTC boundary)
//   - month
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) String() string {
	return string(g)
}

func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	default:
		return false
	}
}

// BucketStart normalizes t to the start of its bucket, in UTC.
func (g Granularity) BucketStart(t time.Time) time.Time {
	t = t.UTC()
	switch g {
	case GranularityWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// Monday = 0
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func (g Granularity) next(bucketStart time.Time) time.Time {
	switch g {
	case GranularityWeek:
		return bucketStart.AddDate(0, 0, 7)
	case GranularityMonth:
		return bucketStart.AddDate(0, 1, 0)
	default:
		return bucketStart.AddDate(0, 0, 1)
	}
}

// VolumeBucket is the derived volume total of one half-open period
// [PeriodStart, PeriodEnd). Recomputed on demand, never persisted.
type VolumeBucket struct {
	PeriodStart         time.Time          `json:"periodStart"`
	PeriodEnd           time.Time          `json:"periodEnd"`
	TotalSets           int                `json:"totalSets"`
	TotalVolume         float64            `json:"totalVolume"`
	TotalLoad           float64            `json:"totalLoad"`
	VolumeByMuscleGroup map[string]float64 `json:"volumeByMuscleGroup"`
}

// Aggregate partitions the given records into dense buckets covering
// the whole window: every record lands in exactly one bucket, and
// empty buckets are emitted with zero totals (the fatigue estimator
// needs a gap-free series). TotalLoad blends strength volume with the
// configured run effort, TotalVolume stays strength-only.
func Aggregate(
	cfg load.Config,
	sets []records.SetRecord,
	runs []records.RunRecord,
	window records.TimeRange,
	granularity Granularity,
) ([]VolumeBucket, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if !granularity.IsValid() {
		return nil, fmt.Errorf("%w: unknown granularity %q", records.ErrInvalidRange, granularity)
	}

	var buckets []VolumeBucket
	start2index := make(map[time.Time]int)
	for start := granularity.BucketStart(window.From); start.Before(window.To); start = granularity.next(start) {
		start2index[start] = len(buckets)
		buckets = append(buckets, VolumeBucket{
			PeriodStart:         start,
			PeriodEnd:           granularity.next(start),
			VolumeByMuscleGroup: make(map[string]float64),
		})
	}

	for _, set := range sets {
		if !window.Contains(set.PerformedAt) {
			continue
		}
		volume, err := load.Volume(set)
		if err != nil {
			return nil, err
		}
		i := start2index[granularity.BucketStart(set.PerformedAt)]
		buckets[i].TotalSets++
		buckets[i].TotalVolume += volume
		buckets[i].TotalLoad += volume
		buckets[i].VolumeByMuscleGroup[set.MuscleGroup] += volume
	}

	for _, run := range runs {
		if !window.Contains(run.StartedAt) {
			continue
		}
		effort, err := load.RunEffort(cfg, run)
		if err != nil {
			return nil, err
		}
		i := start2index[granularity.BucketStart(run.StartedAt)]
		buckets[i].TotalLoad += effort
	}

	return buckets, nil
}
