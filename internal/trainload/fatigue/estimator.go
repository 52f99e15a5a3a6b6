// Package fatigue derives an acute:chronic workload ratio series from
// a dense volume bucket series.
package fatigue

import (
	"errors"
	"math"
	"time"

	"github.com/strenlab/trainload/internal/trainload/aggregate"
)

// ErrSparseSeries means the input buckets do not form a gap-free,
// ordered series. The estimator refuses to compute over gaps instead
// of producing a silently skewed ratio.
var ErrSparseSeries = errors.New("volume bucket series is not dense")

// neutralScore is what an acute:chronic ratio of exactly 1 maps to.
const neutralScore = 50

type Config struct {
	// AcuteBuckets is the short-term window, in buckets (trailing days
	// for daily granularity).
	AcuteBuckets int `toml:"acute_buckets"`
	// ChronicBuckets is the long-term window the acute load is compared
	// against. Also the minimum history needed for any score at all.
	ChronicBuckets int `toml:"chronic_buckets"`
}

func DefaultConfig() Config {
	return Config{
		AcuteBuckets:   7,
		ChronicBuckets: 28,
	}
}

// Point is one fatigue score at a bucket boundary.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"`
	Ratio     float64   `json:"ratio"`
}

// Current is the latest fatigue state. InsufficientData set means
// there is not yet one full chronic window of history and no score was
// fabricated; downstream advisors must not act on it.
type Current struct {
	Score            int     `json:"score"`
	Ratio            float64 `json:"ratio"`
	InsufficientData bool    `json:"insufficientData"`
}

type Assessment struct {
	Points  []Point `json:"points"`
	Current Current `json:"current"`
}

// Estimate computes one fatigue point per bucket boundary, for every
// boundary with a full chronic window behind it. Deterministic and
// stateless: same buckets in, same assessment out.
func Estimate(cfg Config, buckets []aggregate.VolumeBucket) (*Assessment, error) {
	if cfg.AcuteBuckets < 1 || cfg.ChronicBuckets < cfg.AcuteBuckets {
		return nil, errors.New("fatigue windows misconfigured: need 1 <= acute <= chronic")
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i].PeriodStart.Equal(buckets[i-1].PeriodEnd) {
			return nil, ErrSparseSeries
		}
	}

	assessment := &Assessment{
		Points: make([]Point, 0),
	}

	for i := cfg.ChronicBuckets - 1; i < len(buckets); i++ {
		var acute float64
		for j := i - cfg.AcuteBuckets + 1; j <= i; j++ {
			acute += buckets[j].TotalLoad
		}
		var chronic float64
		for j := i - cfg.ChronicBuckets + 1; j <= i; j++ {
			chronic += buckets[j].TotalLoad
		}
		// chronic load scaled to the acute window length, so a perfectly
		// flat history yields a ratio of exactly 1
		chronicScaled := chronic * float64(cfg.AcuteBuckets) / float64(cfg.ChronicBuckets)

		ratio := ratioOf(acute, chronicScaled)
		assessment.Points = append(assessment.Points, Point{
			Timestamp: buckets[i].PeriodEnd,
			Score:     scoreOf(ratio),
			Ratio:     ratio,
		})
	}

	if len(assessment.Points) == 0 {
		assessment.Current = Current{InsufficientData: true}
		return assessment, nil
	}

	latest := assessment.Points[len(assessment.Points)-1]
	assessment.Current = Current{
		Score: latest.Score,
		Ratio: latest.Ratio,
	}
	return assessment, nil
}

func ratioOf(acute, chronicScaled float64) float64 {
	if chronicScaled == 0 {
		if acute == 0 {
			return 0
		}
		// training resumed after a fully empty chronic window, treat as
		// a maximal spike
		return 2
	}
	return acute / chronicScaled
}

func scoreOf(ratio float64) int {
	score := int(math.Round(ratio * neutralScore))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
