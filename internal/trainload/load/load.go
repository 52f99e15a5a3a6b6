// Package load turns raw records into scalar training load
// contributions. Everything here is pure: no I/O, no clock, no state.
package load

import (
	"fmt"

	"github.com/strenlab/trainload/internal/trainload/records"
)

// Config holds the blending constants between strength volume and run
// effort. Tuning them never touches the algorithms below.
type Config struct {
	// RunLoadWeight scales a run's effort so it can be added to
	// strength volume in combined load computations.
	RunLoadWeight float64 `toml:"run_load_weight"`
	// ReferencePaceMPS is the pace (meters per second) that maps to a
	// pace factor of 1. Faster runs weigh proportionally more.
	ReferencePaceMPS float64 `toml:"reference_pace_mps"`
}

func DefaultConfig() Config {
	return Config{
		RunLoadWeight:    25,
		ReferencePaceMPS: 2.5,
	}
}

// Volume is weight x reps for one set, the engine-wide proxy for
// mechanical training load. Rejects negative inputs, never clamps.
func Volume(set records.SetRecord) (float64, error) {
	if err := set.Validate(); err != nil {
		return 0, err
	}
	return set.Weight * float64(set.Reps), nil
}

// TotalVolume sums set volumes; fails on the first invalid set.
func TotalVolume(sets []records.SetRecord) (float64, error) {
	var total float64
	for _, set := range sets {
		v, err := Volume(set)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

// RunEffort computes the duration- and pace-weighted load contribution
// of a run: minutes x paceFactor x RunLoadWeight, where paceFactor is
// the run's speed relative to the configured reference pace. A zero
// duration run contributes nothing.
func RunEffort(cfg Config, run records.RunRecord) (float64, error) {
	if err := run.Validate(); err != nil {
		return 0, err
	}
	if run.DurationSeconds == 0 {
		return 0, nil
	}
	if cfg.ReferencePaceMPS <= 0 {
		return 0, fmt.Errorf("reference pace must be positive, got %f", cfg.ReferencePaceMPS)
	}

	minutes := float64(run.DurationSeconds) / 60
	paceMPS := run.DistanceMeters / float64(run.DurationSeconds)
	paceFactor := paceMPS / cfg.ReferencePaceMPS

	return minutes * paceFactor * cfg.RunLoadWeight, nil
}
