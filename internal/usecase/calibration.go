package usecase

import (
	"fmt"
	"time"

	"github.com/arklim/credguard/internal/core/port"
)

// calibrationPlaintext is the fixed representative password used for timing
// runs, so measurements are comparable across machines and invocations.
const calibrationPlaintext = "correct horse battery staple"

// Measurement pairs a cost parameter with the observed hash duration.
type Measurement struct {
	Cost    port.Cost
	Elapsed time.Duration
}

// CalibrationService measures wall-clock hashing cost for operator tuning.
// Results are advisory only; nothing auto-tunes from them.
type CalibrationService struct {
	hasher port.PasswordHasher
}

// NewCalibrationService constructs a calibrator over the given backend.
func NewCalibrationService(hasher port.PasswordHasher) (*CalibrationService, error) {
	if hasher == nil {
		return nil, fmt.Errorf("hasher is required")
	}
	return &CalibrationService{hasher: hasher}, nil
}

// Measure hashes the representative password once at the given cost and
// returns the elapsed time. Backend errors surface unchanged.
func (s *CalibrationService) Measure(cost port.Cost) (time.Duration, error) {
	start := time.Now()
	if _, err := s.hasher.Hash(calibrationPlaintext, cost); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// MeasureRange measures every cost in [from, to] ascending by step. It stops
// at the first backend error so an out-of-range cost fails fast.
func (s *CalibrationService) MeasureRange(from, to, step port.Cost) ([]Measurement, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	if from > to {
		return nil, fmt.Errorf("invalid cost range [%d, %d]", from, to)
	}

	var results []Measurement
	for cost := from; cost <= to; cost += step {
		elapsed, err := s.Measure(cost)
		if err != nil {
			return results, fmt.Errorf("measure cost %d: %w", cost, err)
		}
		results = append(results, Measurement{Cost: cost, Elapsed: elapsed})
	}
	return results, nil
}
