package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/arklim/credguard/internal/core/port"
	"github.com/arklim/credguard/internal/infra/security"
)

// slowHasher simulates a backend with a fixed per-hash cost.
type slowHasher struct {
	delay time.Duration
	err   error
}

func (s *slowHasher) Hash(password string, cost port.Cost) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	time.Sleep(s.delay)
	return "hashed", nil
}

func (s *slowHasher) Verify(password, encoded string) (bool, error) {
	return false, nil
}

func (s *slowHasher) DefaultCost() port.Cost {
	return 1
}

func TestMeasureReportsElapsedTime(t *testing.T) {
	svc, err := NewCalibrationService(&slowHasher{delay: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewCalibrationService returned error: %v", err)
	}

	elapsed, err := svc.Measure(1)
	if err != nil {
		t.Fatalf("Measure returned error: %v", err)
	}
	if elapsed < 5*time.Millisecond {
		t.Fatalf("expected at least 5ms, got %v", elapsed)
	}
}

func TestMeasureSurfacesBackendErrors(t *testing.T) {
	hasher, err := security.NewBcryptHasher(security.DefaultBcryptCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher returned error: %v", err)
	}

	svc, err := NewCalibrationService(hasher)
	if err != nil {
		t.Fatalf("NewCalibrationService returned error: %v", err)
	}

	if _, err := svc.Measure(99); !errors.Is(err, security.ErrInvalidCost) {
		t.Fatalf("expected ErrInvalidCost, got %v", err)
	}
}

func TestMeasureRange(t *testing.T) {
	svc, err := NewCalibrationService(&slowHasher{delay: time.Millisecond})
	if err != nil {
		t.Fatalf("NewCalibrationService returned error: %v", err)
	}

	results, err := svc.MeasureRange(4, 8, 2)
	if err != nil {
		t.Fatalf("MeasureRange returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 measurements, got %d", len(results))
	}
	for i, expected := range []port.Cost{4, 6, 8} {
		if results[i].Cost != expected {
			t.Fatalf("expected cost %d at index %d, got %d", expected, i, results[i].Cost)
		}
	}
}

func TestMeasureRangeRejectsBadArguments(t *testing.T) {
	svc, err := NewCalibrationService(&slowHasher{})
	if err != nil {
		t.Fatalf("NewCalibrationService returned error: %v", err)
	}

	if _, err := svc.MeasureRange(4, 8, 0); err == nil {
		t.Fatal("expected error for zero step")
	}
	if _, err := svc.MeasureRange(8, 4, 1); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestNewCalibrationServiceRequiresHasher(t *testing.T) {
	if _, err := NewCalibrationService(nil); err == nil {
		t.Fatal("expected error for nil hasher")
	}
}
