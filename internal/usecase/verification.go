package usecase

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/credguard/internal/core/domain"
	"github.com/arklim/credguard/internal/core/port"
	"github.com/arklim/credguard/internal/infra/security"
)

// ErrVerification reports a stored hash the backend could not process. It is
// distinct from a mismatch so callers can alert on corrupt data.
var ErrVerification = errors.New("stored hash could not be processed")

// dummyPlaintext feeds the dummy hash when the caller has no password of its
// own to burn, i.e. DummyCheckPassword.
const dummyPlaintext = "credguard.dummy.plaintext"

// VerifierService is the password facade. It orchestrates hashing, the
// anti-enumeration verification paths, generation, and validation. All
// methods are stateless and safe for concurrent use.
type VerifierService struct {
	hasher    port.PasswordHasher
	policy    domain.PasswordPolicy
	generator *security.Generator
	validator *security.PasswordValidator
	metrics   *VerifierMetrics
	logger    *zap.Logger
}

// NewVerifierService constructs the facade over the given hashing backend and
// password policy.
func NewVerifierService(hasher port.PasswordHasher, policy domain.PasswordPolicy) (*VerifierService, error) {
	if hasher == nil {
		return nil, fmt.Errorf("hasher is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	generator, err := security.NewGenerator(policy)
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}

	return &VerifierService{
		hasher:    hasher,
		policy:    policy,
		generator: generator,
		validator: security.PolicyValidator(policy),
		logger:    zap.NewNop(),
	}, nil
}

// WithLogger attaches a logger for operational events.
func (s *VerifierService) WithLogger(log *zap.Logger) *VerifierService {
	if log != nil {
		s.logger = log
	}
	return s
}

// WithMetrics attaches Prometheus collectors for check outcomes and hash
// durations.
func (s *VerifierService) WithMetrics(metrics *VerifierMetrics) *VerifierService {
	s.metrics = metrics
	return s
}

// HashPassword derives a stored hash for the plaintext at the backend's
// default cost.
func (s *VerifierService) HashPassword(password string) (string, error) {
	start := time.Now()
	encoded, err := s.hasher.Hash(password, s.hasher.DefaultCost())
	s.metrics.ObserveHashDuration(OperationHash, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return encoded, nil
}

// CheckPassword verifies the plaintext against the stored hash. An empty
// storedHash means the account lookup found nothing; in that case the facade
// still performs a full hash at the default cost and discards the result, so
// response latency does not reveal whether the account exists. That dummy
// work must never be short-circuited.
func (s *VerifierService) CheckPassword(password, storedHash string) (bool, error) {
	if storedHash == "" {
		if err := s.burnDummyHash(password); err != nil {
			s.metrics.IncCheck(OutcomeError)
			return false, err
		}
		s.metrics.IncCheck(OutcomeMissing)
		return false, nil
	}

	start := time.Now()
	ok, err := s.hasher.Verify(password, storedHash)
	s.metrics.ObserveHashDuration(OperationVerify, time.Since(start))
	if err != nil {
		s.metrics.IncCheck(OutcomeError)
		return false, fmt.Errorf("%w: %w", ErrVerification, err)
	}

	if ok {
		s.metrics.IncCheck(OutcomeMatch)
	} else {
		s.metrics.IncCheck(OutcomeMismatch)
	}
	return ok, nil
}

// DummyCheckPassword performs the same dummy hash as a missing-account check
// and unconditionally returns false. Callers whose username lookup already
// failed use it to pay the matching verification cost without fabricating a
// stored hash placeholder.
func (s *VerifierService) DummyCheckPassword() bool {
	if err := s.burnDummyHash(dummyPlaintext); err != nil {
		s.logger.Error("dummy hash failed", zap.Error(err))
	}
	s.metrics.IncCheck(OutcomeMissing)
	return false
}

func (s *VerifierService) burnDummyHash(plaintext string) error {
	start := time.Now()
	_, err := s.hasher.Hash(plaintext, s.hasher.DefaultCost())
	s.metrics.ObserveHashDuration(OperationDummy, time.Since(start))
	if err != nil {
		return fmt.Errorf("dummy hash: %w", err)
	}
	return nil
}

// GeneratePassword returns a random password of the requested length, or of
// the policy's generated length when length is zero or negative.
func (s *VerifierService) GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = s.policy.GeneratedLength
	}
	return s.generator.Generate(length)
}

// ValidatePassword checks the candidate against the password policy.
func (s *VerifierService) ValidatePassword(password string) domain.ValidationResult {
	return s.validator.Result(password)
}

// Policy returns the immutable policy the facade was constructed with.
func (s *VerifierService) Policy() domain.PasswordPolicy {
	return s.policy
}
