package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/arklim/credguard/internal/core/domain"
)

// generateMaxAttempts bounds the rejection-retry loop. At realistic lengths a
// redraw is rare, so hitting the bound signals a misconfigured policy rather
// than bad luck.
const generateMaxAttempts = 1000

var (
	// ErrInvalidLength reports a requested length below the policy minimum.
	ErrInvalidLength = errors.New("requested password length below policy minimum")

	// ErrGenerationExhausted reports that the retry budget ran out before a
	// draw satisfied the composition policy.
	ErrGenerationExhausted = errors.New("password generation retry budget exhausted")
)

// Generator produces random passwords satisfying the composition policy.
// It consumes entropy from crypto/rand only and is safe for concurrent use.
type Generator struct {
	policy domain.PasswordPolicy
}

// NewGenerator constructs a generator bound to the given policy.
func NewGenerator(policy domain.PasswordPolicy) (*Generator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Generator{policy: policy}, nil
}

// Generate returns a random password of exactly length characters drawn from
// the shared password alphabet. Characters are sampled independently and
// uniformly; when the draw misses a required character class, the entire
// sequence is redrawn. Forcing classes into fixed positions would bias the
// output and leak structure, so the whole draw is rejected instead.
func (g *Generator) Generate(length int) (string, error) {
	if length < g.policy.MinLength {
		return "", fmt.Errorf("%w: %d < %d", ErrInvalidLength, length, g.policy.MinLength)
	}

	for attempt := 0; attempt < generateMaxAttempts; attempt++ {
		candidate, err := drawCandidate(length)
		if err != nil {
			return "", err
		}
		if g.satisfiesComposition(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, generateMaxAttempts)
}

func (g *Generator) satisfiesComposition(candidate string) bool {
	if g.policy.RequireDigit && !containsDigit(candidate) {
		return false
	}
	if g.policy.RequirePunctuation && !containsPunctuation(candidate) {
		return false
	}
	return true
}

func drawCandidate(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(passwordAlphabet)))

	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("draw random index: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}

	return string(buf), nil
}
