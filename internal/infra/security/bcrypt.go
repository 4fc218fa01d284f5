package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/arklim/credguard/internal/core/port"
)

// DefaultBcryptCost targets roughly 250ms per hash on current server CPUs.
const DefaultBcryptCost port.Cost = 12

// ErrInvalidCost reports a work factor outside the backend's documented range.
var ErrInvalidCost = errors.New("cost out of range")

// BcryptHasher implements port.PasswordHasher on top of x/crypto/bcrypt.
type BcryptHasher struct {
	defaultCost port.Cost
}

// NewBcryptHasher constructs a bcrypt backend with the given default cost.
func NewBcryptHasher(defaultCost port.Cost) (*BcryptHasher, error) {
	if err := validateBcryptCost(defaultCost); err != nil {
		return nil, err
	}
	return &BcryptHasher{defaultCost: defaultCost}, nil
}

func validateBcryptCost(cost port.Cost) error {
	if int(cost) < bcrypt.MinCost || int(cost) > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d must be between %d and %d", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// Hash derives a salted bcrypt hash for the password at the given cost.
func (h *BcryptHasher) Hash(password string, cost port.Cost) (string, error) {
	if err := validateBcryptCost(cost); err != nil {
		return "", err
	}

	sum, err := bcrypt.GenerateFromPassword([]byte(password), int(cost))
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}

	return string(sum), nil
}

// Verify compares the password against a stored bcrypt hash. A mismatch is
// reported as (false, nil); a hash bcrypt cannot parse is an error.
func (h *BcryptHasher) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("bcrypt: %w", err)
}

// DefaultCost returns the configured default bcrypt cost.
func (h *BcryptHasher) DefaultCost() port.Cost {
	return h.defaultCost
}
