package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/arklim/credguard/internal/core/port"
)

const (
	pbkdf2Variant    = "pbkdf2-sha512"
	pbkdf2SaltLength = 16
	pbkdf2KeyLength  = sha512.Size

	// Iteration bounds. The lower bound rejects costs that would make the
	// derivation trivially fast; the upper bound catches configuration typos
	// that would stall every login for minutes.
	pbkdf2MinIterations = 10_000
	pbkdf2MaxIterations = 100_000_000
)

// DefaultPBKDF2Iterations follows current OWASP guidance for PBKDF2-SHA512.
const DefaultPBKDF2Iterations port.Cost = 210_000

var errInvalidPBKDF2Hash = errors.New("pbkdf2: invalid encoded hash format")

// PBKDF2Hasher implements port.PasswordHasher using PBKDF2 with SHA-512.
// Hashes are encoded as "pbkdf2-sha512$<iterations>$<salt>$<key>" with salt
// and key base64-encoded.
type PBKDF2Hasher struct {
	defaultIterations port.Cost
}

// NewPBKDF2Hasher constructs a PBKDF2-SHA512 backend with the given default
// iteration count.
func NewPBKDF2Hasher(defaultIterations port.Cost) (*PBKDF2Hasher, error) {
	if err := validatePBKDF2Cost(defaultIterations); err != nil {
		return nil, err
	}
	return &PBKDF2Hasher{defaultIterations: defaultIterations}, nil
}

func validatePBKDF2Cost(cost port.Cost) error {
	if cost < pbkdf2MinIterations || cost > pbkdf2MaxIterations {
		return fmt.Errorf("%w: pbkdf2 iterations %d must be between %d and %d", ErrInvalidCost, cost, pbkdf2MinIterations, pbkdf2MaxIterations)
	}
	return nil
}

// Hash derives a salted PBKDF2-SHA512 key for the password at the given
// iteration count.
func (h *PBKDF2Hasher) Hash(password string, cost port.Cost) (string, error) {
	if err := validatePBKDF2Cost(cost); err != nil {
		return "", err
	}

	salt := make([]byte, pbkdf2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("pbkdf2: generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, int(cost), pbkdf2KeyLength, sha512.New)

	encoded := strings.Join([]string{
		pbkdf2Variant,
		strconv.Itoa(int(cost)),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$")

	return encoded, nil
}

// Verify compares the password against a stored PBKDF2 hash. The iteration
// count embedded in the hash is used, so old hashes remain verifiable after
// the default cost changes.
func (h *PBKDF2Hasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != pbkdf2Variant {
		return false, errInvalidPBKDF2Hash
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false, fmt.Errorf("%w: bad iteration count %q", errInvalidPBKDF2Hash, parts[1])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("pbkdf2: decode salt: %w", err)
	}

	storedKey, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, fmt.Errorf("pbkdf2: decode key: %w", err)
	}

	computed := pbkdf2.Key([]byte(password), salt, iterations, len(storedKey), sha512.New)

	if subtle.ConstantTimeCompare(computed, storedKey) == 1 {
		return true, nil
	}
	return false, nil
}

// DefaultCost returns the configured default iteration count.
func (h *PBKDF2Hasher) DefaultCost() port.Cost {
	return h.defaultIterations
}
