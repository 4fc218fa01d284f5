package port

// Cost is an opaque, backend-specific work factor. For bcrypt it is the
// logarithmic cost, for PBKDF2 the iteration count. Backends reject values
// outside their documented range instead of clamping.
type Cost int

// PasswordHasher hashes and verifies secrets using a configured key
// derivation algorithm.
type PasswordHasher interface {
	// Hash derives an encoded hash from the plaintext at the given cost.
	Hash(password string, cost Cost) (string, error)

	// Verify compares the plaintext against a stored encoded hash. A
	// malformed hash is reported as an error, never as a mismatch.
	Verify(password string, encoded string) (bool, error)

	// DefaultCost returns the backend's configured default work factor.
	DefaultCost() Cost
}
