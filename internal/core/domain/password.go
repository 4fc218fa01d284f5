package domain

import "fmt"

// PasswordPolicy captures the process-wide composition requirements for
// passwords. It is constructed once from configuration and never mutated.
type PasswordPolicy struct {
	MinLength          int
	RequireDigit       bool
	RequirePunctuation bool
	GeneratedLength    int
	MinStrengthScore   int
}

// DefaultPasswordPolicy returns the built-in policy used when configuration
// does not override it.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:          8,
		RequireDigit:       true,
		RequirePunctuation: true,
		GeneratedLength:    16,
	}
}

// Validate checks the internal consistency of the policy.
func (p PasswordPolicy) Validate() error {
	if p.MinLength < 1 {
		return fmt.Errorf("password policy: min length must be at least 1, got %d", p.MinLength)
	}
	if p.GeneratedLength < p.MinLength {
		return fmt.Errorf("password policy: generated length %d below min length %d", p.GeneratedLength, p.MinLength)
	}
	if p.MinStrengthScore < 0 || p.MinStrengthScore > 4 {
		return fmt.Errorf("password policy: strength score must be between 0 and 4, got %d", p.MinStrengthScore)
	}
	return nil
}

// ValidationResult reports the outcome of validating a candidate password.
// Invalid results carry a human-readable reason suitable for UI display.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// ValidResult returns a passing validation result.
func ValidResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// InvalidResult returns a failing validation result with the given reason.
func InvalidResult(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}
