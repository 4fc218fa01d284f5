package security

import (
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/arklim/credguard/internal/core/domain"
)

// PasswordValidationError represents a single password policy violation.
type PasswordValidationError struct {
	Code    string
	Message string
}

// Error implements error for PasswordValidationError.
func (e *PasswordValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// PasswordRule validates a password according to a specific policy rule.
type PasswordRule interface {
	Validate(password string) error
}

// PasswordRuleFunc adapts a function to be used as a PasswordRule.
type PasswordRuleFunc func(password string) error

// Validate executes the underlying rule function.
func (f PasswordRuleFunc) Validate(password string) error {
	return f(password)
}

// PasswordValidator applies a sequence of password rules. Rules run in order
// and the first violation wins, so cheap checks go first.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator constructs a validator with the provided rules.
func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordValidator{rules: copied}
}

// PolicyValidator builds the validator enforcing the given policy: length
// first, then character composition, then an optional strength score.
func PolicyValidator(policy domain.PasswordPolicy) *PasswordValidator {
	rules := []PasswordRule{
		MinLengthRule(policy.MinLength),
		RequireCompositionRule(policy.RequireDigit, policy.RequirePunctuation),
	}
	if policy.MinStrengthScore > 0 {
		rules = append(rules, RequirePasswordStrengthRule(policy.MinStrengthScore))
	}
	return NewPasswordValidator(rules...)
}

// Validate executes all rules and returns the first encountered violation.
func (v *PasswordValidator) Validate(password string) error {
	if v == nil {
		return fmt.Errorf("password validator not configured")
	}
	for _, rule := range v.rules {
		if err := rule.Validate(password); err != nil {
			return err
		}
	}
	return nil
}

// Result converts the rule outcome for password into a domain validation
// result, carrying the first violation's message as the reason.
func (v *PasswordValidator) Result(password string) domain.ValidationResult {
	if err := v.Validate(password); err != nil {
		return domain.InvalidResult(err.Error())
	}
	return domain.ValidResult()
}

// MinLengthRule ensures the password has at least min characters.
func MinLengthRule(min int) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if len([]rune(password)) < min {
			return &PasswordValidationError{
				Code:    "min_length",
				Message: fmt.Sprintf("too short, minimum %d characters", min),
			}
		}
		return nil
	})
}

// RequireCompositionRule ensures the password contains the required character
// classes. Class membership uses the same alphabet tables as the generator,
// so generated passwords always validate.
func RequireCompositionRule(requireDigit, requirePunctuation bool) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		ok := true
		if requireDigit && !containsDigit(password) {
			ok = false
		}
		if requirePunctuation && !containsPunctuation(password) {
			ok = false
		}
		if ok {
			return nil
		}
		return &PasswordValidationError{
			Code:    "composition",
			Message: "must contain at least one digit and one punctuation character",
		}
	})
}

// RequirePasswordStrengthRule enforces a minimum zxcvbn score to reject weak
// passwords. Additional user inputs (e.g. username) are penalized when given.
func RequirePasswordStrengthRule(minScore int, userInputs ...string) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if minScore <= 0 {
			return nil
		}
		if minScore > 4 {
			minScore = 4
		}

		result := zxcvbn.PasswordStrength(password, userInputs)
		if result.Score >= minScore {
			return nil
		}

		return &PasswordValidationError{
			Code:    "weak_password",
			Message: "password is too weak; choose a more complex value",
		}
	})
}
