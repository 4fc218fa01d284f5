package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/arklim/credguard/internal/core/domain"
)

func testPolicy() domain.PasswordPolicy {
	return domain.PasswordPolicy{
		MinLength:          8,
		RequireDigit:       true,
		RequirePunctuation: true,
		GeneratedLength:    16,
	}
}

func TestPolicyValidatorSuccess(t *testing.T) {
	validator := PolicyValidator(testPolicy())

	if err := validator.Validate("longenough1!"); err != nil {
		t.Fatalf("expected password to pass validation, got %v", err)
	}
}

func TestPolicyValidatorViolations(t *testing.T) {
	validator := PolicyValidator(testPolicy())

	assertViolation := func(password, expectedCode string) {
		t.Helper()
		err := validator.Validate(password)
		if err == nil {
			t.Fatalf("expected validation error for %s", expectedCode)
		}
		var vErr *PasswordValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected PasswordValidationError, got %T", err)
		}
		if vErr.Code != expectedCode {
			t.Fatalf("expected %s code, got %s", expectedCode, vErr.Code)
		}
	}

	assertViolation("short1!", "min_length")
	assertViolation("longenoughnopunct1", "composition")
	assertViolation("longenough!nodigit", "composition")
}

func TestMinLengthRuleShortCircuits(t *testing.T) {
	// A too-short password with no digit or punctuation must be reported for
	// length only.
	validator := PolicyValidator(testPolicy())

	err := validator.Validate("abc")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "minimum 8 characters") {
		t.Fatalf("expected length reason, got %q", err.Error())
	}
}

func TestPolicyValidatorStrengthRule(t *testing.T) {
	policy := testPolicy()
	policy.MinStrengthScore = 3
	validator := PolicyValidator(policy)

	err := validator.Validate("Password1!")
	if err == nil {
		t.Fatal("expected weak password to be rejected")
	}
	var vErr *PasswordValidationError
	if !errors.As(err, &vErr) || vErr.Code != "weak_password" {
		t.Fatalf("expected weak_password violation, got %v", err)
	}

	if err := validator.Validate("C0mplex!Passphrase#2025"); err != nil {
		t.Fatalf("expected strong password to pass, got %v", err)
	}
}

func TestValidatorResultIsDeterministic(t *testing.T) {
	validator := PolicyValidator(testPolicy())

	first := validator.Result("longenoughnopunct1")
	second := validator.Result("longenoughnopunct1")

	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if first.Valid {
		t.Fatal("expected invalid result")
	}
	if first.Reason != "must contain at least one digit and one punctuation character" {
		t.Fatalf("unexpected reason %q", first.Reason)
	}
}

func TestValidatorAcceptsGeneratorOutput(t *testing.T) {
	policy := testPolicy()
	generator, err := NewGenerator(policy)
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}
	validator := PolicyValidator(policy)

	for i := 0; i < 100; i++ {
		password, err := generator.Generate(policy.GeneratedLength)
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if err := validator.Validate(password); err != nil {
			t.Fatalf("generated password %q failed validation: %v", password, err)
		}
	}
}
