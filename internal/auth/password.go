package auth

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// StrengthResult reports the outcome of the password policy check.
// Reason carries only the first failing rule.
type StrengthResult struct {
	Valid  bool
	Reason string
}

// ValidateStrength checks the password policy: at least 8 characters,
// one uppercase letter, one lowercase letter, one digit. Rules are
// evaluated in that order and only the first violation is reported.
func ValidateStrength(password string) StrengthResult {
	// Characters, not bytes: a multibyte rune counts once.
	if utf8.RuneCountInString(password) < 8 {
		return StrengthResult{Reason: "password must be at least 8 characters"}
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return StrengthResult{Reason: "password must contain an uppercase letter"}
	}
	if !hasLower {
		return StrengthResult{Reason: "password must contain a lowercase letter"}
	}
	if !hasDigit {
		return StrengthResult{Reason: "password must contain a digit"}
	}
	return StrengthResult{Valid: true}
}
