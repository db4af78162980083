package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// specialChars is the set of characters counted as "special".
const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?~` + "`"

// commonPasswords is the fixed denylist checked case-insensitively after
// every structural rule has passed.
var commonPasswords = []string{
	"password", "password1", "password123", "passw0rd", "p@ssw0rd",
	"12345678", "123456789", "1234567890", "qwerty123", "qwertyuiop",
	"abc12345", "iloveyou", "admin123", "letmein1", "welcome1",
	"sunshine", "princess", "football", "monkey123", "dragon123",
}

// PasswordPolicyImpl implements domain.PasswordPolicy. It is stateless and
// safe for concurrent use.
type PasswordPolicyImpl struct{}

// NewPasswordPolicy creates a new password policy validator
func NewPasswordPolicy() domain.PasswordPolicy {
	return &PasswordPolicyImpl{}
}

// Validate implements domain.PasswordPolicy. Rules are checked in order
// and the first failure wins; the returned error wraps ErrWeakPassword and
// names the rule that failed.
func (p *PasswordPolicyImpl) Validate(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters long", domain.ErrWeakPassword)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(specialChars, r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("%w: must contain at least one uppercase letter", domain.ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("%w: must contain at least one lowercase letter", domain.ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: must contain at least one digit", domain.ErrWeakPassword)
	}
	if !hasSpecial {
		return fmt.Errorf("%w: must contain at least one special character", domain.ErrWeakPassword)
	}

	lowered := strings.ToLower(password)
	for _, common := range commonPasswords {
		if lowered == common {
			return fmt.Errorf("%w: is too common", domain.ErrWeakPassword)
		}
	}

	return nil
}
