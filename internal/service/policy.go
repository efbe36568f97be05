package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/acailab/goaltrack/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lowercases and trims an email address so uniqueness
// comparisons are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that the email has a plausible shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	return nil
}

// PasswordRule is a single named predicate a password must satisfy.
type PasswordRule struct {
	Name    string
	Message string
	Check   func(password string) bool
}

// PasswordPolicy is an ordered set of rules applied to candidate
// passwords. Rules are evaluated in order and the first failure wins.
type PasswordPolicy struct {
	rules []PasswordRule
}

// NewPasswordPolicy builds the standard policy: a minimum length plus
// at least one letter and one digit.
func NewPasswordPolicy(minLength int) PasswordPolicy {
	return PasswordPolicy{rules: []PasswordRule{
		{
			Name:    "required",
			Message: "password is required",
			Check:   func(p string) bool { return p != "" },
		},
		{
			Name:    "min_length",
			Message: fmt.Sprintf("password must be at least %d characters", minLength),
			Check:   func(p string) bool { return len(p) >= minLength },
		},
		{
			Name:    "has_letter",
			Message: "password must contain at least one letter",
			Check: func(p string) bool {
				return strings.ContainsFunc(p, unicode.IsLetter)
			},
		},
		{
			Name:    "has_digit",
			Message: "password must contain at least one digit",
			Check: func(p string) bool {
				return strings.ContainsFunc(p, unicode.IsDigit)
			},
		},
	}}
}

// Validate applies every rule and returns ErrInvalidInput carrying the
// message of the first rule the password fails.
func (p PasswordPolicy) Validate(password string) error {
	for _, rule := range p.rules {
		if !rule.Check(password) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, rule.Message)
		}
	}
	return nil
}
