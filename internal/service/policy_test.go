package service_test

import (
	"errors"
	"testing"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/acailab/goaltrack/internal/service"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := service.NewPasswordPolicy(8)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Passw0rd", false},
		{"valid long", "correct horse battery staple 9", false},
		{"empty", "", true},
		{"too short", "abc1", true},
		{"no digit", "passwords", true},
		{"no letter", "12345678", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Validate(tc.password)
			if tc.wantErr && !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestPasswordPolicy_ConfigurableMinLength(t *testing.T) {
	policy := service.NewPasswordPolicy(12)

	if err := policy.Validate("short1pw"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput below min length, got %v", err)
	}
	if err := policy.Validate("long enough pw 1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A@X.Com", "a@x.com"},
		{"  a@x.com  ", "a@x.com"},
		{"MiXeD@Example.COM", "mixed@example.com"},
	}
	for _, tc := range tests {
		if got := service.NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@x.com", "user.name+tag@example.co.uk"}
	for _, email := range valid {
		if err := service.ValidateEmail(email); err != nil {
			t.Fatalf("expected %q to be valid, got %v", email, err)
		}
	}

	invalid := []string{"", "notanemail", "missing@tld", "@example.com"}
	for _, email := range invalid {
		if err := service.ValidateEmail(email); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected %q to fail with ErrInvalidInput, got %v", email, err)
		}
	}
}
