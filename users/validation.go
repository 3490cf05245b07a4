package users

import (
	"strings"

	"github.com/jrsteele09/nuur-client/internal/errors"
)

const MinPasswordLength = 8

// ValidatePasswordStrength checks the password length the backend enforces.
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return errors.Invalidf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

func (r Registration) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return errors.Invalidf("email %q is not valid", r.Email)
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.Invalidf("phone number is required")
	}
	return ValidatePasswordStrength(r.Password)
}

func (c Credentials) Validate() error {
	if c.Email == "" || c.Password == "" {
		return errors.Invalidf("email and password are required")
	}
	return nil
}

func (c NewContact) Validate() error {
	if strings.TrimSpace(c.ContactName) == "" {
		return errors.Invalidf("contact name is required")
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		return errors.Invalidf("contact phone number is required")
	}
	if c.Priority < 0 {
		return errors.Invalidf("priority must not be negative")
	}
	return nil
}
