package errors

import (
	"errors"
	"fmt"
)

// Common error types for the NuuR client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionCorrupt   = errors.New("session record is corrupt")

	// Token errors
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Transport errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTransport    = errors.New("transport error")

	// Request errors
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// New is errors.New, re-exported so callers need a single errors import
func New(text string) error {
	return errors.New(text)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Invalidf returns an ErrInvalidRequest carrying a formatted reason
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join is errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}
