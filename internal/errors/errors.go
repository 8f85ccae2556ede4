package errors

import (
	"errors"
	"fmt"
)

// Common error types for the HRMS client
var (
	// Gateway classification errors
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnauthorized     = errors.New("insufficient permission")
	ErrUnreachable      = errors.New("server unreachable")
	ErrMalformedRequest = errors.New("malformed request")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrCanceled         = errors.New("request canceled")

	// Session errors
	ErrNoSession = errors.New("no active session")

	// Validation errors (raised before a request is dispatched)
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidUsername    = errors.New("invalid username")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
