package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Fotoware picker integration
var (
	// Configuration errors
	ErrMissingConfig = errors.New("missing required configuration")

	// Authorization flow errors
	ErrStateMismatch    = errors.New("authorization state mismatch")
	ErrMissingChallenge = errors.New("no pending authorization challenge")
	ErrSecureRandom     = errors.New("secure random source unavailable")

	// Credential store errors
	ErrNotFound = errors.New("not found")
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
