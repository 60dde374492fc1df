// Package errors defines the error taxonomy shared by the trackers and the
// reminder scheduler, plus the CLI helpers that print and exit.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
)

var (
	// ErrNotFound is returned by lookups for an unknown identifier.
	// Mutations treat unknown identifiers as no-ops and never return it.
	ErrNotFound = stderrors.New("not found")
	// ErrPersistence wraps failures to decode stored data.
	ErrPersistence = stderrors.New("persistence error")
	// ErrPermission wraps scheduling requests denied by the alarm facility.
	ErrPermission = stderrors.New("permission denied")
)

// ValidationError reports bad user input. No state is mutated when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError.
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// Persistence wraps err as a persistence failure for key.
func Persistence(key string, err error) error {
	return fmt.Errorf("%w: key %q: %v", ErrPersistence, key, err)
}

// Permission wraps err as a scheduling permission failure.
func Permission(err error) error {
	return fmt.Errorf("%w: %v", ErrPermission, err)
}

// Is and As re-export the standard helpers so callers need a single import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
