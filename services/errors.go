package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing quiz and a quiz owned by another
	// trainer, so callers cannot probe for existence.
	ErrNotFound = errors.New("quiz not found")

	// ErrAlreadySubmitted is returned when retakes are disabled and a
	// prior submission exists.
	ErrAlreadySubmitted = errors.New("quiz already submitted")

	// ErrSubmitConflict is returned when the conditional submission write
	// keeps losing to a concurrent submit for the same student.
	ErrSubmitConflict = errors.New("submission conflicted with a concurrent attempt")
)

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Machine-readable deny reasons, logged for audit; clients get a generic
// message.
const (
	DenyQuizInactive  = "quiz-inactive"
	DenyNotTargeted   = "not-targeted"
	DenyWindowNotOpen = "window-not-open"
	DenyWindowClosed  = "window-closed"
)

type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return "access denied: " + e.Reason
}
