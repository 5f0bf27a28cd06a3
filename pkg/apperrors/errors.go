package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrReadOnly          = errors.New("project locale is read-only")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidAction     = errors.New("invalid action log entry")
	ErrInvalidInput      = errors.New("invalid input")
)

// ConflictError describes a transition that could not be applied because the
// stored state no longer matches what the caller expected. It matches
// ErrConflict with errors.Is, plus Reason when one is set.
type ConflictError struct {
	TranslationID string
	Transition    string
	// State is the observed state of the translation, e.g. "approved".
	State string
	// Retryable is true when the conflict came from a concurrent commit and
	// re-reading state before reapplying can succeed.
	Retryable bool
	Reason    error
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("cannot %s translation %s", e.Transition, e.TranslationID)
	if e.State != "" {
		msg += fmt.Sprintf(" (state: %s)", e.State)
	}
	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}
	return msg
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Reason
}

// NewConflict builds a non-retryable precondition conflict.
func NewConflict(translationID, transition, state string, reason error) *ConflictError {
	return &ConflictError{
		TranslationID: translationID,
		Transition:    transition,
		State:         state,
		Reason:        reason,
	}
}

// IsRetryable reports whether re-running the transition from a fresh read
// may succeed.
func (e *ConflictError) IsRetryable() bool {
	return e.Retryable
}
