package scheduling

import (
	"errors"
	"fmt"
)

// Error codes carried by ScheduleError.
const (
	CodeInvalidInput        = "invalid_input"
	CodeNotFound            = "not_found"
	CodeConflictingProposal = "conflicting_proposal"
	CodePersistenceFailure  = "persistence_failure"
)

// ScheduleError is a typed service error with a stable code for callers.
type ScheduleError struct {
	Code    string
	Message string
	Err     error
}

func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError flags a request rejected before any computation.
func NewInvalidInputError(msg string) error {
	return &ScheduleError{Code: CodeInvalidInput, Message: msg}
}

func newNotFoundError(msg string, err error) error {
	return &ScheduleError{Code: CodeNotFound, Message: msg, Err: err}
}

func newConflictError(msg string, err error) error {
	return &ScheduleError{Code: CodeConflictingProposal, Message: msg, Err: err}
}

func newPersistenceError(msg string, err error) error {
	return &ScheduleError{Code: CodePersistenceFailure, Message: msg, Err: err}
}

func hasCode(err error, code string) bool {
	var se *ScheduleError
	return errors.As(err, &se) && se.Code == code
}

// IsInvalidInput reports whether err is a request validation failure.
func IsInvalidInput(err error) bool { return hasCode(err, CodeInvalidInput) }

// IsNotFound reports whether err means a missing proposal or provider.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsConflict reports whether err is a proposal transition or creation race.
func IsConflict(err error) bool { return hasCode(err, CodeConflictingProposal) }
