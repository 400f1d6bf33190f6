package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a tasklog error code.
type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"         // 400
	ErrPositionOutOfRange ErrorCode = "POSITION_OUT_OF_RANGE" // 404
	ErrCorruptJournal     ErrorCode = "CORRUPT_JOURNAL"       // 422
	ErrIOFailure          ErrorCode = "IO_FAILURE"            // 500
)

// JournalError represents a structured error with code, status, and details.
type JournalError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JournalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for invalid operation input.
func NewInvalidInput(msg string) *JournalError {
	return &JournalError{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: msg,
	}
}

// NewPositionOutOfRange creates a 404 error for a position that does not
// address any task in the journal.
func NewPositionOutOfRange(position, length int) *JournalError {
	return &JournalError{
		Code:    ErrPositionOutOfRange,
		Status:  404,
		Message: fmt.Sprintf("position %d is out of range (journal has %d tasks)", position, length),
		Details: map[string]any{"position": position, "length": length},
	}
}

// NewCorruptJournal creates a 422 error for a journal file that exists but
// cannot be parsed. The file is left untouched.
func NewCorruptJournal(path string, err error) *JournalError {
	details := map[string]any{"path": path}
	if err != nil {
		details["parse_error"] = err.Error()
	}
	return &JournalError{
		Code:    ErrCorruptJournal,
		Status:  422,
		Message: fmt.Sprintf("journal file %s is not parseable", path),
		Details: details,
	}
}

// NewIOFailure creates a 500 error for an underlying read or write failure,
// carrying the path involved.
func NewIOFailure(path string, err error) *JournalError {
	details := map[string]any{"path": path}
	if err != nil {
		details["cause"] = err.Error()
	}
	return &JournalError{
		Code:    ErrIOFailure,
		Status:  500,
		Message: fmt.Sprintf("i/o failure on %s", path),
		Details: details,
	}
}

// Is checks if an error is a JournalError with the given code.
// Wrapped errors are unwrapped first.
func Is(err error, code ErrorCode) bool {
	var jErr *JournalError
	if stderrors.As(err, &jErr) {
		return jErr.Code == code
	}
	return false
}
