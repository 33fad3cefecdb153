package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes reported to the operator.
var (
	// ErrValidation is returned when a candidate document is rejected.
	ErrValidation = errors.New("validation failed")

	// ErrFormat is returned when a database file is malformed.
	ErrFormat = errors.New("invalid database format")

	// ErrState is returned when the session flags forbid an operation.
	ErrState = errors.New("operation not allowed in this session")

	// ErrNoInput is returned when create is called without any paths.
	ErrNoInput = errors.New("no file passed to make database")

	// ErrNoValidInput is returned when every candidate path was rejected.
	ErrNoValidInput = errors.New("no valid input files provided to create database")
)

// Validation reasons.
const (
	ReasonExtension  = "must have %s extension"
	ReasonNotFound   = "file not found"
	ReasonUnreadable = "file could not be inspected"
	ReasonEmpty      = "file is empty"
	ReasonDuplicate  = "duplicate file"
)

// ValidationError describes why a single path was rejected.
type ValidationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(path, reason string) *ValidationError {
	return &ValidationError{Path: path, Reason: reason}
}

// FormatError points at the place a database file stopped making sense.
// Line is 1-based; zero means the problem is with the file as a whole.
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	default:
		return e.Reason
	}
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// NewFormatError creates a new FormatError
func NewFormatError(line int, reason string) *FormatError {
	return &FormatError{Line: line, Reason: reason}
}

// StateError is returned when an operation is refused by the session flags.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s refused: %s", e.Op, e.Reason)
}

func (e *StateError) Is(target error) bool {
	return target == ErrState
}

// NewStateError creates a new StateError
func NewStateError(op, reason string) *StateError {
	return &StateError{Op: op, Reason: reason}
}
