package errors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrUnknownSection = errors.New("unknown section")
	ErrEmptyQueue     = errors.New("queue is empty")
	ErrPersistence    = errors.New("persistence failure")
	ErrTicketNotFound = errors.New("ticket not found")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type UnknownSectionError struct {
	Section string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Section)
}

func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}

type EmptyQueueError struct {
	Section string
}

func (e *EmptyQueueError) Error() string {
	return fmt.Sprintf("there are no tickets in the %s queue", e.Section)
}

func (e *EmptyQueueError) Is(target error) bool {
	return target == ErrEmptyQueue
}

// PersistenceError wraps a storage failure. Op is "load", "save" or "clear".
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
