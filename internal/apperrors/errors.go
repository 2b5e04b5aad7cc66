package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. It carries the
// offending field so the client can highlight it, and is never retried.
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

// NewValidation builds a field-level validation error.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError covers both a record that does not exist and a record owned
// by another account. The two cases are indistinguishable to the caller so
// existence cannot be probed.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFound builds a not-found error for the named resource.
func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports an operation against a record whose state forbids
// it, e.g. contributing to a goal that is already completed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict builds a conflict error.
func NewConflict(message string) error {
	return &ConflictError{Message: message}
}

// StorageError wraps a persistence failure. Its message never exposes
// storage internals; the cause stays available through Unwrap for logging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorage wraps err as a storage failure observed during op.
func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
