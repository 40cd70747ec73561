// Package service implements the record operations on top of the kv and
// blob stores: validation, key assignment, merge updates and photo handling.
package service

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the addressed record does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError indicates a client-supplied payload that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a kv or blob backend failure. The op names the failed
// operation; the message carries the underlying cause through to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// UploadError wraps a blob upload failure during memory creation. When it is
// returned, no record was persisted.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("photo upload: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
