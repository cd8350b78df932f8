package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return "invalid input"
	}
	return err.Err.Error()
}

// StorageError is any failure of the underlying data store other than a missing row:
// connectivity loss, pool acquisition, constraint violation, malformed query...
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(err error, op string) error {
	return &StorageError{Op: op, Err: err}
}

func (err *StorageError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

// Cause returns the driver error, for errors.Cause.
func (err *StorageError) Cause() error { return err.Err }

func (err *StorageError) Unwrap() error { return err.Err }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
