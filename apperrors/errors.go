// Package apperrors holds the error kinds every layer of the API agrees on.
// Stores and services return these; handlers map them to HTTP statuses.
package apperrors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	MissingFields []string
	Fields        []FieldError
}

func NewValidationError(missing []string, flds ...FieldError) error {
	return &ValidationError{MissingFields: missing, Fields: flds}
}

func (err *ValidationError) Error() string {
	if len(err.MissingFields) > 0 {
		return "missing required fields: " + strings.Join(err.MissingFields, ", ")
	}
	if len(err.Fields) > 0 {
		msgs := make([]string, 0, len(err.Fields))
		for _, f := range err.Fields {
			msgs = append(msgs, f.Field+": "+f.Error)
		}
		return "invalid fields: " + strings.Join(msgs, "; ")
	}
	return "validation failed"
}

type NotFoundError struct {
	Resource string
	Key      string
}

func NewNotFoundError(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

func (err *NotFoundError) Error() string {
	if err.Key == "" {
		return err.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", err.Resource, err.Key)
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", err.Op, err.Err)
}

func (err *StorageError) Unwrap() error { return err.Err }

// UploadError wraps a failure of the media collaborator. Rejected is set
// when the file itself was refused (bad extension, too large) rather than
// the backend failing.
type UploadError struct {
	Err      error
	Rejected bool
}

func NewUploadError(err error) error {
	return &UploadError{Err: err}
}

func NewRejectedUpload(msg string) error {
	return &UploadError{Err: errors.New(msg), Rejected: true}
}

func (err *UploadError) Error() string {
	return "upload: " + err.Err.Error()
}

func (err *UploadError) Unwrap() error { return err.Err }

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

func IsUpload(err error) bool {
	var target *UploadError
	return errors.As(err, &target)
}

// MissingFields returns the missing required fields carried by err, if any.
func MissingFields(err error) []string {
	var target *ValidationError
	if errors.As(err, &target) {
		return target.MissingFields
	}
	return nil
}
