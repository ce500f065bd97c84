// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these kinds and handlers map
// them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard error kinds shared by every module.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated actor doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrEncryption indicates a key is unavailable or a provider rejected the plaintext.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption indicates ciphertext could not be authenticated or decrypted.
	ErrDecryption = errors.New("decryption failed")

	// ErrGeneration indicates the randomness or key-pair provider failed while generating a value.
	ErrGeneration = errors.New("generation failed")

	// ErrPersistence indicates the durable store rejected a write.
	ErrPersistence = errors.New("persistence failed")
)

// CodedError is a validation-style error carrying a machine-readable code
// (e.g. "error.invalid_key_length") next to a human-readable message.
// Unwrap returns the error kind so errors.Is keeps working against the sentinels above.
type CodedError struct {
	Kind    error
	Code    string
	Message string
}

// NewCoded creates a CodedError of the given kind.
func NewCoded(kind error, code, message string) *CodedError {
	return &CodedError{Kind: kind, Code: code, Message: message}
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Kind == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

// Unwrap returns the error kind.
func (e *CodedError) Unwrap() error {
	return e.Kind
}

// Is reports whether target is the same coded error, comparing by code.
func (e *CodedError) Is(target error) bool {
	t, ok := target.(*CodedError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf returns the code of the first CodedError in err's tree, or "" when there is none.
func CodeOf(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
