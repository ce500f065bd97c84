package domain

import (
	"github.com/allisson/credentials/internal/errors"
)

// Audit errors.
var (
	// ErrSignatureInvalid indicates a stored record does not match its signature.
	ErrSignatureInvalid = errors.Wrap(errors.ErrInvalidInput, "audit record signature is invalid")

	// ErrRecordNotSigned indicates a stored record has no signature to verify.
	ErrRecordNotSigned = errors.Wrap(errors.ErrInvalidInput, "audit record is not signed")

	// ErrInvalidTimeRange indicates the verification window ends before it starts.
	ErrInvalidTimeRange = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_time_range", "end time must not be before start time",
	)
)
