package domain

import (
	"github.com/allisson/credentials/internal/errors"
)

// Permission errors.
var (
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	ErrInvalidOperation = errors.NewCoded(
		errors.ErrInvalidInput, "error.permission.invalid_operation", "operation is not supported",
	)
	ErrMissingOperations = errors.NewCoded(
		errors.ErrInvalidInput, "error.permission.missing_operations", "at least one operation is required",
	)
	ErrInvalidPath = errors.NewCoded(
		errors.ErrInvalidInput, "error.permission.invalid_path", "path must be a name or end in '/*'",
	)
	ErrInvalidSearch = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_search", "a path or a name pattern is required",
	)
	ErrForbidden = errors.Wrap(errors.ErrForbidden, "the actor does not have permission for this operation")
)
