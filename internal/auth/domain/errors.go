package domain

import (
	"github.com/allisson/credentials/internal/errors"
)

// Authentication errors.
var (
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrInvalidClientCredentials hides whether the id or the secret was wrong.
	ErrInvalidClientCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid client credentials")

	ErrClientInactive = errors.Wrap(errors.ErrForbidden, "client is inactive")

	ErrClientAlreadyExists = errors.Wrap(errors.ErrConflict, "a client already uses this actor")
)
