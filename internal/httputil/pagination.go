package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credentials/internal/errors"
)

const (
	// DefaultPageLimit is used when a list request carries no limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps the limit a client may request.
	MaxPageLimit = 100
)

var (
	// ErrInvalidOffset is returned for a negative or non-numeric offset.
	ErrInvalidOffset = apperrors.NewCoded(
		apperrors.ErrInvalidInput,
		"error.invalid_offset",
		"offset must be a non-negative integer",
	)

	// ErrInvalidLimit is returned for a limit outside 1..MaxPageLimit.
	ErrInvalidLimit = apperrors.NewCoded(
		apperrors.ErrInvalidInput,
		"error.invalid_limit",
		"limit must be between 1 and 100",
	)
)

// Pagination is a window over a list held in memory.
type Pagination struct {
	Offset int
	Limit  int
}

// ParsePagination reads offset and limit from the query string.
func ParsePagination(c *gin.Context) (Pagination, error) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return Pagination{}, ErrInvalidOffset
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return Pagination{}, ErrInvalidLimit
	}

	return Pagination{Offset: offset, Limit: limit}, nil
}

// Page returns the items inside the window. The result is never nil so it encodes as
// an empty JSON array.
func Page[T any](items []T, p Pagination) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end]
}
