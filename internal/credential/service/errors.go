package service

import (
	"fmt"

	apperrors "github.com/allisson/credentials/internal/errors"
)

func generationError(err error, message string) error {
	return fmt.Errorf("%s: %w: %w", message, apperrors.ErrGeneration, err)
}
