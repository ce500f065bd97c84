// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credentials/internal/errors"
)

// ErrorResponse represents a structured error response.
// Code carries the machine-readable validation code (e.g. "error.missing_value") when one exists.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorMapping struct {
	kind    error
	status  int
	name    string
	message string
}

// Order matters: the first kind found in the error tree wins. An empty message means
// the error text itself is safe to return.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{
		apperrors.ErrForbidden,
		http.StatusForbidden,
		"forbidden",
		"You don't have permission to access this resource",
	},
	{apperrors.ErrEncryption, http.StatusInternalServerError, "encryption_error", "Value could not be encrypted"},
	{apperrors.ErrDecryption, http.StatusInternalServerError, "decryption_error", "Value could not be decrypted"},
	{apperrors.ErrGeneration, http.StatusInternalServerError, "generation_error", "Value could not be generated"},
	{apperrors.ErrPersistence, http.StatusInternalServerError, "persistence_error", "Request could not be recorded"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	errorResponse := ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	}

	for _, m := range errorMappings {
		if !apperrors.Is(err, m.kind) {
			continue
		}
		statusCode = m.status
		errorResponse = ErrorResponse{Error: m.name, Message: m.message}
		if m.message == "" {
			errorResponse.Message = err.Error()
		}
		break
	}

	if statusCode < http.StatusInternalServerError {
		errorResponse.Code = apperrors.CodeOf(err)
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
		Code:    apperrors.CodeOf(err),
	})
}
