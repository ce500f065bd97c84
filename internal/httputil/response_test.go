package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credentials/internal/errors"
)

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errMissingValue := apperrors.NewCoded(apperrors.ErrInvalidInput, "error.missing_value", "value is required")

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectedCode   string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "credential"), http.StatusNotFound, "not_found", ""},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict", ""},
		{
			"coded invalid input",
			apperrors.Wrap(errMissingValue, "failed to set credential"),
			http.StatusUnprocessableEntity,
			"invalid_input",
			"error.missing_value",
		},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", ""},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden", ""},
		{"encryption", apperrors.ErrEncryption, http.StatusInternalServerError, "encryption_error", ""},
		{"decryption", apperrors.ErrDecryption, http.StatusInternalServerError, "decryption_error", ""},
		{"generation", apperrors.ErrGeneration, http.StatusInternalServerError, "generation_error", ""},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeErrorResponse(t, w)
			assert.Equal(t, tt.expectedError, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Code)
		})
	}

	t.Run("internal details are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, errors.New("pq: password authentication failed"), logger)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "An internal error occurred", resp.Message)
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid json"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "bad_request", resp.Error)
	assert.Equal(t, "invalid json", resp.Message)
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := apperrors.NewCoded(apperrors.ErrInvalidInput, "error.invalid_type", "type is not supported")
	HandleValidationErrorGin(c, err, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "validation_error", resp.Error)
	assert.Equal(t, "error.invalid_type", resp.Code)
}
