package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	"github.com/allisson/credentials/internal/audit/usecase/mocks"
	authDomain "github.com/allisson/credentials/internal/auth/domain"
	authHTTP "github.com/allisson/credentials/internal/auth/http"
	apperrors "github.com/allisson/credentials/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuditedRouter(recorder *mocks.MockAuditRecorder, handlers ...gin.HandlerFunc) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(AuditMiddleware(recorder, logger))
	router.GET("/api/v1/data", handlers...)
	return router
}

func withClient(actor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := &authDomain.Client{ID: uuid.Must(uuid.NewV7()), Actor: actor, IsActive: true}
		c.Request = c.Request.WithContext(authHTTP.WithClient(c.Request.Context(), client))
		c.Next()
	}
}

func TestAuditMiddleware(t *testing.T) {
	t.Run("Success_ForwardsResponseAfterRecording", func(t *testing.T) {
		recorder := &mocks.MockAuditRecorder{}
		var requestID uuid.UUID

		recorder.On("Record", mock.Anything, mock.MatchedBy(func(info *auditDomain.RequestInfo) bool {
			requestID = info.RequestID
			return info.Method == http.MethodGet &&
				info.Path == "/api/v1/data" &&
				info.QueryParameters == "name=/db" &&
				info.AuthMechanism == authHTTP.AuthMechanismBasic
		}), http.StatusOK, "client:app").Return(nil).Once()

		router := newAuditedRouter(recorder, withClient("client:app"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"name": "/db"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data?name=/db", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"/db"}`, w.Body.String())
		assert.Equal(t, requestID.String(), w.Header().Get("X-Request-Id"))
		recorder.AssertExpectations(t)
	})

	t.Run("Success_AnonymousRequestRecordsEmptyActor", func(t *testing.T) {
		recorder := &mocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, mock.MatchedBy(func(info *auditDomain.RequestInfo) bool {
			return info.AuthMechanism == ""
		}), http.StatusUnauthorized, "").Return(nil).Once()

		router := newAuditedRouter(recorder, func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		recorder.AssertExpectations(t)
	})

	t.Run("Error_PersistenceFailureReplacesResponse", func(t *testing.T) {
		recorder := &mocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, mock.Anything, http.StatusOK, "client:app").
			Return(apperrors.Join(apperrors.ErrPersistence, errors.New("db down"))).Once()

		router := newAuditedRouter(recorder, withClient("client:app"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"value": "secret"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret")
		assert.Contains(t, w.Body.String(), "persistence_error")
	})

	t.Run("Success_EmptyBody", func(t *testing.T) {
		recorder := &mocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, mock.Anything, http.StatusNoContent, "").Return(nil).Once()

		router := newAuditedRouter(recorder, func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_PanickingHandlerIsRecordedAsServerError", func(t *testing.T) {
		recorder := &mocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, mock.MatchedBy(func(info *auditDomain.RequestInfo) bool {
			return info.Path == "/api/v1/data"
		}), http.StatusInternalServerError, "client:app").Return(nil).Once()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		router := gin.New()
		router.Use(gin.RecoveryWithWriter(io.Discard))
		router.Use(AuditMiddleware(recorder, logger))
		router.GET("/api/v1/data", withClient("client:app"), func(c *gin.Context) {
			panic("boom")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		recorder.AssertExpectations(t)
	})

	t.Run("Error_PanickingHandlerStillPanicsWhenRecordFails", func(t *testing.T) {
		recorder := &mocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, mock.Anything, http.StatusInternalServerError, "").
			Return(apperrors.ErrPersistence).Once()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		router := gin.New()
		router.Use(gin.RecoveryWithWriter(io.Discard))
		router.Use(AuditMiddleware(recorder, logger))
		router.GET("/api/v1/data", func(c *gin.Context) {
			panic("boom")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		recorder.AssertExpectations(t)
	})
}

func TestParseRequestID(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	assert.Equal(t, id, parseRequestID(id.String()))
	assert.Equal(t, uuid.Nil, parseRequestID("not-a-uuid"))
	require.Equal(t, uuid.Nil, parseRequestID(""))
}
