package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int, client *authDomain.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if client != nil {
			c.Request = c.Request.WithContext(WithClient(c.Request.Context(), client))
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(ctx, rps, burst, testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGet(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("burst then 429 with retry-after", func(t *testing.T) {
		client := &authDomain.Client{ID: uuid.Must(uuid.NewV7())}
		router := newRateLimitedRouter(t, 0.5, 2, client)

		assert.Equal(t, http.StatusOK, doGet(router).Code)
		assert.Equal(t, http.StatusOK, doGet(router).Code)

		w := doGet(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.Positive(t, retryAfter)
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("clients have independent limits", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		first := &authDomain.Client{ID: uuid.Must(uuid.NewV7())}
		second := &authDomain.Client{ID: uuid.Must(uuid.NewV7())}

		middleware := RateLimitMiddleware(ctx, 0.1, 1, testLogger())
		router := gin.New()
		router.GET("/test/:client", func(c *gin.Context) {
			client := first
			if c.Param("client") == "second" {
				client = second
			}
			c.Request = c.Request.WithContext(WithClient(c.Request.Context(), client))
			c.Next()
		}, middleware, func(c *gin.Context) { c.Status(http.StatusOK) })

		get := func(path string) int {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w.Code
		}

		assert.Equal(t, http.StatusOK, get("/test/first"))
		assert.Equal(t, http.StatusTooManyRequests, get("/test/first"))
		assert.Equal(t, http.StatusOK, get("/test/second"))
	})

	t.Run("requires an authenticated client", func(t *testing.T) {
		router := newRateLimitedRouter(t, 10, 10, nil)
		assert.Equal(t, http.StatusUnauthorized, doGet(router).Code)
	})
}

func TestRateLimiterStore_RemoveIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	active := uuid.Must(uuid.NewV7())
	idle := uuid.Must(uuid.NewV7())

	store.getLimiter(active)
	store.getLimiter(idle)
	value, ok := store.limiters.Load(idle)
	require.True(t, ok)
	value.(*rateLimiterEntry).lastAccess = time.Now().Add(-2 * time.Hour)

	store.removeIdle(time.Now().Add(-time.Hour))

	_, ok = store.limiters.Load(active)
	assert.True(t, ok)
	_, ok = store.limiters.Load(idle)
	assert.False(t, ok)
}
