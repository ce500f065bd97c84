// Package http provides the gin middleware that audits every API request.
package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	auditUseCase "github.com/allisson/credentials/internal/audit/usecase"
	authHTTP "github.com/allisson/credentials/internal/auth/http"
	"github.com/allisson/credentials/internal/httputil"
)

// bufferedWriter holds the handler's response until the request has been audited.
type bufferedWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	status  int
	written bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

// AuditMiddleware records every request through recorder. The handler's response is
// buffered; when the audit record cannot be persisted it is discarded and a 500 is
// returned instead. A panicking handler is recorded as a 500 before the panic is
// passed on to the recovery middleware.
func AuditMiddleware(recorder auditUseCase.AuditRecorder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		receivedAt := time.Now()

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
		c.Writer = buffered

		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			c.Writer = original

			ctx := c.Request.Context()
			info := requestInfo(c, receivedAt)
			if err := recorder.Record(ctx, info, http.StatusInternalServerError, authHTTP.ActorFromContext(ctx)); err != nil {
				logger.Error("failed to record audit of panicking request",
					slog.String("path", info.Path),
					slog.Any("error", err),
				)
			}
			panic(recovered)
		}()

		c.Next()

		c.Writer = original

		ctx := c.Request.Context()
		info := requestInfo(c, receivedAt)
		if err := recorder.Record(ctx, info, buffered.status, authHTTP.ActorFromContext(ctx)); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			return
		}

		original.WriteHeader(buffered.status)
		if buffered.body.Len() > 0 {
			if _, err := original.Write(buffered.body.Bytes()); err != nil {
				logger.Warn("failed to write response", slog.Any("error", err))
			}
		} else {
			original.WriteHeaderNow()
		}
	}
}

func requestInfo(c *gin.Context, receivedAt time.Time) *auditDomain.RequestInfo {
	return &auditDomain.RequestInfo{
		RequestID:       parseRequestID(requestid.Get(c)),
		Method:          c.Request.Method,
		Host:            c.Request.Host,
		Path:            c.Request.URL.Path,
		QueryParameters: c.Request.URL.RawQuery,
		ClientIP:        c.ClientIP(),
		UserAgent:       c.Request.UserAgent(),
		AuthMechanism:   authHTTP.AuthMechanismFromContext(c.Request.Context()),
		ReceivedAt:      receivedAt,
	}
}

func parseRequestID(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
