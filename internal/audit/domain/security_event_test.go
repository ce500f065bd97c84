package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestRecord(status int) *RequestAuditRecord {
	return &RequestAuditRecord{
		ID:              uuid.Must(uuid.NewV7()),
		Actor:           "client:app",
		Method:          "GET",
		Host:            "credentials.example.com",
		Path:            "/api/v1/data",
		QueryParameters: "name=/foo",
		StatusCode:      status,
		ClientIP:        "10.0.0.1",
		UserAgent:       "curl/8.0",
		AuthMechanism:   "basic",
		CreatedAt:       time.UnixMilli(1700000000123).UTC(),
	}
}

func TestNewRequestAuditRecord(t *testing.T) {
	t.Run("Success_CopiesRequestInfo", func(t *testing.T) {
		requestID := uuid.Must(uuid.NewV7())
		receivedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
		info := &RequestInfo{
			RequestID:       requestID,
			Method:          "PUT",
			Path:            "/api/v1/data",
			QueryParameters: "",
			ClientIP:        "127.0.0.1",
			AuthMechanism:   "basic",
			ReceivedAt:      receivedAt,
		}

		record := NewRequestAuditRecord(info, 200, "client:app")

		assert.Equal(t, requestID, record.ID)
		assert.Equal(t, "client:app", record.Actor)
		assert.Equal(t, "PUT", record.Method)
		assert.Equal(t, 200, record.StatusCode)
		assert.Equal(t, receivedAt.UTC(), record.CreatedAt)
		assert.False(t, record.IsSigned())
	})

	t.Run("Success_FillsMissingIDAndTime", func(t *testing.T) {
		record := NewRequestAuditRecord(&RequestInfo{Method: "GET"}, 401, "")

		assert.NotEqual(t, uuid.Nil, record.ID)
		assert.False(t, record.CreatedAt.IsZero())
		assert.Empty(t, record.Actor)
	})
}

func TestSecurityEventAuditRecord_Result(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{200, ResultSuccess},
		{302, ResultSuccess},
		{403, ResultClientError},
		{404, ResultClientError},
		{500, ResultServerError},
	}

	for _, tt := range tests {
		event := NewSecurityEventAuditRecord(newTestRecord(tt.status), "client:app")
		assert.Equal(t, tt.expected, event.Result(), "status %d", tt.status)
	}
}

func TestSecurityEventAuditRecord_CEF(t *testing.T) {
	t.Run("Success_RendersHeaderAndExtensions", func(t *testing.T) {
		event := NewSecurityEventAuditRecord(newTestRecord(200), "client:app")

		line := event.CEF("1.2.3")

		assert.Equal(t,
			"CEF:0|allisson|credentials|1.2.3|GET /api/v1/data?name=/foo|GET /api/v1/data?name=/foo|0|"+
				"rt=1700000000123 suser=client:app suid=client:app "+
				"cs1Label=userAuthenticationMechanism cs1=basic "+
				"request=/api/v1/data?name\\=/foo requestMethod=GET "+
				"cs3Label=result cs3=success cs4Label=httpStatusCode cs4=200 "+
				"src=10.0.0.1 dst=credentials.example.com",
			line,
		)
	})

	t.Run("Success_AnonymousActorIsEmpty", func(t *testing.T) {
		record := newTestRecord(401)
		record.QueryParameters = ""
		event := NewSecurityEventAuditRecord(record, "")

		line := event.CEF("1.0.0")

		assert.Contains(t, line, "|GET /api/v1/data|")
		assert.Contains(t, line, " suser= suid= ")
		assert.Contains(t, line, "cs3=clientError")
	})

	t.Run("Success_EscapesHeaderPipes", func(t *testing.T) {
		record := newTestRecord(200)
		record.Path = "/a|b"
		record.QueryParameters = ""

		line := NewSecurityEventAuditRecord(record, "x").CEF("1.0.0")

		assert.Contains(t, line, `|GET /a\|b|`)
	})
}
