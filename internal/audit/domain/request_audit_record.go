// Package domain defines the request audit record, its security-event rendering and
// the verification report produced when stored records are re-checked.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestInfo is the transport-independent view of an inbound request.
type RequestInfo struct {
	RequestID       uuid.UUID
	Method          string
	Host            string
	Path            string
	QueryParameters string
	ClientIP        string
	UserAgent       string
	AuthMechanism   string
	ReceivedAt      time.Time
}

// RequestAuditRecord is the durable, signed record of one request and its outcome.
type RequestAuditRecord struct {
	ID              uuid.UUID
	Actor           string
	Method          string
	Host            string
	Path            string
	QueryParameters string
	StatusCode      int
	ClientIP        string
	UserAgent       string
	AuthMechanism   string
	CreatedAt       time.Time
	Signature       []byte
	SigningKeyID    string
}

// NewRequestAuditRecord builds an unsigned record for info. A zero request id is replaced by a
// fresh UUIDv7 and a zero receive time by the current time.
func NewRequestAuditRecord(info *RequestInfo, statusCode int, actor string) *RequestAuditRecord {
	id := info.RequestID
	if id == uuid.Nil {
		id = uuid.Must(uuid.NewV7())
	}
	createdAt := info.ReceivedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &RequestAuditRecord{
		ID:              id,
		Actor:           actor,
		Method:          info.Method,
		Host:            info.Host,
		Path:            info.Path,
		QueryParameters: info.QueryParameters,
		StatusCode:      statusCode,
		ClientIP:        info.ClientIP,
		UserAgent:       info.UserAgent,
		AuthMechanism:   info.AuthMechanism,
		CreatedAt:       createdAt.UTC().Truncate(time.Microsecond),
	}
}

// IsSigned reports whether the record carries a signature.
func (r *RequestAuditRecord) IsSigned() bool {
	return len(r.Signature) > 0 && r.SigningKeyID != ""
}

// VerificationReport summarises a signature check over a batch of stored records.
type VerificationReport struct {
	StartTime     time.Time
	EndTime       time.Time
	TotalChecked  int
	ValidCount    int
	InvalidCount  int
	UnsignedCount int
	InvalidIDs    []uuid.UUID
}

// Passed reports whether every checked record carried a valid signature.
func (r *VerificationReport) Passed() bool {
	return r.InvalidCount == 0 && r.UnsignedCount == 0
}
