// Package usecase records request audit entries on both channels and verifies stored signatures.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
)

// AuditRepository persists request audit records.
type AuditRepository interface {
	Create(ctx context.Context, record *auditDomain.RequestAuditRecord) error
	// ListByTimeRange returns records with start <= created_at <= end, oldest first.
	ListByTimeRange(
		ctx context.Context,
		start, end time.Time,
		offset, limit int,
	) ([]*auditDomain.RequestAuditRecord, error)
}

// AuditRecorder records the outcome of every request.
type AuditRecorder interface {
	// Record emits a security event for the request and then persists a signed record.
	// The security event is written even when persistence fails.
	Record(ctx context.Context, info *auditDomain.RequestInfo, statusCode int, actor string) error
	// VerifyBatch recomputes the signatures of every record created within [start, end].
	VerifyBatch(ctx context.Context, start, end time.Time) (*auditDomain.VerificationReport, error)
}
