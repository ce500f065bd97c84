package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	"github.com/allisson/credentials/internal/metrics"
)

type auditRecorderWithMetrics struct {
	next    AuditRecorder
	metrics metrics.BusinessMetrics
}

// NewAuditRecorderWithMetrics wraps an AuditRecorder with business metrics.
func NewAuditRecorderWithMetrics(recorder AuditRecorder, m metrics.BusinessMetrics) AuditRecorder {
	return &auditRecorderWithMetrics{next: recorder, metrics: m}
}

func (a *auditRecorderWithMetrics) Record(
	ctx context.Context,
	info *auditDomain.RequestInfo,
	statusCode int,
	actor string,
) error {
	start := time.Now()
	err := a.next.Record(ctx, info, statusCode, actor)
	metrics.Observe(ctx, a.metrics, "audit", "audit_record", start, err)
	return err
}

func (a *auditRecorderWithMetrics) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*auditDomain.VerificationReport, error) {
	began := time.Now()
	report, err := a.next.VerifyBatch(ctx, start, end)
	metrics.Observe(ctx, a.metrics, "audit", "audit_verify", began, err)
	return report, err
}
