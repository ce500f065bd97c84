package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	auditService "github.com/allisson/credentials/internal/audit/service"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// verifyBatchSize is the page size used when walking stored records.
const verifyBatchSize = 500

type auditRecorder struct {
	repo      AuditRepository
	signer    auditService.AuditSigner
	eventsLog auditService.SecurityEventsLog
	logger    *slog.Logger
}

// Record writes the security event first. A signing failure leaves the record unsigned; a
// repository failure is returned wrapped in ErrPersistence.
func (a *auditRecorder) Record(
	ctx context.Context,
	info *auditDomain.RequestInfo,
	statusCode int,
	actor string,
) error {
	record := auditDomain.NewRequestAuditRecord(info, statusCode, actor)

	if err := a.eventsLog.Log(auditDomain.NewSecurityEventAuditRecord(record, actor)); err != nil {
		a.logger.Error("failed to write security event",
			slog.String("request_id", record.ID.String()),
			slog.Any("error", err),
		)
	}

	if err := a.signer.Sign(record); err != nil {
		a.logger.Warn("storing unsigned audit record",
			slog.String("request_id", record.ID.String()),
			slog.Any("error", err),
		)
	}

	if err := a.repo.Create(ctx, record); err != nil {
		return apperrors.Wrap(
			apperrors.Join(apperrors.ErrPersistence, err),
			"failed to persist request audit record",
		)
	}

	return nil
}

// VerifyBatch pages through the window and checks each signature.
func (a *auditRecorder) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*auditDomain.VerificationReport, error) {
	if end.Before(start) {
		return nil, auditDomain.ErrInvalidTimeRange
	}

	report := &auditDomain.VerificationReport{
		StartTime:  start,
		EndTime:    end,
		InvalidIDs: []uuid.UUID{},
	}

	for offset := 0; ; offset += verifyBatchSize {
		records, err := a.repo.ListByTimeRange(ctx, start, end, offset, verifyBatchSize)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list request audit records")
		}

		for _, record := range records {
			report.TotalChecked++
			switch err := a.signer.Verify(record); {
			case err == nil:
				report.ValidCount++
			case apperrors.Is(err, auditDomain.ErrRecordNotSigned):
				report.UnsignedCount++
			default:
				report.InvalidCount++
				report.InvalidIDs = append(report.InvalidIDs, record.ID)
			}
		}

		if len(records) < verifyBatchSize {
			break
		}
	}

	return report, nil
}

// NewAuditRecorder creates an AuditRecorder.
func NewAuditRecorder(
	repo AuditRepository,
	signer auditService.AuditSigner,
	eventsLog auditService.SecurityEventsLog,
	logger *slog.Logger,
) AuditRecorder {
	return &auditRecorder{
		repo:      repo,
		signer:    signer,
		eventsLog: eventsLog,
		logger:    logger,
	}
}
