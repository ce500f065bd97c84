package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	auditUseCase "github.com/allisson/credentials/internal/audit/usecase"
)

// RunVerifyAuditLogs recomputes the signature of every request audit record created
// within the range and reports tampered and unsigned records. Dates are UTC.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditRecorder auditUseCase.AuditRecorder,
	logger *slog.Logger,
	writer io.Writer,
	startDate, endDate string,
	format string,
) error {
	start, err := parseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end, err := parseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	if !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}

	logger.Info("verifying audit logs",
		slog.Time("start_date", start),
		slog.Time("end_date", end),
	)

	report, err := auditRecorder.VerifyBatch(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if format == "json" {
		if err := outputVerifyJSON(writer, report); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputVerifyText(writer, report, start, end)
	}

	logger.Info("verification completed",
		slog.Int("total_checked", report.TotalChecked),
		slog.Int("valid", report.ValidCount),
		slog.Int("invalid", report.InvalidCount),
		slog.Int("unsigned", report.UnsignedCount),
	)

	if report.InvalidCount > 0 {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", report.InvalidCount)
	}

	return nil
}

// parseDate accepts "YYYY-MM-DD" (start of day) or "YYYY-MM-DD HH:MM:SS".
func parseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", dateStr)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"invalid date format (expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS): %s",
			dateStr,
		)
	}

	return t, nil
}

func outputVerifyText(writer io.Writer, report *auditDomain.VerificationReport, start, end time.Time) {
	_, _ = fmt.Fprintf(writer, "Request Audit Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "====================================\n\n")
	_, _ = fmt.Fprintf(writer,
		"Time Range: %s to %s\n\n",
		start.Format("2006-01-02 15:04:05"),
		end.Format("2006-01-02 15:04:05"),
	)

	_, _ = fmt.Fprintf(writer, "Total Checked:  %d\n", report.TotalChecked)
	_, _ = fmt.Fprintf(writer, "Unsigned:       %d\n", report.UnsignedCount)
	_, _ = fmt.Fprintf(writer, "Valid:          %d\n", report.ValidCount)
	_, _ = fmt.Fprintf(writer, "Invalid:        %d\n\n", report.InvalidCount)

	switch {
	case report.InvalidCount > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d record(s) failed integrity check!\n\n", report.InvalidCount)
		_, _ = fmt.Fprintf(writer, "Invalid Record IDs:\n")
		for _, id := range report.InvalidIDs {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.TotalChecked == 0:
		_, _ = fmt.Fprintf(writer, "Status: No records found in specified time range\n")
	case report.UnsignedCount > 0:
		_, _ = fmt.Fprintf(writer, "Status: PASSED with %d unsigned record(s)\n", report.UnsignedCount)
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}

func outputVerifyJSON(writer io.Writer, report *auditDomain.VerificationReport) error {
	invalidIDs := make([]string, 0, len(report.InvalidIDs))
	for _, id := range report.InvalidIDs {
		invalidIDs = append(invalidIDs, id.String())
	}
	return writeJSON(writer, map[string]any{
		"total_checked":  report.TotalChecked,
		"unsigned_count": report.UnsignedCount,
		"valid_count":    report.ValidCount,
		"invalid_count":  report.InvalidCount,
		"invalid_ids":    invalidIDs,
		"passed":         report.InvalidCount == 0,
	})
}
