package repository

import (
	"context"
	"database/sql"
	"time"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// MySQLAuditRepository implements request audit record persistence for MySQL. Ids are
// stored as BINARY(16).
type MySQLAuditRepository struct {
	db *sql.DB
}

// Create inserts a request audit record.
func (m *MySQLAuditRepository) Create(ctx context.Context, record *auditDomain.RequestAuditRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal request audit record id")
	}

	query := `INSERT INTO request_audit_records (id, actor, method, host, path, query_parameters,
			  status_code, client_ip, user_agent, auth_mechanism, created_at, signature, signing_key_id)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.Actor,
		record.Method,
		record.Host,
		record.Path,
		record.QueryParameters,
		record.StatusCode,
		record.ClientIP,
		record.UserAgent,
		record.AuthMechanism,
		record.CreatedAt,
		record.Signature,
		record.SigningKeyID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create request audit record")
	}
	return nil
}

// ListByTimeRange returns records created within [start, end], oldest first.
func (m *MySQLAuditRepository) ListByTimeRange(
	ctx context.Context,
	start, end time.Time,
	offset, limit int,
) ([]*auditDomain.RequestAuditRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + auditColumns + ` FROM request_audit_records
			  WHERE created_at >= ? AND created_at <= ?
			  ORDER BY created_at ASC, id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, start, end, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list request audit records")
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// NewMySQLAuditRepository creates a MySQL audit repository.
func NewMySQLAuditRepository(db *sql.DB) *MySQLAuditRepository {
	return &MySQLAuditRepository{db: db}
}
