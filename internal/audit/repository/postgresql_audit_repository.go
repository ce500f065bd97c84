// Package repository implements request audit record persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	"github.com/allisson/credentials/internal/database"
	apperrors "github.com/allisson/credentials/internal/errors"
)

// PostgreSQLAuditRepository implements request audit record persistence for PostgreSQL.
type PostgreSQLAuditRepository struct {
	db *sql.DB
}

// Create inserts a request audit record.
func (p *PostgreSQLAuditRepository) Create(ctx context.Context, record *auditDomain.RequestAuditRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO request_audit_records (id, actor, method, host, path, query_parameters,
			  status_code, client_ip, user_agent, auth_mechanism, created_at, signature, signing_key_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
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
func (p *PostgreSQLAuditRepository) ListByTimeRange(
	ctx context.Context,
	start, end time.Time,
	offset, limit int,
) ([]*auditDomain.RequestAuditRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + auditColumns + ` FROM request_audit_records
			  WHERE created_at >= $1 AND created_at <= $2
			  ORDER BY created_at ASC, id ASC
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, start, end, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list request audit records")
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// NewPostgreSQLAuditRepository creates a PostgreSQL audit repository.
func NewPostgreSQLAuditRepository(db *sql.DB) *PostgreSQLAuditRepository {
	return &PostgreSQLAuditRepository{db: db}
}
