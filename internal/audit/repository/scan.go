package repository

import (
	"database/sql"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	apperrors "github.com/allisson/credentials/internal/errors"
)

const auditColumns = `id, actor, method, host, path, query_parameters, status_code, client_ip,
			  user_agent, auth_mechanism, created_at, signature, signing_key_id`

// scanRecords reads every row. The uuid scanner accepts both the PostgreSQL text form and
// the MySQL BINARY(16) form.
func scanRecords(rows *sql.Rows) ([]*auditDomain.RequestAuditRecord, error) {
	records := make([]*auditDomain.RequestAuditRecord, 0)
	for rows.Next() {
		var record auditDomain.RequestAuditRecord
		if err := rows.Scan(
			&record.ID,
			&record.Actor,
			&record.Method,
			&record.Host,
			&record.Path,
			&record.QueryParameters,
			&record.StatusCode,
			&record.ClientIP,
			&record.UserAgent,
			&record.AuthMechanism,
			&record.CreatedAt,
			&record.Signature,
			&record.SigningKeyID,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan request audit record")
		}
		record.CreatedAt = record.CreatedAt.UTC()
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate request audit records")
	}
	return records, nil
}
