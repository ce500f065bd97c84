// Package service provides the audit record signer and the security-event log sinks.
package service

import (
	auditDomain "github.com/allisson/credentials/internal/audit/domain"
)

// SigningKeySource derives signing subkeys from registered encryption keys.
type SigningKeySource interface {
	ActiveKeyID() string
	DeriveKey(keyID, info string) ([]byte, error)
}

// AuditSigner signs request audit records and verifies stored signatures.
type AuditSigner interface {
	// Sign sets Signature and SigningKeyID on record using the active key.
	Sign(record *auditDomain.RequestAuditRecord) error
	// Verify recomputes the signature with the record's SigningKeyID.
	Verify(record *auditDomain.RequestAuditRecord) error
}

// SecurityEventsLog receives one entry per request, independently of durable persistence.
type SecurityEventsLog interface {
	Log(event *auditDomain.SecurityEventAuditRecord) error
}
