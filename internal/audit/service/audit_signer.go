package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	auditDomain "github.com/allisson/credentials/internal/audit/domain"
	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// signingInfo is the HKDF info string for audit signing subkeys.
const signingInfo = "audit-log-signing-v1"

type auditSigner struct {
	keys SigningKeySource
}

// NewAuditSigner creates an HMAC-SHA256 signer whose keys are derived from keys.
func NewAuditSigner(keys SigningKeySource) AuditSigner {
	return &auditSigner{keys: keys}
}

// canonicalize encodes the signed fields of record.
// Format: id || len-prefixed strings... || status_code || created_at
func canonicalize(record *auditDomain.RequestAuditRecord) []byte {
	buf := make([]byte, 0, 512)

	buf = append(buf, record.ID[:]...)
	for _, field := range []string{
		record.Actor,
		record.Method,
		record.Host,
		record.Path,
		record.QueryParameters,
		record.ClientIP,
		record.UserAgent,
		record.AuthMechanism,
	} {
		buf = appendLengthPrefixed(buf, []byte(field))
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(record.StatusCode))
	buf = binary.BigEndian.AppendUint64(buf, uint64(record.CreatedAt.UnixMicro()))

	return buf
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	if uint64(len(data)) > 0xFFFFFFFF {
		panic("data length exceeds uint32 max (4GB)")
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

func (a *auditSigner) compute(keyID string, record *auditDomain.RequestAuditRecord) ([]byte, error) {
	signingKey, err := a.keys.DeriveKey(keyID, signingInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer cryptoDomain.Zero(signingKey)

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonicalize(record))
	return mac.Sum(nil), nil
}

// Sign signs record with the active key.
func (a *auditSigner) Sign(record *auditDomain.RequestAuditRecord) error {
	keyID := a.keys.ActiveKeyID()
	signature, err := a.compute(keyID, record)
	if err != nil {
		return err
	}
	record.Signature = signature
	record.SigningKeyID = keyID
	return nil
}

// Verify returns ErrSignatureInvalid when record was altered after signing.
func (a *auditSigner) Verify(record *auditDomain.RequestAuditRecord) error {
	if !record.IsSigned() {
		return auditDomain.ErrRecordNotSigned
	}

	expected, err := a.compute(record.SigningKeyID, record)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(record.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}

	return nil
}
