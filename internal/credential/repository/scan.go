// Package repository implements credential version persistence for PostgreSQL and MySQL.
//
// A credential is a row in credentials holding the unique name; each version is a row in
// credential_versions. The current version of a name is the one with the greatest
// (created_at, id).
package repository

import (
	"database/sql"
	"strings"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

const versionColumns = `v.id, v.credential_id, c.name, v.type, v.created_at,
	v.key_id, v.encrypted_value, v.nonce,
	v.parameters_key_id, v.encrypted_parameters, v.parameters_nonce,
	v.username, v.salt, v.public_key, v.ca, v.certificate, v.expiry_date`

type rowScanner interface {
	Scan(dest ...any) error
}

// versionRow holds the nullable columns of a version between Scan and toData.
type versionRow struct {
	credentialType   string
	keyID            string
	ciphertext       []byte
	nonce            []byte
	parametersKeyID  sql.NullString
	parametersCipher []byte
	parametersNonce  []byte
	username         sql.NullString
	salt             sql.NullString
	publicKey        sql.NullString
	ca               sql.NullString
	certificate      sql.NullString
	expiryDate       sql.NullTime
	data             credentialDomain.CredentialVersionData
}

// dest returns the scan destinations after the two id columns.
func (r *versionRow) dest() []any {
	return []any{
		&r.data.Name,
		&r.credentialType,
		&r.data.CreatedAt,
		&r.keyID,
		&r.ciphertext,
		&r.nonce,
		&r.parametersKeyID,
		&r.parametersCipher,
		&r.parametersNonce,
		&r.username,
		&r.salt,
		&r.publicKey,
		&r.ca,
		&r.certificate,
		&r.expiryDate,
	}
}

func (r *versionRow) toData() *credentialDomain.CredentialVersionData {
	data := r.data
	data.Type = credentialDomain.CredentialType(r.credentialType)
	data.CreatedAt = data.CreatedAt.UTC()
	data.EncryptedValue = &cryptoDomain.EncryptedValue{KeyID: r.keyID, Ciphertext: r.ciphertext, Nonce: r.nonce}
	if r.parametersKeyID.Valid {
		data.EncryptedGenerationParameters = &cryptoDomain.EncryptedValue{
			KeyID:      r.parametersKeyID.String,
			Ciphertext: r.parametersCipher,
			Nonce:      r.parametersNonce,
		}
	}
	data.Username = r.username.String
	data.Salt = r.salt.String
	data.PublicKey = r.publicKey.String
	data.CA = r.ca.String
	data.Certificate = r.certificate.String
	if r.expiryDate.Valid {
		expiry := r.expiryDate.Time.UTC()
		data.ExpiryDate = &expiry
	}
	return &data
}

// encryptionArgs returns key_id, encrypted_value, nonce, parameters_key_id,
// encrypted_parameters and parameters_nonce.
func encryptionArgs(data *credentialDomain.CredentialVersionData) []any {
	var keyID string
	var ciphertext, nonce []byte
	if data.EncryptedValue != nil {
		keyID = data.EncryptedValue.KeyID
		ciphertext = data.EncryptedValue.Ciphertext
		nonce = data.EncryptedValue.Nonce
	}

	var paramsKeyID sql.NullString
	var paramsCiphertext, paramsNonce []byte
	if params := data.EncryptedGenerationParameters; params != nil {
		paramsKeyID = sql.NullString{String: params.KeyID, Valid: true}
		paramsCiphertext = params.Ciphertext
		paramsNonce = params.Nonce
	}

	return []any{keyID, ciphertext, nonce, paramsKeyID, paramsCiphertext, paramsNonce}
}

// cleartextArgs returns username, salt, public_key, ca, certificate and expiry_date.
func cleartextArgs(data *credentialDomain.CredentialVersionData) []any {
	var expiry sql.NullTime
	if data.ExpiryDate != nil {
		expiry = sql.NullTime{Time: *data.ExpiryDate, Valid: true}
	}
	return []any{
		nullString(data.Username),
		nullString(data.Salt),
		nullString(data.PublicKey),
		nullString(data.CA),
		nullString(data.Certificate),
		expiry,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// escapeLike escapes the LIKE wildcards in s using the default backslash escape.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func prefixPattern(prefix string) string {
	return escapeLike(strings.ToLower(prefix)) + "%"
}

func containsPattern(pattern string) string {
	return "%" + escapeLike(strings.ToLower(pattern)) + "%"
}
