// Package domain defines credential versions, their values and generation parameters.
//
// A credential is a name with a history of versions. Each version is one of a fixed set
// of variants (password, user, json, value, rsa, ssh, certificate) dispatched on its type
// tag. Secret material is always held encrypted; plaintext is decrypted lazily and
// cached only on the loaded instance.
package domain

import (
	"strings"
)

// CredentialType is the type tag stored with every version.
type CredentialType string

const (
	TypePassword    CredentialType = "password"
	TypeUser        CredentialType = "user"
	TypeJSON        CredentialType = "json"
	TypeValue       CredentialType = "value"
	TypeRsa         CredentialType = "rsa"
	TypeSsh         CredentialType = "ssh"
	TypeCertificate CredentialType = "certificate"
)

// Password length bounds. Requests outside the bounds use the default length.
const (
	DefaultPasswordLength = 30
	MinPasswordLength     = 4
	MaxPasswordLength     = 200
)

// Key lengths accepted for RSA, SSH and certificate keys.
const DefaultKeyLength = 2048

var validKeyLengths = []int{2048, 3072, 4096}

// DefaultCertificateDuration is the validity of generated certificates, in days.
const DefaultCertificateDuration = 365

// ParseCredentialType returns the type named by s.
func ParseCredentialType(s string) (CredentialType, error) {
	switch t := CredentialType(strings.ToLower(s)); t {
	case TypePassword, TypeUser, TypeJSON, TypeValue, TypeRsa, TypeSsh, TypeCertificate:
		return t, nil
	default:
		return "", ErrUnknownCredentialType
	}
}

// Generatable reports whether values of this type can be generated.
func (t CredentialType) Generatable() bool {
	switch t {
	case TypePassword, TypeUser, TypeRsa, TypeSsh, TypeCertificate:
		return true
	default:
		return false
	}
}

// NormalizeName returns name with a leading slash.
func NormalizeName(name string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}
	return "/" + name
}
