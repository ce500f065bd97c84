package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// Encryptor encrypts and decrypts version fields. It is shared by every version and
// injected at construction.
type Encryptor interface {
	Encrypt(plaintext string) (*cryptoDomain.EncryptedValue, error)
	Decrypt(value *cryptoDomain.EncryptedValue) (string, error)
}

// CredentialVersionData is the persisted shape of a version. Which optional fields are
// populated depends on Type.
type CredentialVersionData struct {
	ID                            uuid.UUID
	CredentialID                  uuid.UUID
	Name                          string
	Type                          CredentialType
	CreatedAt                     time.Time
	EncryptedValue                *cryptoDomain.EncryptedValue
	EncryptedGenerationParameters *cryptoDomain.EncryptedValue
	Username                      string
	Salt                          string
	PublicKey                     string
	CA                            string
	Certificate                   string
	ExpiryDate                    *time.Time
}

// CredentialVersion is one version of a credential.
type CredentialVersion interface {
	// Data returns the persisted shape. Callers must not mutate it.
	Data() *CredentialVersionData
	CredentialType() CredentialType
	// Value returns the decrypted value, decrypting at most once per instance.
	Value() (CredentialValue, error)
	// Rotate re-encrypts every encrypted field under the active key. The decrypted
	// value and generation parameters are unchanged.
	Rotate() error
	// MatchesGenerationParameters reports whether the version was generated with
	// params. Nil params always match.
	MatchesGenerationParameters(params GenerationParameters) (bool, error)
}

// Regenerable is implemented by versions of generatable types.
type Regenerable interface {
	// StoredGenerationParameters returns the parameters the value was generated with,
	// or nil when the value was set rather than generated.
	StoredGenerationParameters() (GenerationParameters, error)
}

// NewCredentialVersionFromData wraps a loaded row in the variant named by its type tag.
func NewCredentialVersionFromData(data *CredentialVersionData, encryptor Encryptor) (CredentialVersion, error) {
	base := baseVersion{data: data, encryptor: encryptor}

	switch data.Type {
	case TypePassword:
		return &PasswordCredentialVersion{baseVersion: base}, nil
	case TypeUser:
		return &UserCredentialVersion{baseVersion: base}, nil
	case TypeJSON:
		return &JSONCredentialVersion{baseVersion: base}, nil
	case TypeValue:
		return &ValueCredentialVersion{baseVersion: base}, nil
	case TypeRsa:
		return &RsaCredentialVersion{baseVersion: base}, nil
	case TypeSsh:
		return &SshCredentialVersion{baseVersion: base}, nil
	case TypeCertificate:
		return &CertificateCredentialVersion{baseVersion: base}, nil
	default:
		return nil, ErrUnknownCredentialType
	}
}

func newData(name string, t CredentialType) *CredentialVersionData {
	return &CredentialVersionData{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      NormalizeName(name),
		Type:      t,
		CreatedAt: time.Now().UTC(),
	}
}

type baseVersion struct {
	data      *CredentialVersionData
	encryptor Encryptor
}

func (b *baseVersion) Data() *CredentialVersionData {
	return b.data
}

func (b *baseVersion) CredentialType() CredentialType {
	return b.data.Type
}

func (b *baseVersion) encryptValue(plaintext string) error {
	encrypted, err := b.encryptor.Encrypt(plaintext)
	if err != nil {
		return err
	}
	b.data.EncryptedValue = encrypted
	return nil
}

func (b *baseVersion) decryptValue() (string, error) {
	return b.encryptor.Decrypt(b.data.EncryptedValue)
}

// encryptParameters stores params encrypted. Nil params clear the stored parameters.
func (b *baseVersion) encryptParameters(params GenerationParameters) error {
	if isNilParameters(params) {
		b.data.EncryptedGenerationParameters = nil
		return nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	encrypted, err := b.encryptor.Encrypt(string(raw))
	if err != nil {
		return err
	}
	b.data.EncryptedGenerationParameters = encrypted
	return nil
}

// decryptParameters returns the stored parameter JSON, or "" when none were stored.
func (b *baseVersion) decryptParameters() (string, error) {
	if b.data.EncryptedGenerationParameters == nil {
		return "", nil
	}
	return b.encryptor.Decrypt(b.data.EncryptedGenerationParameters)
}

// rotateFields re-encrypts the value and the parameters, replacing both only once
// every field has been re-encrypted.
func (b *baseVersion) rotateFields() error {
	value, err := b.decryptValue()
	if err != nil {
		return err
	}
	rotatedValue, err := b.encryptor.Encrypt(value)
	if err != nil {
		return err
	}

	var rotatedParams *cryptoDomain.EncryptedValue
	if b.data.EncryptedGenerationParameters != nil {
		params, err := b.decryptParameters()
		if err != nil {
			return err
		}
		if rotatedParams, err = b.encryptor.Encrypt(params); err != nil {
			return err
		}
	}

	b.data.EncryptedValue = rotatedValue
	b.data.EncryptedGenerationParameters = rotatedParams
	return nil
}
