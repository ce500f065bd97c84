package domain

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
)

// RsaCredentialVersion holds a cleartext PEM public key and an encrypted PEM private key.
type RsaCredentialVersion struct {
	baseVersion
	privateKey *string
}

// NewRsaCredentialVersion creates an empty rsa version named name.
func NewRsaCredentialVersion(name string, encryptor Encryptor) *RsaCredentialVersion {
	return &RsaCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypeRsa), encryptor: encryptor},
	}
}

// SetValue stores the key pair and the optional parameters it was generated with.
// The private key is required.
func (v *RsaCredentialVersion) SetValue(value *RsaCredentialValue, params *RsaSshGenerationParameters) error {
	if value == nil || value.PrivateKey == "" {
		return ErrMissingValue
	}
	if err := v.encryptValue(value.PrivateKey); err != nil {
		return err
	}
	var p GenerationParameters
	if params != nil {
		p = params
	}
	if err := v.encryptParameters(p); err != nil {
		return err
	}
	v.data.PublicKey = value.PublicKey
	privateKey := value.PrivateKey
	v.privateKey = &privateKey
	return nil
}

func (v *RsaCredentialVersion) PublicKey() string {
	return v.data.PublicKey
}

// PrivateKey returns the decrypted private key.
func (v *RsaCredentialVersion) PrivateKey() (string, error) {
	if v.privateKey == nil {
		privateKey, err := v.decryptValue()
		if err != nil {
			return "", err
		}
		v.privateKey = &privateKey
	}
	return *v.privateKey, nil
}

func (v *RsaCredentialVersion) Value() (CredentialValue, error) {
	privateKey, err := v.PrivateKey()
	if err != nil {
		return nil, err
	}
	return &RsaCredentialValue{PublicKey: v.data.PublicKey, PrivateKey: privateKey}, nil
}

// KeyLength returns the modulus size of the public key.
func (v *RsaCredentialVersion) KeyLength() (int, error) {
	return PEMPublicKeyLength(v.data.PublicKey)
}

// StoredGenerationParameters returns the parameters the key was generated with, or nil
// when it was set.
func (v *RsaCredentialVersion) StoredGenerationParameters() (GenerationParameters, error) {
	raw, err := v.decryptParameters()
	if err != nil || raw == "" {
		return nil, err
	}
	var params RsaSshGenerationParameters
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, ErrInvalidParameters
	}
	return &params, nil
}

func (v *RsaCredentialVersion) Rotate() error {
	return v.rotateFields()
}

// MatchesGenerationParameters compares the requested key length with the stored key.
// A stored public key that cannot be measured never matches.
func (v *RsaCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
	if isNilParameters(params) {
		return true, nil
	}
	requested, ok := params.(*RsaSshGenerationParameters)
	if !ok {
		return false, nil
	}
	length, err := v.KeyLength()
	if err != nil {
		return false, nil
	}
	return requested.WithDefaults().KeyLength == length, nil
}

// PEMPublicKeyLength parses a PKIX or PKCS#1 RSA public key PEM block and returns its
// modulus size in bits.
func PEMPublicKeyLength(publicKeyPEM string) (int, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return 0, ErrInvalidKey
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key.N.BitLen(), nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return 0, ErrInvalidKey
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return 0, ErrInvalidKey
	}
	return key.N.BitLen(), nil
}
