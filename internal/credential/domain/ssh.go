package domain

import (
	"crypto/rsa"
	"encoding/json"

	"golang.org/x/crypto/ssh"
)

// SshCredentialVersion holds a cleartext OpenSSH public key line and an encrypted PEM
// private key.
type SshCredentialVersion struct {
	baseVersion
	privateKey *string
}

// NewSshCredentialVersion creates an empty ssh version named name.
func NewSshCredentialVersion(name string, encryptor Encryptor) *SshCredentialVersion {
	return &SshCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypeSsh), encryptor: encryptor},
	}
}

// SetValue stores the key pair and the optional parameters it was generated with.
// The private key is required.
func (v *SshCredentialVersion) SetValue(value *SshCredentialValue, params *SshGenerationParameters) error {
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

func (v *SshCredentialVersion) PublicKey() string {
	return v.data.PublicKey
}

// PrivateKey returns the decrypted private key.
func (v *SshCredentialVersion) PrivateKey() (string, error) {
	if v.privateKey == nil {
		privateKey, err := v.decryptValue()
		if err != nil {
			return "", err
		}
		v.privateKey = &privateKey
	}
	return *v.privateKey, nil
}

// Fingerprint returns the SHA256 fingerprint of the public key, or "" when the stored
// public key does not parse.
func (v *SshCredentialVersion) Fingerprint() string {
	key, _, err := v.parsePublicKey()
	if err != nil {
		return ""
	}
	return ssh.FingerprintSHA256(key)
}

func (v *SshCredentialVersion) Value() (CredentialValue, error) {
	privateKey, err := v.PrivateKey()
	if err != nil {
		return nil, err
	}
	return &SshCredentialValue{
		PublicKey:            v.data.PublicKey,
		PrivateKey:           privateKey,
		PublicKeyFingerprint: v.Fingerprint(),
	}, nil
}

// StoredGenerationParameters returns the parameters the key was generated with, or nil
// when it was set.
func (v *SshCredentialVersion) StoredGenerationParameters() (GenerationParameters, error) {
	raw, err := v.decryptParameters()
	if err != nil || raw == "" {
		return nil, err
	}
	var params SshGenerationParameters
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, ErrInvalidParameters
	}
	return &params, nil
}

func (v *SshCredentialVersion) Rotate() error {
	return v.rotateFields()
}

// MatchesGenerationParameters compares the requested key length and comment with the
// stored public key. A stored key that cannot be parsed as RSA never matches.
func (v *SshCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
	if isNilParameters(params) {
		return true, nil
	}
	requested, ok := params.(*SshGenerationParameters)
	if !ok {
		return false, nil
	}

	key, comment, err := v.parsePublicKey()
	if err != nil {
		return false, nil
	}
	cryptoKey, ok := key.(ssh.CryptoPublicKey)
	if !ok {
		return false, nil
	}
	rsaKey, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return false, nil
	}

	requested = requested.WithDefaults()
	return requested.KeyLength == rsaKey.N.BitLen() && requested.SSHComment == comment, nil
}

func (v *SshCredentialVersion) parsePublicKey() (ssh.PublicKey, string, error) {
	key, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(v.data.PublicKey))
	if err != nil {
		return nil, "", ErrInvalidKey
	}
	return key, comment, nil
}
