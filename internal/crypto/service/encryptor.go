package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// Encryptor encrypts with the active key and decrypts with whichever key a value names,
// so values written under legacy keys stay readable.
type Encryptor struct {
	registry *KeyRegistry
}

// NewEncryptor creates an Encryptor over registry.
func NewEncryptor(registry *KeyRegistry) *Encryptor {
	return &Encryptor{registry: registry}
}

// ActiveKeyID returns the id of the key new values are encrypted under.
func (e *Encryptor) ActiveKeyID() string {
	return e.registry.ActiveKeyID()
}

// Encrypt encrypts plaintext under the active key.
func (e *Encryptor) Encrypt(plaintext string) (*cryptoDomain.EncryptedValue, error) {
	provider, err := e.registry.Active()
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := provider.Encrypt([]byte(plaintext))
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedValue{
		KeyID:      provider.KeyID(),
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}, nil
}

// Decrypt decrypts value with the key named by value.KeyID. A nil or empty value is a
// decryption failure, never an empty plaintext.
func (e *Encryptor) Decrypt(value *cryptoDomain.EncryptedValue) (string, error) {
	if value == nil || len(value.Ciphertext) == 0 {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	provider, err := e.registry.Get(value.KeyID)
	if err != nil {
		return "", err
	}

	plaintext, err := provider.Decrypt(value.Ciphertext, value.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: key %s", err, value.KeyID)
	}
	defer cryptoDomain.Zero(plaintext)

	return string(plaintext), nil
}

// Rotate re-encrypts value under the active key. A value already under the active key
// is returned unchanged; a nil value fails like Decrypt.
func (e *Encryptor) Rotate(value *cryptoDomain.EncryptedValue) (*cryptoDomain.EncryptedValue, error) {
	if value == nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	if value.KeyID == e.registry.ActiveKeyID() {
		return value, nil
	}

	plaintext, err := e.Decrypt(value)
	if err != nil {
		return nil, err
	}
	return e.Encrypt(plaintext)
}
