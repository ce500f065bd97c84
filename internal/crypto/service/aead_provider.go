package service

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// AEADProvider is an EncryptionProvider over an AEAD cipher. The key id is used as
// associated data, so a ciphertext relabelled with another key id fails to open.
type AEADProvider struct {
	keyID     string
	algorithm cryptoDomain.Algorithm
	cipher    AEAD
	key       []byte
}

// NewAEADProvider builds a provider for key. The key material is copied.
func NewAEADProvider(key *cryptoDomain.EncryptionKey, aeadManager AEADManager) (*AEADProvider, error) {
	c, err := aeadManager.CreateCipher(key.Key, key.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher for key %s: %w", key.ID, err)
	}

	material := make([]byte, len(key.Key))
	copy(material, key.Key)

	return &AEADProvider{
		keyID:     key.ID,
		algorithm: key.Algorithm,
		cipher:    c,
		key:       material,
	}, nil
}

func (p *AEADProvider) KeyID() string {
	return p.keyID
}

// Algorithm returns the provider's algorithm.
func (p *AEADProvider) Algorithm() cryptoDomain.Algorithm {
	return p.algorithm
}

func (p *AEADProvider) Encrypt(plaintext []byte) ([]byte, []byte, error) {
	if len(plaintext) > cryptoDomain.MaxPlaintextSize {
		return nil, nil, cryptoDomain.ErrPlaintextTooLarge
	}
	return p.cipher.Encrypt(plaintext, []byte(p.keyID))
}

func (p *AEADProvider) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(nonce) == 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := p.cipher.Decrypt(ciphertext, nonce, []byte(p.keyID))
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// DeriveKey derives a 32-byte subkey with HKDF-SHA256. The raw key is never returned.
func (p *AEADProvider) DeriveKey(info string) ([]byte, error) {
	derived := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, p.key, nil, []byte(info)), derived); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return derived, nil
}

// Zero wipes the provider's copy of the key material.
func (p *AEADProvider) Zero() {
	cryptoDomain.Zero(p.key)
}
