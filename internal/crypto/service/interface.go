// Package service implements the AEAD ciphers, the key registry and the Encryptor facade
// used to encrypt credential material at rest.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// AEAD is an authenticated cipher with associated data.
type AEAD interface {
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD instances.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// EncryptionProvider performs authenticated encryption under one named key.
type EncryptionProvider interface {
	KeyID() string
	Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error)
	Decrypt(ciphertext, nonce []byte) ([]byte, error)
	// DeriveKey returns a 32-byte subkey bound to info.
	DeriveKey(info string) ([]byte, error)
}

// KMSService opens KMS keepers used to unwrap key material.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
