package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

var errRandom = errors.New("entropy source failed")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errRandom
}

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

func rsaTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err == nil {
			testKey = key
		}
	})
	require.NotNil(t, testKey)
	return testKey
}

type nopEncryptor struct{}

func (nopEncryptor) Encrypt(plaintext string) (*cryptoDomain.EncryptedValue, error) {
	return &cryptoDomain.EncryptedValue{KeyID: "key-1", Ciphertext: []byte(plaintext)}, nil
}

func (nopEncryptor) Decrypt(value *cryptoDomain.EncryptedValue) (string, error) {
	return string(value.Ciphertext), nil
}
