package service

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func newTestProvider(t *testing.T, id string, alg cryptoDomain.Algorithm) *AEADProvider {
	t.Helper()
	provider, err := NewAEADProvider(
		&cryptoDomain.EncryptionKey{ID: id, Algorithm: alg, Key: randomKey(t)},
		NewAEADManager(),
	)
	require.NoError(t, err)
	return provider
}

func encodedKey(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(randomKey(t))
}
