package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService_GenerateSecret(t *testing.T) {
	service := NewSecretService()

	plainSecret, hashedSecret, err := service.GenerateSecret()
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(plainSecret)
	require.NoError(t, err)
	assert.Len(t, decoded, secretBytes)
	assert.Contains(t, hashedSecret, "$argon2id$")
	assert.NotContains(t, hashedSecret, plainSecret)
	assert.True(t, service.CompareSecret(plainSecret, hashedSecret))

	other, _, err := service.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, plainSecret, other)
}

func TestSecretService_CompareSecret(t *testing.T) {
	service := NewSecretService()

	hashedSecret, err := service.HashSecret("Correct-Secret")
	require.NoError(t, err)

	tests := []struct {
		name   string
		plain  string
		hash   string
		result bool
	}{
		{"matching secret", "Correct-Secret", hashedSecret, true},
		{"wrong secret", "wrong-secret", hashedSecret, false},
		{"different case", "correct-secret", hashedSecret, false},
		{"empty secret", "", hashedSecret, false},
		{"malformed hash", "Correct-Secret", "not-a-hash", false},
		{"empty hash", "Correct-Secret", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.result, service.CompareSecret(tt.plain, tt.hash))
		})
	}
}

func TestSecretService_HashSecretUsesRandomSalt(t *testing.T) {
	service := NewSecretService()

	first, err := service.HashSecret("same")
	require.NoError(t, err)
	second, err := service.HashSecret("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
