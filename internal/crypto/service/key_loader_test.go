package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	"github.com/allisson/credentials/internal/crypto/service/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func localSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestLoadKeyRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("plain keys", func(t *testing.T) {
		cfg := KeyRegistryConfig{
			EncryptionKeys:   "key1:" + encodedKey(t) + ",key2:chacha20-poly1305:" + encodedKey(t),
			ActiveKeyID:      "key2",
			DefaultAlgorithm: "aes-gcm",
		}

		registry, err := LoadKeyRegistry(ctx, cfg, NewKMSService(), NewAEADManager(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, []string{"key1", "key2"}, registry.KeyIDs())

		active, err := registry.Active()
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ChaCha20, active.(*AEADProvider).Algorithm())
	})

	t.Run("kms wrapped keys", func(t *testing.T) {
		keyURI := localSecretsURI(t)
		keeper, err := secrets.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		raw := randomKey(t)
		wrapped, err := keeper.Encrypt(ctx, raw)
		require.NoError(t, err)

		cfg := KeyRegistryConfig{
			EncryptionKeys:   "kms1:" + base64.StdEncoding.EncodeToString(wrapped),
			ActiveKeyID:      "kms1",
			DefaultAlgorithm: "aes-gcm",
			KMSKeyURI:        keyURI,
		}

		registry, err := LoadKeyRegistry(ctx, cfg, NewKMSService(), NewAEADManager(), discardLogger())
		require.NoError(t, err)

		provider, ok := registry.Provider("kms1")
		require.True(t, ok)
		assert.Equal(t, raw, provider.(*AEADProvider).key)
	})

	t.Run("kms unwrap failure", func(t *testing.T) {
		keeper := &mocks.MockKMSKeeper{}
		keeper.On("Decrypt", ctx, mock.Anything).Return(nil, errors.New("access denied"))
		keeper.On("Close").Return(nil)

		kms := &mocks.MockKMSService{}
		kms.On("OpenKeeper", ctx, "awskms://alias/x").Return(keeper, nil)

		cfg := KeyRegistryConfig{
			EncryptionKeys:   "key1:" + encodedKey(t),
			ActiveKeyID:      "key1",
			DefaultAlgorithm: "aes-gcm",
			KMSKeyURI:        "awskms://alias/x",
		}

		_, err := LoadKeyRegistry(ctx, cfg, kms, NewAEADManager(), discardLogger())
		assert.ErrorContains(t, err, "failed to unwrap encryption key key1")
		keeper.AssertCalled(t, "Close")
		kms.AssertExpectations(t)
	})

	t.Run("kms open failure", func(t *testing.T) {
		cfg := KeyRegistryConfig{
			EncryptionKeys:   "key1:" + encodedKey(t),
			ActiveKeyID:      "key1",
			DefaultAlgorithm: "aes-gcm",
			KMSKeyURI:        "invalid://uri",
		}

		_, err := LoadKeyRegistry(ctx, cfg, NewKMSService(), NewAEADManager(), discardLogger())
		assert.ErrorContains(t, err, "failed to open KMS keeper")
	})

	tests := []struct {
		name     string
		cfg      KeyRegistryConfig
		expected error
	}{
		{
			name:     "active id not set",
			cfg:      KeyRegistryConfig{EncryptionKeys: "k:" + base64.StdEncoding.EncodeToString(make([]byte, 32))},
			expected: cryptoDomain.ErrActiveKeyIDNotSet,
		},
		{
			name: "bad default algorithm",
			cfg: KeyRegistryConfig{
				EncryptionKeys:   "k:" + base64.StdEncoding.EncodeToString(make([]byte, 32)),
				ActiveKeyID:      "k",
				DefaultAlgorithm: "blowfish",
			},
			expected: cryptoDomain.ErrUnsupportedAlgorithm,
		},
		{
			name:     "keys not set",
			cfg:      KeyRegistryConfig{ActiveKeyID: "k", DefaultAlgorithm: "aes-gcm"},
			expected: cryptoDomain.ErrEncryptionKeysNotSet,
		},
		{
			name: "short key",
			cfg: KeyRegistryConfig{
				EncryptionKeys:   "k:" + base64.StdEncoding.EncodeToString(make([]byte, 16)),
				ActiveKeyID:      "k",
				DefaultAlgorithm: "aes-gcm",
			},
			expected: cryptoDomain.ErrInvalidKeySize,
		},
		{
			name: "active key missing",
			cfg: KeyRegistryConfig{
				EncryptionKeys:   "k:" + base64.StdEncoding.EncodeToString(make([]byte, 32)),
				ActiveKeyID:      "other",
				DefaultAlgorithm: "aes-gcm",
			},
			expected: cryptoDomain.ErrActiveKeyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := LoadKeyRegistry(ctx, tt.cfg, NewKMSService(), NewAEADManager(), discardLogger())
			assert.Nil(t, registry)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
