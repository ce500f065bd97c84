package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/credential/service/mocks"
)

func TestSshGenerator_Generate(t *testing.T) {
	t.Run("no comment means no trailing space", func(t *testing.T) {
		keyPairs := &mocks.MockKeyPairGenerator{}
		keyPairs.On("GenerateKeyPair", 2048).Return(rsaTestKey(t), nil).Once()

		value, err := NewSshGenerator(keyPairs).Generate(&credentialDomain.SshGenerationParameters{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(value.PublicKey, "ssh-rsa "))
		assert.False(t, strings.HasSuffix(value.PublicKey, " "))
		assert.Len(t, strings.Fields(value.PublicKey), 2)
		assert.True(t, strings.HasPrefix(value.PublicKeyFingerprint, "SHA256:"))
	})

	t.Run("comment appended after one space", func(t *testing.T) {
		keyPairs := &mocks.MockKeyPairGenerator{}
		keyPairs.On("GenerateKeyPair", 2048).Return(rsaTestKey(t), nil).Once()

		value, err := NewSshGenerator(keyPairs).Generate(&credentialDomain.SshGenerationParameters{SSHComment: "x"})
		require.NoError(t, err)

		pub, err := ssh.NewPublicKey(&rsaTestKey(t).PublicKey)
		require.NoError(t, err)
		expected := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub))) + " x"
		assert.Equal(t, expected, value.PublicKey)
	})

	t.Run("requested key length reaches the key pair generator", func(t *testing.T) {
		keyPairs := &mocks.MockKeyPairGenerator{}
		keyPairs.On("GenerateKeyPair", 4096).Return(rsaTestKey(t), nil).Once()

		params := &credentialDomain.SshGenerationParameters{}
		params.KeyLength = 4096
		_, err := NewSshGenerator(keyPairs).Generate(params)
		require.NoError(t, err)
		keyPairs.AssertExpectations(t)
	})

	t.Run("invalid key length", func(t *testing.T) {
		params := &credentialDomain.SshGenerationParameters{}
		params.KeyLength = 512
		_, err := NewSshGenerator(&mocks.MockKeyPairGenerator{}).Generate(params)
		assert.ErrorIs(t, err, credentialDomain.ErrInvalidKeyLength)
	})
}
