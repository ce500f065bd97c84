package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/credential/service/mocks"
	apperrors "github.com/allisson/credentials/internal/errors"
)

func TestCertificateGenerator_Generate(t *testing.T) {
	t.Run("self-signed certificate", func(t *testing.T) {
		keyPairs := &mocks.MockKeyPairGenerator{}
		keyPairs.On("GenerateKeyPair", 2048).Return(rsaTestKey(t), nil).Once()

		params := &credentialDomain.CertificateGenerationParameters{
			CommonName:   "example.com",
			Organization: "Acme",
			IsCA:         true,
			Duration:     90,
		}
		value, err := NewCertificateGenerator(keyPairs).Generate(params)
		require.NoError(t, err)
		assert.Equal(t, value.Certificate, value.CA)

		cert, err := credentialDomain.ParseCertificate(value.Certificate)
		require.NoError(t, err)
		assert.Equal(t, "example.com", cert.Subject.CommonName)
		assert.Equal(t, []string{"Acme"}, cert.Subject.Organization)
		assert.True(t, cert.IsCA)
		assert.Equal(t, 90*24*time.Hour, cert.NotAfter.Sub(cert.NotBefore))
		assert.NoError(t, cert.CheckSignatureFrom(cert))

		version := credentialDomain.NewCertificateCredentialVersion("/cert", nopEncryptor{})
		require.NoError(t, version.SetValue(value, params))
		matches, err := version.MatchesGenerationParameters(params)
		require.NoError(t, err)
		assert.True(t, matches)
	})

	t.Run("missing common name", func(t *testing.T) {
		_, err := NewCertificateGenerator(&mocks.MockKeyPairGenerator{}).Generate(nil)
		assert.ErrorIs(t, err, credentialDomain.ErrMissingCommonName)
	})

	t.Run("serial failure", func(t *testing.T) {
		keyPairs := &mocks.MockKeyPairGenerator{}
		keyPairs.On("GenerateKeyPair", 2048).Return(rsaTestKey(t), nil).Once()
		generator := &certificateGenerator{keyPairs: keyPairs, random: failingReader{}, now: time.Now}

		_, err := generator.Generate(&credentialDomain.CertificateGenerationParameters{CommonName: "a"})
		assert.ErrorIs(t, err, apperrors.ErrGeneration)
	})
}
