// Package service implements credential generators: RSA and SSH key pairs, passwords,
// usernames, crypt salts, composite users and self-signed certificates.
//
// Generators never retry. A failure of the randomness or key-pair provider is returned
// as an ErrGeneration error.
package service

import (
	"crypto/rsa"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

// KeyPairGenerator generates RSA private keys.
type KeyPairGenerator interface {
	GenerateKeyPair(bits int) (*rsa.PrivateKey, error)
}

// RsaGenerator generates PEM encoded RSA key pairs.
type RsaGenerator interface {
	Generate(params *credentialDomain.RsaSshGenerationParameters) (*credentialDomain.RsaCredentialValue, error)
}

// SshGenerator generates OpenSSH key pairs.
type SshGenerator interface {
	Generate(params *credentialDomain.SshGenerationParameters) (*credentialDomain.SshCredentialValue, error)
}

// PasswordGenerator generates random passwords.
type PasswordGenerator interface {
	Generate(params *credentialDomain.StringGenerationParameters) (string, error)
}

// UsernameGenerator generates random usernames.
type UsernameGenerator interface {
	Generate() (string, error)
}

// SaltFactory derives a crypt salt from a password.
type SaltFactory interface {
	GenerateSalt(password string) (string, error)
}

// UserGenerator generates user credentials.
type UserGenerator interface {
	Generate(
		params *credentialDomain.StringGenerationParameters,
		value *credentialDomain.UserCredentialValue,
	) (*credentialDomain.UserCredentialValue, error)
}

// CertificateGenerator generates self-signed certificates.
type CertificateGenerator interface {
	Generate(
		params *credentialDomain.CertificateGenerationParameters,
	) (*credentialDomain.CertificateCredentialValue, error)
}

// PasswordStrengthChecker rejects weak user-supplied passwords.
type PasswordStrengthChecker interface {
	Check(password string, userInputs ...string) error
}
