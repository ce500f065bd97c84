// Package mocks provides testify mocks for the credential generators.
package mocks

import (
	"crypto/rsa"

	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

// MockKeyPairGenerator is a mock KeyPairGenerator.
type MockKeyPairGenerator struct {
	mock.Mock
}

func (m *MockKeyPairGenerator) GenerateKeyPair(bits int) (*rsa.PrivateKey, error) {
	args := m.Called(bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsa.PrivateKey), args.Error(1)
}

// MockRsaGenerator is a mock RsaGenerator.
type MockRsaGenerator struct {
	mock.Mock
}

func (m *MockRsaGenerator) Generate(
	params *credentialDomain.RsaSshGenerationParameters,
) (*credentialDomain.RsaCredentialValue, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.RsaCredentialValue), args.Error(1)
}

// MockSshGenerator is a mock SshGenerator.
type MockSshGenerator struct {
	mock.Mock
}

func (m *MockSshGenerator) Generate(
	params *credentialDomain.SshGenerationParameters,
) (*credentialDomain.SshCredentialValue, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.SshCredentialValue), args.Error(1)
}

// MockPasswordGenerator is a mock PasswordGenerator.
type MockPasswordGenerator struct {
	mock.Mock
}

func (m *MockPasswordGenerator) Generate(params *credentialDomain.StringGenerationParameters) (string, error) {
	args := m.Called(params)
	return args.String(0), args.Error(1)
}

// MockUsernameGenerator is a mock UsernameGenerator.
type MockUsernameGenerator struct {
	mock.Mock
}

func (m *MockUsernameGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockSaltFactory is a mock SaltFactory.
type MockSaltFactory struct {
	mock.Mock
}

func (m *MockSaltFactory) GenerateSalt(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// MockUserGenerator is a mock UserGenerator.
type MockUserGenerator struct {
	mock.Mock
}

func (m *MockUserGenerator) Generate(
	params *credentialDomain.StringGenerationParameters,
	value *credentialDomain.UserCredentialValue,
) (*credentialDomain.UserCredentialValue, error) {
	args := m.Called(params, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.UserCredentialValue), args.Error(1)
}

// MockCertificateGenerator is a mock CertificateGenerator.
type MockCertificateGenerator struct {
	mock.Mock
}

func (m *MockCertificateGenerator) Generate(
	params *credentialDomain.CertificateGenerationParameters,
) (*credentialDomain.CertificateCredentialValue, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.CertificateCredentialValue), args.Error(1)
}

// MockPasswordStrengthChecker is a mock PasswordStrengthChecker.
type MockPasswordStrengthChecker struct {
	mock.Mock
}

func (m *MockPasswordStrengthChecker) Check(password string, userInputs ...string) error {
	args := m.Called(password, userInputs)
	return args.Error(0)
}
