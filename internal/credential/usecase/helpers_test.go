package usecase

import (
	"strings"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	serviceMocks "github.com/allisson/credentials/internal/credential/service/mocks"
	databaseMocks "github.com/allisson/credentials/internal/database/mocks"
	usecaseMocks "github.com/allisson/credentials/internal/credential/usecase/mocks"
)

// testEncryptor prefixes plaintext with "enc:" under the current key id.
type testEncryptor struct {
	keyID string
}

func (e *testEncryptor) Encrypt(plaintext string) (*cryptoDomain.EncryptedValue, error) {
	return &cryptoDomain.EncryptedValue{KeyID: e.keyID, Ciphertext: []byte("enc:" + plaintext), Nonce: []byte("n")}, nil
}

func (e *testEncryptor) Decrypt(value *cryptoDomain.EncryptedValue) (string, error) {
	if value == nil || !strings.HasPrefix(string(value.Ciphertext), "enc:") {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return strings.TrimPrefix(string(value.Ciphertext), "enc:"), nil
}

func (e *testEncryptor) ActiveKeyID() string {
	return e.keyID
}

type testDeps struct {
	txManager   *databaseMocks.MockTxManager
	repo        *usecaseMocks.MockCredentialRepository
	encryptor   *testEncryptor
	password    *serviceMocks.MockPasswordGenerator
	user        *serviceMocks.MockUserGenerator
	rsa         *serviceMocks.MockRsaGenerator
	ssh         *serviceMocks.MockSshGenerator
	certificate *serviceMocks.MockCertificateGenerator
	salt        *serviceMocks.MockSaltFactory
	strength    *serviceMocks.MockPasswordStrengthChecker
}

func newTestDeps() *testDeps {
	deps := &testDeps{
		txManager:   &databaseMocks.MockTxManager{},
		repo:        &usecaseMocks.MockCredentialRepository{},
		encryptor:   &testEncryptor{keyID: "key-1"},
		password:    &serviceMocks.MockPasswordGenerator{},
		user:        &serviceMocks.MockUserGenerator{},
		rsa:         &serviceMocks.MockRsaGenerator{},
		ssh:         &serviceMocks.MockSshGenerator{},
		certificate: &serviceMocks.MockCertificateGenerator{},
		salt:        &serviceMocks.MockSaltFactory{},
		strength:    &serviceMocks.MockPasswordStrengthChecker{},
	}
	deps.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	return deps
}

func (d *testDeps) useCase() CredentialUseCase {
	return NewCredentialUseCase(d.txManager, d.repo, d.encryptor, Generators{
		Password:    d.password,
		User:        d.user,
		Rsa:         d.rsa,
		Ssh:         d.ssh,
		Certificate: d.certificate,
		Salt:        d.salt,
		Strength:    d.strength,
	}, 30)
}

func storedPassword(
	enc *testEncryptor,
	name, password string,
	params *credentialDomain.StringGenerationParameters,
) *credentialDomain.CredentialVersionData {
	version := credentialDomain.NewPasswordCredentialVersion(name, enc)
	if err := version.SetPasswordAndGenerationParameters(password, params); err != nil {
		panic(err)
	}
	return version.Data()
}
