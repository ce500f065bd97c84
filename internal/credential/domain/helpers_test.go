package domain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// fakeEncryptor stores the plaintext reversed and counts decryptions.
type fakeEncryptor struct {
	keyID      string
	decrypts   int
	encryptErr error
}

func newFakeEncryptor() *fakeEncryptor {
	return &fakeEncryptor{keyID: "key-1"}
}

func (f *fakeEncryptor) Encrypt(plaintext string) (*cryptoDomain.EncryptedValue, error) {
	if f.encryptErr != nil {
		return nil, f.encryptErr
	}
	return &cryptoDomain.EncryptedValue{
		KeyID:      f.keyID,
		Ciphertext: []byte(reverse(plaintext)),
		Nonce:      []byte("nonce"),
	}, nil
}

func (f *fakeEncryptor) Decrypt(value *cryptoDomain.EncryptedValue) (string, error) {
	f.decrypts++
	if value == nil || len(value.Ciphertext) == 0 {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return reverse(string(value.Ciphertext)), nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

var errEncrypt = errors.New("provider unavailable")

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

func rsaTestPEM(t *testing.T) (publicPEM, privatePEM string) {
	t.Helper()
	key := rsaTestKey(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
	privatePEM = string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
	return publicPEM, privatePEM
}

func sshTestPublicKey(t *testing.T, comment string) string {
	t.Helper()
	pub, err := ssh.NewPublicKey(&rsaTestKey(t).PublicKey)
	require.NoError(t, err)
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub)))
	if comment != "" {
		line += " " + comment
	}
	return line
}

func certificateTestPEM(t *testing.T, commonName string, days int) string {
	t.Helper()
	key := rsaTestKey(t)
	notBefore := time.Now().UTC().Truncate(time.Second)
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: commonName, Organization: []string{"Acme"}},
		NotBefore:             notBefore,
		NotAfter:              notBefore.AddDate(0, 0, days),
		IsCA:                  true,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}
