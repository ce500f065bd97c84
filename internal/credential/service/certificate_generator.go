package service

import (
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"time"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

type certificateGenerator struct {
	keyPairs KeyPairGenerator
	random   io.Reader
	now      func() time.Time
}

// NewCertificateGenerator creates a CertificateGenerator over keyPairs.
func NewCertificateGenerator(keyPairs KeyPairGenerator) CertificateGenerator {
	return &certificateGenerator{keyPairs: keyPairs, random: rand.Reader, now: time.Now}
}

// Generate returns a self-signed certificate. The CA field holds the certificate itself.
func (g *certificateGenerator) Generate(
	params *credentialDomain.CertificateGenerationParameters,
) (*credentialDomain.CertificateCredentialValue, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key, err := g.keyPairs.GenerateKeyPair(params.KeyLength)
	if err != nil {
		return nil, generationError(err, "failed to generate certificate key pair")
	}
	serial, err := rand.Int(g.random, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, generationError(err, "failed to generate certificate serial number")
	}

	notBefore := g.now().UTC().Truncate(time.Second)
	subject := pkix.Name{CommonName: params.CommonName}
	if params.Organization != "" {
		subject.Organization = []string{params.Organization}
	}
	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               subject,
		NotBefore:             notBefore,
		NotAfter:              notBefore.AddDate(0, 0, params.Duration),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		BasicConstraintsValid: true,
		IsCA:                  params.IsCA,
	}
	if params.IsCA {
		template.KeyUsage |= x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	}

	der, err := x509.CreateCertificate(g.random, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, generationError(err, "failed to create certificate")
	}
	certificate := string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))

	return &credentialDomain.CertificateCredentialValue{
		CA:          certificate,
		Certificate: certificate,
		PrivateKey:  encodePrivateKey(key),
	}, nil
}
