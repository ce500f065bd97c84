package domain

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"math"
	"time"
)

// CertificateCredentialVersion holds a cleartext certificate and CA next to an
// encrypted private key. ExpiryDate mirrors the certificate's NotAfter.
type CertificateCredentialVersion struct {
	baseVersion
	privateKey *string
}

// NewCertificateCredentialVersion creates an empty certificate version named name.
func NewCertificateCredentialVersion(name string, encryptor Encryptor) *CertificateCredentialVersion {
	return &CertificateCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypeCertificate), encryptor: encryptor},
	}
}

// SetValue stores the certificate, its CA, its private key and the optional parameters
// it was generated with. Both the certificate and the private key are required and the
// certificate must parse.
func (v *CertificateCredentialVersion) SetValue(
	value *CertificateCredentialValue,
	params *CertificateGenerationParameters,
) error {
	if value == nil || value.Certificate == "" || value.PrivateKey == "" {
		return ErrMissingValue
	}
	cert, err := ParseCertificate(value.Certificate)
	if err != nil {
		return err
	}
	if err := v.encryptValue(value.PrivateKey); err != nil {
		return err
	}
	var p GenerationParameters
	if params != nil {
		p = params
	}
	if err := v.encryptParameters(p); err != nil {
		return err
	}

	v.data.Certificate = value.Certificate
	v.data.CA = value.CA
	expiry := cert.NotAfter.UTC()
	v.data.ExpiryDate = &expiry
	privateKey := value.PrivateKey
	v.privateKey = &privateKey
	return nil
}

func (v *CertificateCredentialVersion) Certificate() string {
	return v.data.Certificate
}

func (v *CertificateCredentialVersion) CA() string {
	return v.data.CA
}

// PrivateKey returns the decrypted private key.
func (v *CertificateCredentialVersion) PrivateKey() (string, error) {
	if v.privateKey == nil {
		privateKey, err := v.decryptValue()
		if err != nil {
			return "", err
		}
		v.privateKey = &privateKey
	}
	return *v.privateKey, nil
}

func (v *CertificateCredentialVersion) Value() (CredentialValue, error) {
	privateKey, err := v.PrivateKey()
	if err != nil {
		return nil, err
	}
	return &CertificateCredentialValue{
		CA:          v.data.CA,
		Certificate: v.data.Certificate,
		PrivateKey:  privateKey,
	}, nil
}

// ExpiresWithin reports whether the certificate expires before now plus days.
func (v *CertificateCredentialVersion) ExpiresWithin(now time.Time, days int) bool {
	return ExpiresWithin(v.data.ExpiryDate, now, days)
}

func (v *CertificateCredentialVersion) Rotate() error {
	return v.rotateFields()
}

// StoredGenerationParameters returns the parameters the certificate was generated with,
// or nil when it was set.
func (v *CertificateCredentialVersion) StoredGenerationParameters() (GenerationParameters, error) {
	raw, err := v.decryptParameters()
	if err != nil || raw == "" {
		return nil, err
	}
	var params CertificateGenerationParameters
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, ErrInvalidParameters
	}
	return &params, nil
}

// DerivedGenerationParameters derives the parameters the certificate would have been
// generated with.
func (v *CertificateCredentialVersion) DerivedGenerationParameters() (*CertificateGenerationParameters, error) {
	cert, err := ParseCertificate(v.data.Certificate)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, ErrInvalidCertificate
	}

	params := &CertificateGenerationParameters{
		CommonName: cert.Subject.CommonName,
		IsCA:       cert.IsCA,
		SelfSign:   cert.Subject.String() == cert.Issuer.String(),
		Duration:   int(math.Round(cert.NotAfter.Sub(cert.NotBefore).Hours() / 24)),
		KeyLength:  key.N.BitLen(),
	}
	if len(cert.Subject.Organization) > 0 {
		params.Organization = cert.Subject.Organization[0]
	}
	return params, nil
}

// MatchesGenerationParameters compares the requested parameters with the ones derived
// from the stored certificate.
func (v *CertificateCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
	if isNilParameters(params) {
		return true, nil
	}
	requested, ok := params.(*CertificateGenerationParameters)
	if !ok {
		return false, nil
	}
	derived, err := v.DerivedGenerationParameters()
	if err != nil {
		return false, err
	}
	return *requested.WithDefaults() == *derived, nil
}

// ParseCertificate decodes the first PEM certificate block in certPEM.
func ParseCertificate(certPEM string) (*x509.Certificate, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, ErrInvalidCertificate
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, ErrInvalidCertificate
	}
	return cert, nil
}

// ExpiresWithin reports whether expiry falls before now plus days. A nil expiry never
// expires.
func ExpiresWithin(expiry *time.Time, now time.Time, days int) bool {
	if expiry == nil {
		return false
	}
	return expiry.Before(now.AddDate(0, 0, days))
}
