package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
)

type rsaKeyPairGenerator struct {
	random io.Reader
}

// NewRsaKeyPairGenerator creates a KeyPairGenerator reading from crypto/rand.
func NewRsaKeyPairGenerator() KeyPairGenerator {
	return &rsaKeyPairGenerator{random: rand.Reader}
}

func (g *rsaKeyPairGenerator) GenerateKeyPair(bits int) (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(g.random, bits)
}

func encodePrivateKey(key *rsa.PrivateKey) string {
	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

func encodePublicKey(key *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
