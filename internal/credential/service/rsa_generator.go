package service

import (
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

type rsaGenerator struct {
	keyPairs KeyPairGenerator
}

// NewRsaGenerator creates an RsaGenerator over keyPairs.
func NewRsaGenerator(keyPairs KeyPairGenerator) RsaGenerator {
	return &rsaGenerator{keyPairs: keyPairs}
}

// Generate returns a PKCS#1 private key and a PKIX public key, both PEM encoded.
func (g *rsaGenerator) Generate(
	params *credentialDomain.RsaSshGenerationParameters,
) (*credentialDomain.RsaCredentialValue, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key, err := g.keyPairs.GenerateKeyPair(params.KeyLength)
	if err != nil {
		return nil, generationError(err, "failed to generate rsa key pair")
	}
	publicKey, err := encodePublicKey(&key.PublicKey)
	if err != nil {
		return nil, generationError(err, "failed to encode rsa public key")
	}

	return &credentialDomain.RsaCredentialValue{
		PublicKey:  publicKey,
		PrivateKey: encodePrivateKey(key),
	}, nil
}
