package service

import (
	"strings"

	"golang.org/x/crypto/ssh"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

type sshGenerator struct {
	keyPairs KeyPairGenerator
}

// NewSshGenerator creates an SshGenerator over keyPairs.
func NewSshGenerator(keyPairs KeyPairGenerator) SshGenerator {
	return &sshGenerator{keyPairs: keyPairs}
}

// Generate returns an authorized_keys line, optionally followed by a single space and
// the comment, and a PEM private key.
func (g *sshGenerator) Generate(
	params *credentialDomain.SshGenerationParameters,
) (*credentialDomain.SshCredentialValue, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key, err := g.keyPairs.GenerateKeyPair(params.KeyLength)
	if err != nil {
		return nil, generationError(err, "failed to generate ssh key pair")
	}
	publicKey, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		return nil, generationError(err, "failed to encode ssh public key")
	}

	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(publicKey)))
	if params.SSHComment != "" {
		line += " " + params.SSHComment
	}

	return &credentialDomain.SshCredentialValue{
		PublicKey:            line,
		PrivateKey:           encodePrivateKey(key),
		PublicKeyFingerprint: ssh.FingerprintSHA256(publicKey),
	}, nil
}
