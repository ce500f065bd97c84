package service

import (
	"crypto/sha256"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	cryptAlphabet   = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	cryptSaltPrefix = "$6$"
	cryptSaltLength = 16
	cryptSaltInfo   = "crypt-salt-v1"
)

type cryptSaltFactory struct{}

// NewCryptSaltFactory creates a SaltFactory producing SHA-512 crypt salts ("$6$" and
// 16 characters). The salt is derived from the password, so equal passwords produce
// equal salts. It exists for storage-format compatibility, not secrecy.
func NewCryptSaltFactory() SaltFactory {
	return &cryptSaltFactory{}
}

func (f *cryptSaltFactory) GenerateSalt(password string) (string, error) {
	buf := make([]byte, cryptSaltLength)
	reader := hkdf.New(sha256.New, []byte(password), nil, []byte(cryptSaltInfo))
	if _, err := io.ReadFull(reader, buf); err != nil {
		return "", generationError(err, "failed to derive crypt salt")
	}

	var sb strings.Builder
	sb.WriteString(cryptSaltPrefix)
	for _, b := range buf {
		sb.WriteByte(cryptAlphabet[b&63])
	}
	return sb.String(), nil
}
