// Package service provides client secret generation and Argon2id hashing.
package service

// SecretService generates, hashes and verifies client secrets.
type SecretService interface {
	// GenerateSecret returns a random secret and its hash. Only the hash is stored.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}
