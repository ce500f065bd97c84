// Package domain defines the key material, encrypted values and canaries used for
// encryption at rest.
package domain

// Algorithm is an AEAD algorithm identifier.
type Algorithm string

const (
	// AESGCM is AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"
	// ChaCha20 is ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required size of every encryption key, in bytes.
const KeySize = 32

// MaxPlaintextSize is the largest plaintext a provider accepts.
const MaxPlaintextSize = 1 << 20

// CanaryValue is the sentinel encrypted under each key to prove the key still works.
const CanaryValue = "credentials-canary-v1"

// ParseAlgorithm returns the algorithm named by s.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM, ChaCha20:
		return Algorithm(s), nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
