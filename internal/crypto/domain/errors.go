package domain

import (
	"github.com/allisson/credentials/internal/errors"
)

// Encryption errors.
var (
	// ErrNoActiveKey indicates no active encryption key is configured or registered.
	ErrNoActiveKey = errors.Wrap(errors.ErrEncryption, "no active encryption key")

	// ErrKeyNotFound indicates a value references a key that is not registered.
	ErrKeyNotFound = errors.Wrap(errors.ErrEncryption, "encryption key not found")

	// ErrKeyUnusable indicates the key failed canary verification.
	ErrKeyUnusable = errors.Wrap(errors.ErrEncryption, "encryption key is unusable")

	// ErrPlaintextTooLarge indicates the plaintext exceeds MaxPlaintextSize.
	ErrPlaintextTooLarge = errors.Wrap(errors.ErrEncryption, "plaintext exceeds maximum size")
)

// Decryption errors.
var (
	// ErrDecryptionFailed indicates authentication failed, or the ciphertext is missing or corrupted.
	// The cause is never disclosed further.
	ErrDecryptionFailed = errors.Wrap(errors.ErrDecryption, "decryption failed")
)

// Configuration errors.
var (
	ErrUnsupportedAlgorithm      = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")
	ErrInvalidKeySize            = errors.Wrap(errors.ErrInvalidInput, "invalid key size")
	ErrEncryptionKeysNotSet      = errors.Wrap(errors.ErrInvalidInput, "ENCRYPTION_KEYS is not set")
	ErrActiveKeyIDNotSet         = errors.Wrap(errors.ErrInvalidInput, "ACTIVE_ENCRYPTION_KEY_ID is not set")
	ErrInvalidEncryptionKeys     = errors.Wrap(errors.ErrInvalidInput, "invalid ENCRYPTION_KEYS format")
	ErrInvalidEncryptionKeyValue = errors.Wrap(errors.ErrInvalidInput, "invalid encryption key base64")
	ErrDuplicateKeyID            = errors.Wrap(errors.ErrInvalidInput, "duplicate encryption key id")
	ErrActiveKeyNotFound         = errors.Wrap(errors.ErrInvalidInput, "active encryption key not found")
)
