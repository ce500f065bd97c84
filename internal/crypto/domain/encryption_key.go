package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncryptedValue is a ciphertext bound to the key that produced it. Treat it as immutable:
// rotation produces a new value rather than mutating an existing one.
type EncryptedValue struct {
	KeyID      string
	Ciphertext []byte
	Nonce      []byte
}

// EncryptionKey is a named key parsed from configuration. Key holds the raw material,
// or the KMS-wrapped material before unwrapping.
type EncryptionKey struct {
	ID        string
	Algorithm Algorithm
	Key       []byte
}

// Zero wipes the key material.
func (k *EncryptionKey) Zero() {
	Zero(k.Key)
	k.Key = nil
}

// ParseEncryptionKeys parses a comma-separated list of "id:base64" or "id:algorithm:base64"
// entries. Entries without an algorithm use defaultAlg. Key sizes are not checked here
// because wrapped material is only sized after unwrapping.
func ParseEncryptionKeys(raw string, defaultAlg Algorithm) ([]*EncryptionKey, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEncryptionKeysNotSet
	}

	var keys []*EncryptionKey
	seen := make(map[string]struct{})
	zeroAll := func() {
		for _, k := range keys {
			k.Zero()
		}
	}

	for part := range strings.SplitSeq(raw, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")

		var id, encoded string
		alg := defaultAlg
		switch len(fields) {
		case 2:
			id, encoded = fields[0], fields[1]
		case 3:
			parsed, err := ParseAlgorithm(fields[1])
			if err != nil {
				zeroAll()
				return nil, fmt.Errorf("%w: key %s uses %q", err, fields[0], fields[1])
			}
			id, alg, encoded = fields[0], parsed, fields[2]
		default:
			zeroAll()
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidEncryptionKeys, len(keys)+1)
		}

		if id == "" {
			zeroAll()
			return nil, fmt.Errorf("%w: empty key id", ErrInvalidEncryptionKeys)
		}
		if _, dup := seen[id]; dup {
			zeroAll()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKeyID, id)
		}
		seen[id] = struct{}{}

		material, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			zeroAll()
			return nil, fmt.Errorf("%w for %s", ErrInvalidEncryptionKeyValue, id)
		}

		keys = append(keys, &EncryptionKey{ID: id, Algorithm: alg, Key: material})
	}

	return keys, nil
}
