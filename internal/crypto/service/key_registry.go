package service

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

type registeredKey struct {
	provider EncryptionProvider
	usable   atomic.Bool
}

// KeyRegistry tracks the known encryption providers and which one is active.
// It is read-mostly and safe for concurrent use.
type KeyRegistry struct {
	activeID string
	keys     sync.Map
}

// NewKeyRegistry creates an empty registry whose active key is activeID.
func NewKeyRegistry(activeID string) *KeyRegistry {
	return &KeyRegistry{activeID: activeID}
}

// Register adds a provider, usable until a canary says otherwise. Re-registering an id
// replaces the previous provider.
func (r *KeyRegistry) Register(provider EncryptionProvider) {
	entry := &registeredKey{provider: provider}
	entry.usable.Store(true)
	r.keys.Store(provider.KeyID(), entry)
}

// ActiveKeyID returns the id of the key used for new encryptions.
func (r *KeyRegistry) ActiveKeyID() string {
	return r.activeID
}

// Active returns the active provider.
func (r *KeyRegistry) Active() (EncryptionProvider, error) {
	if r.activeID == "" {
		return nil, cryptoDomain.ErrNoActiveKey
	}
	entry, ok := r.load(r.activeID)
	if !ok {
		return nil, cryptoDomain.ErrNoActiveKey
	}
	if !entry.usable.Load() {
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrKeyUnusable, r.activeID)
	}
	return entry.provider, nil
}

// Get returns the usable provider for keyID.
func (r *KeyRegistry) Get(keyID string) (EncryptionProvider, error) {
	entry, ok := r.load(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrKeyNotFound, keyID)
	}
	if !entry.usable.Load() {
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrKeyUnusable, keyID)
	}
	return entry.provider, nil
}

// Provider returns the provider for keyID whether or not it is usable.
// Canary verification uses it to re-check keys previously marked unusable.
func (r *KeyRegistry) Provider(keyID string) (EncryptionProvider, bool) {
	entry, ok := r.load(keyID)
	if !ok {
		return nil, false
	}
	return entry.provider, true
}

// KeyIDs returns every registered key id, sorted.
func (r *KeyRegistry) KeyIDs() []string {
	var ids []string
	r.keys.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	slices.Sort(ids)
	return ids
}

// MarkUnusable flags keyID so it is refused for encryption and decryption.
func (r *KeyRegistry) MarkUnusable(keyID string) {
	if entry, ok := r.load(keyID); ok {
		entry.usable.Store(false)
	}
}

// MarkUsable clears the unusable flag.
func (r *KeyRegistry) MarkUsable(keyID string) {
	if entry, ok := r.load(keyID); ok {
		entry.usable.Store(true)
	}
}

// IsUsable reports whether keyID is registered and usable.
func (r *KeyRegistry) IsUsable(keyID string) bool {
	entry, ok := r.load(keyID)
	return ok && entry.usable.Load()
}

// DeriveKey derives a subkey from keyID's material. Unusable keys are refused.
func (r *KeyRegistry) DeriveKey(keyID, info string) ([]byte, error) {
	provider, err := r.Get(keyID)
	if err != nil {
		return nil, err
	}
	return provider.DeriveKey(info)
}

// Close wipes provider key material and empties the registry.
func (r *KeyRegistry) Close() {
	r.keys.Range(func(key, value any) bool {
		if z, ok := value.(*registeredKey).provider.(interface{ Zero() }); ok {
			z.Zero()
		}
		r.keys.Delete(key)
		return true
	})
}

func (r *KeyRegistry) load(keyID string) (*registeredKey, bool) {
	v, ok := r.keys.Load(keyID)
	if !ok {
		return nil, false
	}
	return v.(*registeredKey), true
}
