package service

import (
	"context"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
)

// KeyRegistryConfig holds the raw key configuration.
type KeyRegistryConfig struct {
	EncryptionKeys   string
	ActiveKeyID      string
	DefaultAlgorithm string
	KMSKeyURI        string
}

// LoadKeyRegistry parses the configured keys, unwraps them with the KMS keeper when a
// key URI is configured, and registers one provider per key. Decoded key buffers are
// zeroed before returning.
func LoadKeyRegistry(
	ctx context.Context,
	cfg KeyRegistryConfig,
	kmsService KMSService,
	aeadManager AEADManager,
	logger *slog.Logger,
) (*KeyRegistry, error) {
	if cfg.ActiveKeyID == "" {
		return nil, cryptoDomain.ErrActiveKeyIDNotSet
	}

	defaultAlg, err := cryptoDomain.ParseAlgorithm(cfg.DefaultAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: ENCRYPTION_ALGORITHM=%s", err, cfg.DefaultAlgorithm)
	}

	keys, err := cryptoDomain.ParseEncryptionKeys(cfg.EncryptionKeys, defaultAlg)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, k := range keys {
			k.Zero()
		}
	}()

	if cfg.KMSKeyURI != "" {
		if err := unwrapKeys(ctx, cfg.KMSKeyURI, kmsService, keys); err != nil {
			return nil, err
		}
	}

	registry := NewKeyRegistry(cfg.ActiveKeyID)
	for _, key := range keys {
		if len(key.Key) != cryptoDomain.KeySize {
			registry.Close()
			return nil, fmt.Errorf(
				"%w: key %s must be %d bytes, got %d",
				cryptoDomain.ErrInvalidKeySize,
				key.ID,
				cryptoDomain.KeySize,
				len(key.Key),
			)
		}

		provider, err := NewAEADProvider(key, aeadManager)
		if err != nil {
			registry.Close()
			return nil, err
		}
		registry.Register(provider)

		if logger != nil {
			logger.Debug("encryption key registered",
				slog.String("key_id", key.ID),
				slog.String("algorithm", string(key.Algorithm)),
				slog.Bool("active", key.ID == cfg.ActiveKeyID),
			)
		}
	}

	if _, ok := registry.Provider(cfg.ActiveKeyID); !ok {
		registry.Close()
		return nil, fmt.Errorf("%w: ACTIVE_ENCRYPTION_KEY_ID=%s", cryptoDomain.ErrActiveKeyNotFound, cfg.ActiveKeyID)
	}

	return registry, nil
}

func unwrapKeys(ctx context.Context, keyURI string, kmsService KMSService, keys []*cryptoDomain.EncryptionKey) error {
	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return err
	}
	defer func() {
		_ = keeper.Close()
	}()

	for _, key := range keys {
		plaintext, err := keeper.Decrypt(ctx, key.Key)
		if err != nil {
			return fmt.Errorf("failed to unwrap encryption key %s: %w", key.ID, err)
		}
		cryptoDomain.Zero(key.Key)
		key.Key = plaintext
	}
	return nil
}
