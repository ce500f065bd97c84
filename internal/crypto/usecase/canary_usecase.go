package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	cryptoService "github.com/allisson/credentials/internal/crypto/service"
	apperrors "github.com/allisson/credentials/internal/errors"
)

type canaryUseCase struct {
	registry   *cryptoService.KeyRegistry
	canaryRepo CanaryRepository
	logger     *slog.Logger
}

func (c *canaryUseCase) Verify(ctx context.Context) (*cryptoDomain.CanaryReport, error) {
	existing, err := c.canaryRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load canaries")
	}

	byKey := make(map[string]*cryptoDomain.Canary, len(existing))
	for _, canary := range existing {
		byKey[canary.KeyID] = canary
	}

	report := &cryptoDomain.CanaryReport{
		Verified: []string{},
		Created:  []string{},
		Unusable: []string{},
	}

	for _, keyID := range c.registry.KeyIDs() {
		provider, ok := c.registry.Provider(keyID)
		if !ok {
			continue
		}

		if canary, found := byKey[keyID]; found {
			if c.check(provider, canary.EncryptedValue) {
				c.registry.MarkUsable(keyID)
				report.Verified = append(report.Verified, keyID)
			} else {
				c.markUnusable(keyID, "stored canary mismatch")
				report.Unusable = append(report.Unusable, keyID)
			}
			continue
		}

		ciphertext, nonce, err := provider.Encrypt([]byte(cryptoDomain.CanaryValue))
		if err != nil {
			c.markUnusable(keyID, "canary encryption failed")
			report.Unusable = append(report.Unusable, keyID)
			continue
		}
		value := &cryptoDomain.EncryptedValue{KeyID: keyID, Ciphertext: ciphertext, Nonce: nonce}
		if !c.check(provider, value) {
			c.markUnusable(keyID, "canary round trip mismatch")
			report.Unusable = append(report.Unusable, keyID)
			continue
		}

		canary := &cryptoDomain.Canary{
			ID:             uuid.Must(uuid.NewV7()),
			KeyID:          keyID,
			EncryptedValue: value,
			CreatedAt:      time.Now().UTC(),
		}
		if err := c.canaryRepo.Save(ctx, canary); err != nil {
			return nil, apperrors.Wrap(err, "failed to save canary")
		}
		c.registry.MarkUsable(keyID)
		report.Created = append(report.Created, keyID)
	}

	return report, nil
}

func (c *canaryUseCase) Prune(ctx context.Context) (int, error) {
	existing, err := c.canaryRepo.FindAll(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to load canaries")
	}

	var stale []uuid.UUID
	for _, canary := range existing {
		if _, ok := c.registry.Provider(canary.KeyID); !ok {
			stale = append(stale, canary.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := c.canaryRepo.Delete(ctx, stale); err != nil {
		return 0, apperrors.Wrap(err, "failed to delete canaries")
	}
	return len(stale), nil
}

func (c *canaryUseCase) check(provider cryptoService.EncryptionProvider, value *cryptoDomain.EncryptedValue) bool {
	if value == nil {
		return false
	}
	plaintext, err := provider.Decrypt(value.Ciphertext, value.Nonce)
	if err != nil {
		return false
	}
	defer cryptoDomain.Zero(plaintext)
	return string(plaintext) == cryptoDomain.CanaryValue
}

func (c *canaryUseCase) markUnusable(keyID, reason string) {
	c.registry.MarkUnusable(keyID)
	c.logger.Error("encryption key marked unusable",
		slog.String("key_id", keyID),
		slog.String("reason", reason),
		slog.Bool("active", keyID == c.registry.ActiveKeyID()),
	)
}

// NewCanaryUseCase creates a CanaryUseCase over registry.
func NewCanaryUseCase(
	registry *cryptoService.KeyRegistry,
	canaryRepo CanaryRepository,
	logger *slog.Logger,
) CanaryUseCase {
	return &canaryUseCase{
		registry:   registry,
		canaryRepo: canaryRepo,
		logger:     logger,
	}
}
