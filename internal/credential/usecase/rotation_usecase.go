package usecase

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

type rotationUseCase struct {
	repo      CredentialRepository
	encryptor Encryptor
	logger    *slog.Logger
}

// NewRotationUseCase creates a RotationUseCase.
func NewRotationUseCase(repo CredentialRepository, encryptor Encryptor, logger *slog.Logger) RotationUseCase {
	return &rotationUseCase{repo: repo, encryptor: encryptor, logger: logger}
}

// RotateAll re-encrypts every version not fully under the active key, batchSize rows
// at a time with up to concurrency versions in flight. A version that cannot be
// decrypted or re-encrypted is logged, counted and skipped; repository errors abort.
// Running it again after success rotates nothing.
func (r *rotationUseCase) RotateAll(
	ctx context.Context,
	batchSize, concurrency int,
) (*credentialDomain.RotationReport, error) {
	if batchSize <= 0 {
		batchSize = 50
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	activeKeyID := r.encryptor.ActiveKeyID()
	var rotated, failed atomic.Int64
	afterID := uuid.Nil

	for {
		batch, err := r.repo.FindNotEncryptedByKey(ctx, activeKeyID, afterID, batchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, data := range batch {
			g.Go(func() error {
				if err := r.rotateVersion(data); err != nil {
					failed.Add(1)
					r.logger.Error("failed to rotate credential version",
						slog.String("id", data.ID.String()),
						slog.String("name", data.Name),
						slog.Any("error", err),
					)
					return nil
				}
				if err := r.repo.UpdateEncryption(gCtx, data); err != nil {
					return err
				}
				rotated.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		afterID = batch[len(batch)-1].ID
		if len(batch) < batchSize {
			break
		}
	}

	report := &credentialDomain.RotationReport{Rotated: int(rotated.Load()), Failed: int(failed.Load())}
	r.logger.Info("credential rotation finished",
		slog.String("active_key_id", activeKeyID),
		slog.Int("rotated", report.Rotated),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (r *rotationUseCase) rotateVersion(data *credentialDomain.CredentialVersionData) error {
	version, err := credentialDomain.NewCredentialVersionFromData(data, r.encryptor)
	if err != nil {
		return err
	}
	return version.Rotate()
}
