package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credentials/cmd/app/commands"
	"github.com/allisson/credentials/internal/app"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-encryption-key",
			Usage: "Generate a new encryption key, optionally wrapped by a KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Usage:   "Encryption key ID (defaults to key-YYYY-MM-DD)",
				},
				&cli.StringFlag{
					Name:    "algorithm",
					Aliases: []string{"alg"},
					Value:   "aes-gcm",
					Usage:   "Encryption algorithm to use (aes-gcm or chacha20-poly1305)",
				},
				&cli.StringFlag{
					Name:  "kms-provider",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI used to wrap the generated key",
				},
			},
			Action: containerAction(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				return commands.RunCreateEncryptionKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("algorithm"),
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			}),
		},
		{
			Name:  "verify-canaries",
			Usage: "Verify that every configured encryption key still decrypts its canary",
			Flags: []cli.Flag{formatFlag()},
			Action: containerAction(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				canaryUseCase, err := container.CanaryUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyCanaries(
					ctx,
					canaryUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "prune-canaries",
			Usage: "Delete canaries of encryption keys that are no longer configured",
			Flags: []cli.Flag{formatFlag()},
			Action: containerAction(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				canaryUseCase, err := container.CanaryUseCase()
				if err != nil {
					return err
				}

				return commands.RunPruneCanaries(
					ctx,
					canaryUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "rotate-credentials",
			Usage: "Re-encrypt every credential version under the active encryption key",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "batch-size",
					Aliases: []string{"b"},
					Usage:   "Versions loaded per batch (defaults to ROTATION_BATCH_SIZE)",
				},
				&cli.IntFlag{
					Name:    "concurrency",
					Aliases: []string{"c"},
					Usage:   "Versions re-encrypted in parallel (defaults to ROTATION_CONCURRENCY)",
				},
				formatFlag(),
			},
			Action: containerAction(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				rotationUseCase, err := container.RotationUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateCredentials(
					ctx,
					rotationUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					intFlagOr(cmd, "batch-size", container.Config().RotationBatchSize),
					intFlagOr(cmd, "concurrency", container.Config().RotationConcurrency),
					cmd.String("format"),
				)
			}),
		},
	}
}
