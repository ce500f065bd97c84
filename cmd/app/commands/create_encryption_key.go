package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	cryptoService "github.com/allisson/credentials/internal/crypto/service"
)

// RunCreateEncryptionKey generates a random 32-byte encryption key and prints the
// environment entries that register it. When kmsKeyURI is set the key is wrapped by
// the KMS keeper before it is encoded, otherwise it is printed in plain base64.
// If keyID is empty a dated id is generated. Key material is zeroed after encoding.
func RunCreateEncryptionKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyID, algorithm, kmsProvider, kmsKeyURI string,
) error {
	alg, err := cryptoDomain.ParseAlgorithm(algorithm)
	if err != nil {
		return fmt.Errorf(
			"invalid algorithm: %s (valid options: aes-gcm, chacha20-poly1305)",
			algorithm,
		)
	}

	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be set together")
	}

	if keyID == "" {
		keyID = fmt.Sprintf("key-%s", time.Now().UTC().Format("2006-01-02"))
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	material := key
	if kmsKeyURI != "" {
		material, err = wrapWithKMS(ctx, kmsService, logger, kmsKeyURI, key)
		if err != nil {
			return err
		}
	}

	encoded := base64.StdEncoding.EncodeToString(material)

	_, _ = fmt.Fprintln(writer, "# Encryption Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEYS=\"%s:%s:%s\"\n", keyID, alg, encoded)
	_, _ = fmt.Fprintf(writer, "ACTIVE_ENCRYPTION_KEY_ID=\"%s\"\n", keyID)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# To rotate, append the new entry to the existing ENCRYPTION_KEYS list,")
	_, _ = fmt.Fprintln(writer, "# switch ACTIVE_ENCRYPTION_KEY_ID and run rotate-credentials.")

	logger.Info("encryption key created",
		slog.String("key_id", keyID),
		slog.String("algorithm", string(alg)),
		slog.Bool("kms_wrapped", kmsKeyURI != ""),
	)
	return nil
}

func wrapWithKMS(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	kmsKeyURI string,
	key []byte,
) ([]byte, error) {
	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt encryption key with KMS: %w", err)
	}
	return ciphertext, nil
}
