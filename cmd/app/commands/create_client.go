package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
	authUseCase "github.com/allisson/credentials/internal/auth/usecase"
)

// RunCreateClient registers an API client and prints its id and secret. The secret is
// shown once and cannot be recovered. When actor is empty the client acts as
// "client:<name>".
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, actor string,
	format string,
) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("client name is required")
	}

	logger.Info("creating new client", slog.String("name", name))

	output, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{
		Name:  name,
		Actor: actor,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]string{
			"client_id":     output.ID.String(),
			"actor":         output.Actor,
			"client_secret": output.PlainSecret,
		}); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Client ID:     %s\n", output.ID)
		_, _ = fmt.Fprintf(writer, "Actor:         %s\n", output.Actor)
		_, _ = fmt.Fprintf(writer, "Client Secret: %s\n\n", output.PlainSecret)
		_, _ = fmt.Fprintln(writer, "WARNING: Save the client secret securely. It will not be shown again.")
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ID.String()),
		slog.String("actor", output.Actor),
	)
	return nil
}
