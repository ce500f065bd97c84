package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
	"github.com/allisson/credentials/internal/permission/http/dto"
	permissionUseCase "github.com/allisson/credentials/internal/permission/usecase"
)

// RunGrantPermission grants operations on a path to an actor without going through
// the API. It is how the first write_acl grants are bootstrapped. operations is a
// comma-separated list.
func RunGrantPermission(
	ctx context.Context,
	permissionUseCase permissionUseCase.PermissionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	actor, path, operations string,
	format string,
) error {
	req := &dto.CreatePermissionRequest{
		Actor:      actor,
		Path:       path,
		Operations: splitOperations(operations),
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid permission: %w", err)
	}

	input, err := req.ToInput()
	if err != nil {
		return fmt.Errorf("invalid permission: %w", err)
	}

	permission, err := permissionUseCase.Grant(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, dto.MapPermissionToResponse(permission)); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Permission ID: %s\n", permission.ID)
		_, _ = fmt.Fprintf(writer, "Actor:         %s\n", permission.Actor)
		_, _ = fmt.Fprintf(writer, "Path:          %s\n", permission.Path)
		_, _ = fmt.Fprintf(writer, "Operations:    %s\n", permissionDomain.FormatOperations(permission.Operations))
	}

	logger.Info("permission granted",
		slog.String("permission_id", permission.ID.String()),
		slog.String("actor", permission.Actor),
		slog.String("path", permission.Path),
	)
	return nil
}

func splitOperations(raw string) []string {
	var ops []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ops = append(ops, part)
		}
	}
	return ops
}
