package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	credentialMocks "github.com/allisson/credentials/internal/credential/usecase/mocks"
)

func TestRunRotateCredentials(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &credentialMocks.MockRotationUseCase{}
		mockUseCase.On("RotateAll", ctx, 50, 4).
			Return(&credentialDomain.RotationReport{Rotated: 12}, nil)

		var out bytes.Buffer
		require.NoError(t, RunRotateCredentials(ctx, mockUseCase, logger, &out, 50, 4, "text"))
		require.Contains(t, out.String(), "Rotated: 12")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &credentialMocks.MockRotationUseCase{}
		mockUseCase.On("RotateAll", ctx, 10, 1).
			Return(&credentialDomain.RotationReport{Rotated: 3}, nil)

		var out bytes.Buffer
		require.NoError(t, RunRotateCredentials(ctx, mockUseCase, logger, &out, 10, 1, "json"))
		require.JSONEq(t, `{"rotated":3,"failed":0}`, out.String())
	})

	t.Run("partial-failure", func(t *testing.T) {
		mockUseCase := &credentialMocks.MockRotationUseCase{}
		mockUseCase.On("RotateAll", ctx, 50, 4).
			Return(&credentialDomain.RotationReport{Rotated: 5, Failed: 2}, nil)

		var out bytes.Buffer
		err := RunRotateCredentials(ctx, mockUseCase, logger, &out, 50, 4, "text")
		require.ErrorContains(t, err, "2 credential version(s)")
		require.Contains(t, out.String(), "Failed:  2")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &credentialMocks.MockRotationUseCase{}
		mockUseCase.On("RotateAll", ctx, 50, 4).Return(nil, errors.New("db down"))

		err := RunRotateCredentials(ctx, mockUseCase, logger, io.Discard, 50, 4, "text")
		require.ErrorContains(t, err, "failed to rotate credentials")
	})

	t.Run("invalid-arguments", func(t *testing.T) {
		require.Error(t, RunRotateCredentials(ctx, nil, logger, io.Discard, 0, 4, "text"))
		require.Error(t, RunRotateCredentials(ctx, nil, logger, io.Discard, 10, 0, "text"))
	})
}
