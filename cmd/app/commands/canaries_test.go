package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credentials/internal/crypto/domain"
	cryptoMocks "github.com/allisson/credentials/internal/crypto/usecase/mocks"
)

func TestRunVerifyCanaries(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Verify", ctx).
			Return(&cryptoDomain.CanaryReport{Verified: []string{"k1", "k2"}}, nil)

		var out bytes.Buffer
		require.NoError(t, RunVerifyCanaries(ctx, mockUseCase, logger, &out, "text"))
		require.Contains(t, out.String(), "Verified:  k1, k2")
		require.Contains(t, out.String(), "Unusable:  none")
		require.Contains(t, out.String(), "Status: PASSED")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Verify", ctx).
			Return(&cryptoDomain.CanaryReport{Created: []string{"k3"}}, nil)

		var out bytes.Buffer
		require.NoError(t, RunVerifyCanaries(ctx, mockUseCase, logger, &out, "json"))

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, true, result["passed"])
		require.Equal(t, []any{"k3"}, result["created"])
		require.Equal(t, []any{}, result["unusable"])
	})

	t.Run("unusable-key", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Verify", ctx).
			Return(&cryptoDomain.CanaryReport{Verified: []string{"k1"}, Unusable: []string{"k2"}}, nil)

		var out bytes.Buffer
		err := RunVerifyCanaries(ctx, mockUseCase, logger, &out, "text")
		require.ErrorContains(t, err, "k2")
		require.Contains(t, out.String(), "Status: FAILED")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Verify", ctx).Return(nil, errors.New("db down"))

		err := RunVerifyCanaries(ctx, mockUseCase, logger, io.Discard, "text")
		require.ErrorContains(t, err, "failed to verify canaries")
	})
}

func TestRunPruneCanaries(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("text", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Prune", ctx).Return(2, nil)

		var out bytes.Buffer
		require.NoError(t, RunPruneCanaries(ctx, mockUseCase, logger, &out, "text"))
		require.Contains(t, out.String(), "Deleted 2 canary record(s)")
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Prune", ctx).Return(0, nil)

		var out bytes.Buffer
		require.NoError(t, RunPruneCanaries(ctx, mockUseCase, logger, &out, "json"))
		require.JSONEq(t, `{"deleted_count":0}`, out.String())
	})

	t.Run("error", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockCanaryUseCase{}
		mockUseCase.On("Prune", ctx).Return(0, errors.New("db down"))

		err := RunPruneCanaries(ctx, mockUseCase, logger, io.Discard, "text")
		require.ErrorContains(t, err, "failed to prune canaries")
	})
}
