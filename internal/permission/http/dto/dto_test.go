package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

func TestCreatePermissionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreatePermissionRequest
		wantErr bool
	}{
		{
			name:    "valid wildcard grant",
			request: CreatePermissionRequest{Actor: "client:app", Path: "/app/*", Operations: []string{"read", "write"}},
		},
		{
			name:    "valid exact grant",
			request: CreatePermissionRequest{Actor: "client:app", Path: "/app/db", Operations: []string{"read_acl"}},
		},
		{
			name:    "missing actor",
			request: CreatePermissionRequest{Path: "/app/*", Operations: []string{"read"}},
			wantErr: true,
		},
		{
			name:    "actor with surrounding whitespace",
			request: CreatePermissionRequest{Actor: " client:app", Path: "/app/*", Operations: []string{"read"}},
			wantErr: true,
		},
		{
			name:    "nested wildcard",
			request: CreatePermissionRequest{Actor: "client:app", Path: "/app/*/db", Operations: []string{"read"}},
			wantErr: true,
		},
		{
			name:    "no operations",
			request: CreatePermissionRequest{Actor: "client:app", Path: "/app/*"},
			wantErr: true,
		},
		{
			name:    "unknown operation",
			request: CreatePermissionRequest{Actor: "client:app", Path: "/app/*", Operations: []string{"admin"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePermissionRequest_ToInput(t *testing.T) {
	req := CreatePermissionRequest{Actor: "client:app", Path: "/app/*", Operations: []string{"read", "write_acl"}}

	input, err := req.ToInput()

	require.NoError(t, err)
	assert.Equal(t, "client:app", input.Actor)
	assert.Equal(t, "/app/*", input.Path)
	assert.Equal(t,
		[]permissionDomain.Operation{permissionDomain.OperationRead, permissionDomain.OperationWriteACL},
		input.Operations,
	)
}

func TestMapPermissionsToListResponse(t *testing.T) {
	t.Run("maps fields", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		permission := &permissionDomain.Permission{
			ID:         id,
			Actor:      "client:app",
			Path:       "/app/*",
			Operations: []permissionDomain.Operation{permissionDomain.OperationRead},
			CreatedAt:  created,
		}

		response := MapPermissionsToListResponse([]*permissionDomain.Permission{permission})

		require.Len(t, response.Permissions, 1)
		assert.Equal(t, id.String(), response.Permissions[0].ID)
		assert.Equal(t, []string{"read"}, response.Permissions[0].Operations)
		assert.Equal(t, created, response.Permissions[0].CreatedAt)
	})

	t.Run("nil becomes empty", func(t *testing.T) {
		response := MapPermissionsToListResponse(nil)
		assert.NotNil(t, response.Permissions)
		assert.Empty(t, response.Permissions)
	})
}
