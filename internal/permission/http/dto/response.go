package dto

import (
	"time"

	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
)

// PermissionResponse represents a permission grant in API responses.
type PermissionResponse struct {
	ID         string    `json:"uuid"`
	Actor      string    `json:"actor"`
	Path       string    `json:"path"`
	Operations []string  `json:"operations"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListPermissionsResponse represents a page of permission grants.
type ListPermissionsResponse struct {
	Permissions []PermissionResponse `json:"permissions"`
}

// MapPermissionToResponse converts a domain permission to an API response.
func MapPermissionToResponse(permission *permissionDomain.Permission) PermissionResponse {
	ops := make([]string, len(permission.Operations))
	for i, op := range permission.Operations {
		ops[i] = string(op)
	}
	return PermissionResponse{
		ID:         permission.ID.String(),
		Actor:      permission.Actor,
		Path:       permission.Path,
		Operations: ops,
		CreatedAt:  permission.CreatedAt,
	}
}

// MapPermissionsToListResponse converts permissions to a list response. A nil slice
// becomes an empty list.
func MapPermissionsToListResponse(permissions []*permissionDomain.Permission) ListPermissionsResponse {
	items := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		items = append(items, MapPermissionToResponse(permission))
	}
	return ListPermissionsResponse{Permissions: items}
}
