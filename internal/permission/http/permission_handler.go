// Package http provides HTTP handlers for managing permission grants.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authHTTP "github.com/allisson/credentials/internal/auth/http"
	"github.com/allisson/credentials/internal/httputil"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
	"github.com/allisson/credentials/internal/permission/http/dto"
	permissionUseCase "github.com/allisson/credentials/internal/permission/usecase"
	customValidation "github.com/allisson/credentials/internal/validation"
)

// PermissionHandler handles the /api/v2/permissions endpoints. Managing a grant requires
// an ACL operation on the grant's path.
type PermissionHandler struct {
	permissionUseCase permissionUseCase.PermissionUseCase
	logger            *slog.Logger
}

// NewPermissionHandler creates a new permission handler.
func NewPermissionHandler(
	permissionUseCase permissionUseCase.PermissionUseCase,
	logger *slog.Logger,
) *PermissionHandler {
	return &PermissionHandler{
		permissionUseCase: permissionUseCase,
		logger:            logger,
	}
}

// CreateHandler grants operations on a path, merging with an existing grant.
// POST /api/v2/permissions - Requires write_acl on the path.
// Returns 201 Created with the resulting grant.
func (h *PermissionHandler) CreateHandler(c *gin.Context) {
	var req dto.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if !h.authorize(c, req.Path, permissionDomain.OperationWriteACL) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	permission, err := h.permissionUseCase.Grant(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPermissionToResponse(permission))
}

// ListHandler lists the grants of an actor, limited to paths the caller holds read_acl on.
// GET /api/v2/permissions?actor=&offset=&limit=
func (h *PermissionHandler) ListHandler(c *gin.Context) {
	actor := c.Query("actor")
	if err := validation.Validate(actor, validation.Required, customValidation.NotBlank); err != nil {
		httputil.HandleValidationErrorGin(
			c,
			customValidation.WrapValidationError(fmt.Errorf("actor: %w", err)),
			h.logger,
		)
		return
	}

	pagination, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	ctx := c.Request.Context()
	callerGrants, err := h.permissionUseCase.ListForActor(ctx, authHTTP.ActorFromContext(ctx))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	grants, err := h.permissionUseCase.ListForActor(ctx, actor)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	visible := make([]*permissionDomain.Permission, 0, len(grants))
	for _, grant := range grants {
		if permissionDomain.AnyAllows(callerGrants, grant.Path, permissionDomain.OperationReadACL) {
			visible = append(visible, grant)
		}
	}

	c.JSON(http.StatusOK, dto.MapPermissionsToListResponse(httputil.Page(visible, pagination)))
}

// DeleteHandler revokes a grant.
// DELETE /api/v2/permissions/:id - Requires write_acl on the grant's path.
// Returns 204 No Content.
func (h *PermissionHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid id: %w", err), h.logger)
		return
	}

	permission, err := h.permissionUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if !h.authorize(c, permission.Path, permissionDomain.OperationWriteACL) {
		return
	}

	if err := h.permissionUseCase.Revoke(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PermissionHandler) authorize(c *gin.Context, path string, op permissionDomain.Operation) bool {
	ctx := c.Request.Context()
	allowed, err := h.permissionUseCase.HasPermission(ctx, authHTTP.ActorFromContext(ctx), path, op)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return false
	}
	if !allowed {
		httputil.HandleErrorGin(c, permissionDomain.ErrForbidden, h.logger)
		return false
	}
	return true
}
