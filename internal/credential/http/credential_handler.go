// Package http provides HTTP handlers for storing, generating, reading and searching
// credentials. Every operation is checked against the caller's permission grants.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authHTTP "github.com/allisson/credentials/internal/auth/http"
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	"github.com/allisson/credentials/internal/credential/http/dto"
	credentialUseCase "github.com/allisson/credentials/internal/credential/usecase"
	"github.com/allisson/credentials/internal/httputil"
	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
	permissionUseCase "github.com/allisson/credentials/internal/permission/usecase"
	customValidation "github.com/allisson/credentials/internal/validation"
)

// CredentialHandler handles the /api/v1/data and /api/v1/regenerate endpoints.
type CredentialHandler struct {
	credentialUseCase credentialUseCase.CredentialUseCase
	permissionUseCase permissionUseCase.PermissionUseCase
	permissionIndex   permissionUseCase.PermissionIndex
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler.
func NewCredentialHandler(
	credentialUseCase credentialUseCase.CredentialUseCase,
	permissionUseCase permissionUseCase.PermissionUseCase,
	permissionIndex permissionUseCase.PermissionIndex,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		permissionUseCase: permissionUseCase,
		permissionIndex:   permissionIndex,
		logger:            logger,
	}
}

// authorize writes an error response and returns false unless the caller may perform op on name.
func (h *CredentialHandler) authorize(c *gin.Context, name string, op permissionDomain.Operation) bool {
	ctx := c.Request.Context()
	allowed, err := h.permissionUseCase.HasPermission(ctx, authHTTP.ActorFromContext(ctx), name, op)
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

// SetHandler stores a caller-supplied value as the new current version.
// PUT /api/v1/data - Requires write on the name.
func (h *CredentialHandler) SetHandler(c *gin.Context) {
	var req dto.SetCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if !h.authorize(c, req.Name, permissionDomain.OperationWrite) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	version, err := h.credentialUseCase.Set(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respondVersion(c, version)
}

// GenerateHandler generates a value, reusing the current version when its parameters
// match and overwrite is not set.
// POST /api/v1/data - Requires write on the name.
func (h *CredentialHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if !h.authorize(c, req.Name, permissionDomain.OperationWrite) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	version, err := h.credentialUseCase.Generate(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respondVersion(c, version)
}

// RegenerateHandler generates a new version with the stored parameters.
// POST /api/v1/regenerate - Requires write on the name.
func (h *CredentialHandler) RegenerateHandler(c *gin.Context) {
	var req dto.RegenerateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if !h.authorize(c, req.Name, permissionDomain.OperationWrite) {
		return
	}

	version, err := h.credentialUseCase.Regenerate(c.Request.Context(), req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respondVersion(c, version)
}

// GetHandler looks up versions by name, or searches by path or name pattern.
// GET /api/v1/data?name=&current=&versions=
// GET /api/v1/data?path=|name-like=&expires-within-days=
func (h *CredentialHandler) GetHandler(c *gin.Context) {
	name, byName := c.GetQuery("name")
	if byName {
		h.getByName(c, name)
		return
	}
	h.find(c)
}

func (h *CredentialHandler) getByName(c *gin.Context, name string) {
	if err := validation.Validate(name, validation.Required, customValidation.CredentialName); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	current, err := parseBoolQuery(c, "current")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	versions, err := parseNonNegativeQuery(c, "versions")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if !h.authorize(c, name, permissionDomain.OperationRead) {
		return
	}

	found, err := h.credentialUseCase.GetByName(c.Request.Context(), name, current, versions)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := dto.MapCredentialVersions(found)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CredentialHandler) find(c *gin.Context) {
	path, byPath := c.GetQuery("path")
	pattern, byPattern := c.GetQuery("name-like")
	if byPath == byPattern {
		httputil.HandleErrorGin(c, permissionDomain.ErrInvalidSearch, h.logger)
		return
	}

	var expiresWithinDays *int
	if raw, ok := c.GetQuery("expires-within-days"); ok {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			httputil.HandleValidationErrorGin(
				c,
				errors.New("invalid expires-within-days parameter: must be a non-negative integer"),
				h.logger,
			)
			return
		}
		expiresWithinDays = &days
	}

	ctx := c.Request.Context()
	actor := authHTTP.ActorFromContext(ctx)

	var (
		results []*credentialDomain.CredentialVersionData
		err     error
	)
	if byPath {
		results, err = h.permissionIndex.FindByPath(ctx, path, actor, expiresWithinDays)
	} else {
		results, err = h.permissionIndex.FindByNameLike(ctx, pattern, actor, expiresWithinDays)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFindResults(results))
}

// GetByIDHandler returns one version by id.
// GET /api/v1/data/:id - Requires read on the version's name.
func (h *CredentialHandler) GetByIDHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid id: %w", err), h.logger)
		return
	}

	version, err := h.credentialUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if !h.authorize(c, version.Data().Name, permissionDomain.OperationRead) {
		return
	}

	h.respondVersion(c, version)
}

func (h *CredentialHandler) respondVersion(c *gin.Context, version credentialDomain.CredentialVersion) {
	response, err := dto.MapCredentialVersion(version)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, response)
}

func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter: must be true or false", key)
	}
	return value, nil
}

func parseNonNegativeQuery(c *gin.Context, key string) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s parameter: must be a non-negative integer", key)
	}
	return value, nil
}
