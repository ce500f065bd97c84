// Package dto provides data transfer objects for permission HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	permissionDomain "github.com/allisson/credentials/internal/permission/domain"
	customValidation "github.com/allisson/credentials/internal/validation"
)

var operations = []any{
	string(permissionDomain.OperationRead),
	string(permissionDomain.OperationWrite),
	string(permissionDomain.OperationDelete),
	string(permissionDomain.OperationReadACL),
	string(permissionDomain.OperationWriteACL),
}

// CreatePermissionRequest grants operations on a path to an actor.
type CreatePermissionRequest struct {
	Actor      string   `json:"actor"`
	Path       string   `json:"path"`
	Operations []string `json:"operations"`
}

// Validate checks the actor, the path and every operation.
func (r *CreatePermissionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Actor,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Path,
			validation.Required,
			customValidation.PermissionPath,
		),
		validation.Field(&r.Operations,
			validation.Required,
			validation.Each(validation.In(operations...)),
		),
	)
}

// ToInput converts the request to a GrantInput. Call Validate first.
func (r *CreatePermissionRequest) ToInput() (*permissionDomain.GrantInput, error) {
	ops := make([]permissionDomain.Operation, 0, len(r.Operations))
	for _, raw := range r.Operations {
		op, err := permissionDomain.ParseOperation(raw)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return &permissionDomain.GrantInput{Actor: r.Actor, Path: r.Path, Operations: ops}, nil
}
