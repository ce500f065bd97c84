// Package dto provides data transfer objects for credential HTTP requests and responses.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
	customValidation "github.com/allisson/credentials/internal/validation"
)

var credentialTypes = []any{
	string(credentialDomain.TypePassword),
	string(credentialDomain.TypeUser),
	string(credentialDomain.TypeJSON),
	string(credentialDomain.TypeValue),
	string(credentialDomain.TypeRsa),
	string(credentialDomain.TypeSsh),
	string(credentialDomain.TypeCertificate),
}

var generatableTypes = []any{
	string(credentialDomain.TypePassword),
	string(credentialDomain.TypeUser),
	string(credentialDomain.TypeRsa),
	string(credentialDomain.TypeSsh),
	string(credentialDomain.TypeCertificate),
}

// SetCredentialRequest stores a caller-supplied value. Value is decoded according to Type.
type SetCredentialRequest struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Validate checks the name and type.
func (r *SetCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.CredentialName,
		),
		validation.Field(&r.Type,
			validation.Required,
			validation.In(credentialTypes...),
		),
	)
}

// ToInput decodes the value into a SetInput.
func (r *SetCredentialRequest) ToInput() (*credentialDomain.SetInput, error) {
	t := credentialDomain.CredentialType(r.Type)
	value, err := credentialDomain.DecodeCredentialValue(t, r.Value)
	if err != nil {
		return nil, err
	}
	return &credentialDomain.SetInput{Name: r.Name, Type: t, Value: value}, nil
}

// GenerateCredentialRequest generates a value. Value may only carry a username, and only
// for user credentials.
type GenerateCredentialRequest struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Parameters json.RawMessage `json:"parameters"`
	Value      *struct {
		Username string `json:"username"`
	} `json:"value"`
	Overwrite bool `json:"overwrite"`
}

// Validate checks the name and that the type can be generated.
func (r *GenerateCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.CredentialName,
		),
		validation.Field(&r.Type,
			validation.Required,
			validation.In(generatableTypes...),
		),
	)
}

// ToInput decodes the parameters into a GenerateInput.
func (r *GenerateCredentialRequest) ToInput() (*credentialDomain.GenerateInput, error) {
	t := credentialDomain.CredentialType(r.Type)
	params, err := credentialDomain.DecodeGenerationParameters(t, r.Parameters)
	if err != nil {
		return nil, err
	}

	input := &credentialDomain.GenerateInput{
		Name:       r.Name,
		Type:       t,
		Parameters: params,
		Overwrite:  r.Overwrite,
	}
	if r.Value != nil && t == credentialDomain.TypeUser {
		input.Value = &credentialDomain.UserCredentialValue{Username: r.Value.Username}
	}
	return input, nil
}

// RegenerateCredentialRequest regenerates the current version of Name.
type RegenerateCredentialRequest struct {
	Name string `json:"name"`
}

// Validate checks the name.
func (r *RegenerateCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.CredentialName,
		),
	)
}
