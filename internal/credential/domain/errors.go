package domain

import (
	"github.com/allisson/credentials/internal/errors"
)

// Credential errors. Coded errors carry the machine-readable code returned to clients.
var (
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	ErrMissingValue = errors.NewCoded(
		errors.ErrInvalidInput, "error.missing_value", "a value is required",
	)
	ErrInvalidKeyLength = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_key_length", "key length must be 2048, 3072 or 4096",
	)
	ErrInvalidJSONValue = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_json_value", "value must be a JSON object",
	)
	ErrUnknownCredentialType = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_type", "credential type is not supported",
	)
	ErrTypeMismatch = errors.NewCoded(
		errors.ErrInvalidInput, "error.type_mismatch", "the credential type cannot be modified",
	)
	ErrCannotGenerateType = errors.NewCoded(
		errors.ErrInvalidInput, "error.cannot_generate_type", "values of this type cannot be generated",
	)
	ErrCannotRegenerate = errors.NewCoded(
		errors.ErrInvalidInput,
		"error.cannot_regenerate_non_generated_credential",
		"the credential was not generated and cannot be regenerated",
	)
	ErrExcludesAllCharsets = errors.NewCoded(
		errors.ErrInvalidInput, "error.excludes_all_charsets", "the parameters exclude every character set",
	)
	ErrWeakPassword = errors.NewCoded(
		errors.ErrInvalidInput, "error.weak_password", "the password is too weak",
	)
	ErrInvalidCertificate = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_certificate", "the certificate could not be parsed",
	)
	ErrInvalidKey = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_key", "the key could not be parsed",
	)
	ErrInvalidDuration = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_duration", "duration must be between 1 and 3650 days",
	)
	ErrMissingCommonName = errors.NewCoded(
		errors.ErrInvalidInput, "error.missing_common_name", "a common name is required",
	)
	ErrInvalidName = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_name", "the credential name is invalid",
	)
	ErrInvalidParameters = errors.NewCoded(
		errors.ErrInvalidInput, "error.invalid_generation_parameters", "generation parameters are malformed",
	)
)
