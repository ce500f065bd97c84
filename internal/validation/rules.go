// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/credentials/internal/errors"
)

// MaxNameLength bounds credential names and permission paths.
const MaxNameLength = 1024

var nameCharsRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-./:]+$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// CredentialName validates a slash-delimited credential name. The leading slash is optional.
var CredentialName = validation.NewStringRuleWithError(
	isValidName,
	validation.NewError(
		"validation_credential_name",
		"must only contain letters, digits, '_', '-', '.', ':' and single slashes, and must not end with '/'",
	),
)

// PermissionPath validates a permission grant path: an exact credential name, or a
// prefix ending in "/*". "/*" alone grants the whole namespace.
var PermissionPath = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(s, "/*"); ok {
			return !strings.Contains(prefix, "*") && isValidName(prefix)
		}
		return isValidName(s)
	},
	validation.NewError(
		"validation_permission_path",
		"must be a credential name or a path ending in '/*'",
	),
)

func isValidName(s string) bool {
	if s == "" || len(s) > MaxNameLength {
		return false
	}
	if !nameCharsRegex.MatchString(s) {
		return false
	}
	if strings.Contains(s, "//") || strings.HasSuffix(s, "/") {
		return false
	}
	for segment := range strings.SplitSeq(s, "/") {
		if segment == ".." || segment == "." {
			return false
		}
	}
	return true
}
