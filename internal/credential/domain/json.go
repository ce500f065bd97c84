package domain

import (
	"encoding/json"
)

// JSONCredentialVersion holds an encrypted JSON object.
type JSONCredentialVersion struct {
	baseVersion
	value JSONCredentialValue
}

// NewJSONCredentialVersion creates an empty json version named name.
func NewJSONCredentialVersion(name string, encryptor Encryptor) *JSONCredentialVersion {
	return &JSONCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypeJSON), encryptor: encryptor},
	}
}

// SetValue serializes and encrypts value. A nil value fails with ErrMissingValue.
func (v *JSONCredentialVersion) SetValue(value JSONCredentialValue) error {
	if value == nil {
		return ErrMissingValue
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return ErrInvalidJSONValue
	}
	if err := v.encryptValue(string(raw)); err != nil {
		return err
	}
	v.value = value
	return nil
}

func (v *JSONCredentialVersion) Value() (CredentialValue, error) {
	if v.value == nil {
		raw, err := v.decryptValue()
		if err != nil {
			return nil, err
		}
		var value JSONCredentialValue
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, ErrInvalidJSONValue
		}
		v.value = value
	}
	return v.value, nil
}

func (v *JSONCredentialVersion) Rotate() error {
	return v.rotateFields()
}

// MatchesGenerationParameters reports true only for nil params; json values are
// never generated.
func (v *JSONCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
	return isNilParameters(params), nil
}
