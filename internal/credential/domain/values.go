package domain

import (
	"encoding/json"
	"fmt"
)

// CredentialValue is the decrypted value of a version. Implementations:
// StringCredentialValue, JSONCredentialValue, *UserCredentialValue, *RsaCredentialValue,
// *SshCredentialValue and *CertificateCredentialValue.
type CredentialValue interface {
	isCredentialValue()
}

// StringCredentialValue is the value of password and value credentials.
type StringCredentialValue string

func (StringCredentialValue) isCredentialValue() {}

// JSONCredentialValue is the value of json credentials.
type JSONCredentialValue map[string]any

func (JSONCredentialValue) isCredentialValue() {}

// UserCredentialValue is the value of user credentials. Salt is derived from Password.
type UserCredentialValue struct {
	Username string
	Password string
	Salt     string
}

func (*UserCredentialValue) isCredentialValue() {}

type RsaCredentialValue struct {
	PublicKey  string
	PrivateKey string
}

func (*RsaCredentialValue) isCredentialValue() {}

// SshCredentialValue holds an OpenSSH authorized_keys line and its SHA256 fingerprint.
type SshCredentialValue struct {
	PublicKey            string
	PrivateKey           string
	PublicKeyFingerprint string
}

func (*SshCredentialValue) isCredentialValue() {}

type CertificateCredentialValue struct {
	CA          string
	Certificate string
	PrivateKey  string
}

func (*CertificateCredentialValue) isCredentialValue() {}

type userValueWire struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type keyPairWire struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

type certificateWire struct {
	CA          string `json:"ca"`
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"private_key"`
}

// DecodeCredentialValue decodes a request value of type t. An absent or null value
// fails with ErrMissingValue.
func DecodeCredentialValue(t CredentialType, raw json.RawMessage) (CredentialValue, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrMissingValue
	}

	switch t {
	case TypePassword, TypeValue:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: value must be a string", ErrInvalidParameters)
		}
		return StringCredentialValue(s), nil
	case TypeJSON:
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, ErrInvalidJSONValue
		}
		return JSONCredentialValue(m), nil
	case TypeUser:
		var w userValueWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: value must be an object", ErrInvalidParameters)
		}
		return &UserCredentialValue{Username: w.Username, Password: w.Password}, nil
	case TypeRsa:
		var w keyPairWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: value must be an object", ErrInvalidParameters)
		}
		return &RsaCredentialValue{PublicKey: w.PublicKey, PrivateKey: w.PrivateKey}, nil
	case TypeSsh:
		var w keyPairWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: value must be an object", ErrInvalidParameters)
		}
		return &SshCredentialValue{PublicKey: w.PublicKey, PrivateKey: w.PrivateKey}, nil
	case TypeCertificate:
		var w certificateWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: value must be an object", ErrInvalidParameters)
		}
		return &CertificateCredentialValue{CA: w.CA, Certificate: w.Certificate, PrivateKey: w.PrivateKey}, nil
	default:
		return nil, ErrUnknownCredentialType
	}
}

// DecodeGenerationParameters decodes request parameters for type t. Absent parameters
// decode to the type's zero parameters.
func DecodeGenerationParameters(t CredentialType, raw json.RawMessage) (GenerationParameters, error) {
	empty := len(raw) == 0 || string(raw) == "null"

	var target GenerationParameters
	switch t {
	case TypePassword, TypeUser:
		target = &StringGenerationParameters{}
	case TypeRsa:
		target = &RsaSshGenerationParameters{}
	case TypeSsh:
		target = &SshGenerationParameters{}
	case TypeCertificate:
		target = &CertificateGenerationParameters{}
	case TypeJSON, TypeValue:
		return nil, ErrCannotGenerateType
	default:
		return nil, ErrUnknownCredentialType
	}

	if !empty {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
	}
	return target, nil
}
