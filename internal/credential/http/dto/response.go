package dto

import (
	"time"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

// CredentialResponse is one decrypted credential version.
// SECURITY: Value carries plaintext secret material.
type CredentialResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	Value            any        `json:"value"`
	VersionCreatedAt time.Time  `json:"version_created_at"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}

// DataResponse wraps the versions returned by a lookup by name.
type DataResponse struct {
	Data []CredentialResponse `json:"data"`
}

// FoundCredential is the metadata returned by a search.
type FoundCredential struct {
	Name             string     `json:"name"`
	VersionCreatedAt time.Time  `json:"version_created_at"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}

// FindResponse lists search results, newest first.
type FindResponse struct {
	Credentials []FoundCredential `json:"credentials"`
}

type userValue struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rsaValue struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

type sshValue struct {
	PublicKey            string `json:"public_key"`
	PrivateKey           string `json:"private_key"`
	PublicKeyFingerprint string `json:"public_key_fingerprint"`
}

type certificateValue struct {
	CA          string `json:"ca"`
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"private_key"`
}

// MapCredentialVersion decrypts version into a response.
func MapCredentialVersion(version credentialDomain.CredentialVersion) (CredentialResponse, error) {
	value, err := version.Value()
	if err != nil {
		return CredentialResponse{}, err
	}

	data := version.Data()
	return CredentialResponse{
		ID:               data.ID.String(),
		Name:             data.Name,
		Type:             string(data.Type),
		Value:            mapValue(value),
		VersionCreatedAt: data.CreatedAt,
		ExpiryDate:       data.ExpiryDate,
	}, nil
}

// MapCredentialVersions decrypts every version, preserving order.
func MapCredentialVersions(versions []credentialDomain.CredentialVersion) (DataResponse, error) {
	response := DataResponse{Data: make([]CredentialResponse, 0, len(versions))}
	for _, version := range versions {
		mapped, err := MapCredentialVersion(version)
		if err != nil {
			return DataResponse{}, err
		}
		response.Data = append(response.Data, mapped)
	}
	return response, nil
}

// MapFindResults converts search results without decrypting anything.
func MapFindResults(results []*credentialDomain.CredentialVersionData) FindResponse {
	response := FindResponse{Credentials: make([]FoundCredential, 0, len(results))}
	for _, data := range results {
		response.Credentials = append(response.Credentials, FoundCredential{
			Name:             data.Name,
			VersionCreatedAt: data.CreatedAt,
			ExpiryDate:       data.ExpiryDate,
		})
	}
	return response
}

func mapValue(value credentialDomain.CredentialValue) any {
	switch v := value.(type) {
	case credentialDomain.StringCredentialValue:
		return string(v)
	case credentialDomain.JSONCredentialValue:
		return map[string]any(v)
	case *credentialDomain.UserCredentialValue:
		return userValue{Username: v.Username, Password: v.Password}
	case *credentialDomain.RsaCredentialValue:
		return rsaValue{PublicKey: v.PublicKey, PrivateKey: v.PrivateKey}
	case *credentialDomain.SshCredentialValue:
		return sshValue{
			PublicKey:            v.PublicKey,
			PrivateKey:           v.PrivateKey,
			PublicKeyFingerprint: v.PublicKeyFingerprint,
		}
	case *credentialDomain.CertificateCredentialValue:
		return certificateValue{CA: v.CA, Certificate: v.Certificate, PrivateKey: v.PrivateKey}
	default:
		return nil
	}
}
