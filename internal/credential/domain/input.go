package domain

// SetInput stores a caller-supplied value.
type SetInput struct {
	Name  string
	Type  CredentialType
	Value CredentialValue
}

// GenerateInput generates a value. Parameters may be nil. Value only carries the
// username for user credentials.
type GenerateInput struct {
	Name       string
	Type       CredentialType
	Parameters GenerationParameters
	Value      *UserCredentialValue
	Overwrite  bool
}

// RotationReport counts the versions handled by a bulk rotation.
type RotationReport struct {
	Rotated int `json:"rotated"`
	Failed  int `json:"failed"`
}
