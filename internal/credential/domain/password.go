package domain

// PasswordCredentialVersion holds an encrypted password and the optional parameters it
// was generated with.
type PasswordCredentialVersion struct {
	baseVersion
	password *string
}

// NewPasswordCredentialVersion creates an empty password version named name.
func NewPasswordCredentialVersion(name string, encryptor Encryptor) *PasswordCredentialVersion {
	return &PasswordCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypePassword), encryptor: encryptor},
	}
}

// SetPasswordAndGenerationParameters encrypts password and params. An empty password
// fails with ErrMissingValue before anything is encrypted.
func (v *PasswordCredentialVersion) SetPasswordAndGenerationParameters(
	password string,
	params *StringGenerationParameters,
) error {
	if password == "" {
		return ErrMissingValue
	}
	if err := v.encryptValue(password); err != nil {
		return err
	}

	var p GenerationParameters
	if params != nil {
		p = params
	}
	if err := v.encryptParameters(p); err != nil {
		return err
	}

	v.password = &password
	return nil
}

// Password returns the decrypted password.
func (v *PasswordCredentialVersion) Password() (string, error) {
	if v.password == nil {
		password, err := v.decryptValue()
		if err != nil {
			return "", err
		}
		v.password = &password
	}
	return *v.password, nil
}

func (v *PasswordCredentialVersion) Value() (CredentialValue, error) {
	password, err := v.Password()
	if err != nil {
		return nil, err
	}
	return StringCredentialValue(password), nil
}

// GenerationParameters returns the stored parameters with the length taken from the
// password, or nil when the password was not generated.
func (v *PasswordCredentialVersion) GenerationParameters() (*StringGenerationParameters, error) {
	raw, err := v.decryptParameters()
	if err != nil || raw == "" {
		return nil, err
	}
	password, err := v.Password()
	if err != nil {
		return nil, err
	}
	return DecodeStringGenerationParameters(raw, password)
}

// StoredGenerationParameters returns GenerationParameters as an interface value, nil
// when the value was set.
func (v *PasswordCredentialVersion) StoredGenerationParameters() (GenerationParameters, error) {
	params, err := v.GenerationParameters()
	if err != nil || params == nil {
		return nil, err
	}
	return params, nil
}

func (v *PasswordCredentialVersion) Rotate() error {
	return v.rotateFields()
}

func (v *PasswordCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
	if isNilParameters(params) {
		return true, nil
	}
	requested, ok := params.(*StringGenerationParameters)
	if !ok {
		return false, nil
	}

	stored, err := v.GenerationParameters()
	if err != nil || stored == nil {
		return false, err
	}
	return *requested == *stored, nil
}
