package domain

// UserCredentialVersion holds a cleartext username and salt next to an encrypted
// password.
type UserCredentialVersion struct {
	baseVersion
	password *string
}

// NewUserCredentialVersion creates an empty user version named name.
func NewUserCredentialVersion(name string, encryptor Encryptor) *UserCredentialVersion {
	return &UserCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypeUser), encryptor: encryptor},
	}
}

// SetValue stores value and params. The password is required; the username may be empty.
func (v *UserCredentialVersion) SetValue(value *UserCredentialValue, params *StringGenerationParameters) error {
	if value == nil || value.Password == "" {
		return ErrMissingValue
	}
	if err := v.encryptValue(value.Password); err != nil {
		return err
	}

	var p GenerationParameters
	if params != nil {
		p = params
	}
	if err := v.encryptParameters(p); err != nil {
		return err
	}

	v.data.Username = value.Username
	v.data.Salt = value.Salt
	password := value.Password
	v.password = &password
	return nil
}

func (v *UserCredentialVersion) Username() string {
	return v.data.Username
}

func (v *UserCredentialVersion) Salt() string {
	return v.data.Salt
}

// Password returns the decrypted password.
func (v *UserCredentialVersion) Password() (string, error) {
	if v.password == nil {
		password, err := v.decryptValue()
		if err != nil {
			return "", err
		}
		v.password = &password
	}
	return *v.password, nil
}

func (v *UserCredentialVersion) Value() (CredentialValue, error) {
	password, err := v.Password()
	if err != nil {
		return nil, err
	}
	return &UserCredentialValue{Username: v.data.Username, Password: password, Salt: v.data.Salt}, nil
}

// GenerationParameters returns the stored parameters with the length taken from the
// password, or nil when the user was not generated.
func (v *UserCredentialVersion) GenerationParameters() (*StringGenerationParameters, error) {
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
func (v *UserCredentialVersion) StoredGenerationParameters() (GenerationParameters, error) {
	params, err := v.GenerationParameters()
	if err != nil || params == nil {
		return nil, err
	}
	return params, nil
}

func (v *UserCredentialVersion) Rotate() error {
	return v.rotateFields()
}

func (v *UserCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
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
	// The stored username is the one in the value, not the one in the parameters.
	stored.Username = requested.Username
	if requested.Username != "" && requested.Username != v.data.Username {
		return false, nil
	}
	return *requested == *stored, nil
}
