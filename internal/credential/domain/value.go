package domain

// ValueCredentialVersion holds an arbitrary encrypted string.
type ValueCredentialVersion struct {
	baseVersion
	value *string
}

// NewValueCredentialVersion creates an empty value version named name.
func NewValueCredentialVersion(name string, encryptor Encryptor) *ValueCredentialVersion {
	return &ValueCredentialVersion{
		baseVersion: baseVersion{data: newData(name, TypeValue), encryptor: encryptor},
	}
}

// SetValue encrypts value. An empty value fails with ErrMissingValue.
func (v *ValueCredentialVersion) SetValue(value string) error {
	if value == "" {
		return ErrMissingValue
	}
	if err := v.encryptValue(value); err != nil {
		return err
	}
	v.value = &value
	return nil
}

func (v *ValueCredentialVersion) Value() (CredentialValue, error) {
	if v.value == nil {
		value, err := v.decryptValue()
		if err != nil {
			return nil, err
		}
		v.value = &value
	}
	return StringCredentialValue(*v.value), nil
}

func (v *ValueCredentialVersion) Rotate() error {
	return v.rotateFields()
}

func (v *ValueCredentialVersion) MatchesGenerationParameters(params GenerationParameters) (bool, error) {
	return isNilParameters(params), nil
}
