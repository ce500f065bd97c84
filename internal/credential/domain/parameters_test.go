package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringGenerationParameters_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected StringGenerationParameters
	}{
		{
			name:     "booleans",
			input:    `{"length":12,"exclude_lower":true,"include_special":true}`,
			expected: StringGenerationParameters{Length: 12, ExcludeLower: true, IncludeSpecial: true},
		},
		{
			name:     "string booleans",
			input:    `{"exclude_lower":"true","exclude_upper":"false","exclude_number":"true"}`,
			expected: StringGenerationParameters{ExcludeLower: true, ExcludeNumber: true},
		},
		{
			name:     "legacy exclude_special false means include",
			input:    `{"exclude_special":false}`,
			expected: StringGenerationParameters{IncludeSpecial: true},
		},
		{
			name:     "legacy exclude_special true means exclude",
			input:    `{"exclude_special":true}`,
			expected: StringGenerationParameters{},
		},
		{
			name:     "include_special wins over legacy field",
			input:    `{"exclude_special":false,"include_special":false}`,
			expected: StringGenerationParameters{},
		},
		{
			name:     "unknown fields ignored",
			input:    `{"username":"admin","only_hex":true}`,
			expected: StringGenerationParameters{Username: "admin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params StringGenerationParameters
			require.NoError(t, json.Unmarshal([]byte(tt.input), &params))
			assert.Equal(t, tt.expected, params)
		})
	}

	t.Run("invalid boolean", func(t *testing.T) {
		var params StringGenerationParameters
		assert.Error(t, json.Unmarshal([]byte(`{"exclude_lower":"maybe"}`), &params))
	})
}

func TestDecodeStringGenerationParameters(t *testing.T) {
	t.Run("length comes from the secret", func(t *testing.T) {
		params, err := DecodeStringGenerationParameters(`{"exclude_number":true}`, "abcdefgh")
		require.NoError(t, err)
		assert.Equal(t, 8, params.Length)
		assert.True(t, params.ExcludeNumber)
	})

	t.Run("stale stored length is ignored", func(t *testing.T) {
		params, err := DecodeStringGenerationParameters(`{"length":99}`, "abcd")
		require.NoError(t, err)
		assert.Equal(t, 4, params.Length)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeStringGenerationParameters(`{`, "abcd")
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestStringGenerationParameters_WithDefaults(t *testing.T) {
	assert.Equal(t, 30, (*StringGenerationParameters)(nil).WithDefaults(30).Length)
	assert.Equal(t, 30, (&StringGenerationParameters{Length: 3}).WithDefaults(30).Length)
	assert.Equal(t, 30, (&StringGenerationParameters{Length: 201}).WithDefaults(30).Length)
	assert.Equal(t, 4, (&StringGenerationParameters{Length: 4}).WithDefaults(30).Length)
	assert.Equal(t, 200, (&StringGenerationParameters{Length: 200}).WithDefaults(30).Length)
}

func TestRsaSshGenerationParameters(t *testing.T) {
	params := (&RsaSshGenerationParameters{}).WithDefaults()
	assert.Equal(t, 2048, params.KeyLength)
	assert.NoError(t, params.Validate())

	for _, length := range []int{2048, 3072, 4096} {
		assert.NoError(t, (&RsaSshGenerationParameters{KeyLength: length}).Validate())
	}
	for _, length := range []int{1024, 2047, 8192} {
		assert.ErrorIs(t, (&RsaSshGenerationParameters{KeyLength: length}).Validate(), ErrInvalidKeyLength)
	}

	ssh := (&SshGenerationParameters{SSHComment: "x"}).WithDefaults()
	assert.Equal(t, 2048, ssh.KeyLength)
	assert.Equal(t, "x", ssh.SSHComment)
}

func TestCertificateGenerationParameters_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params *CertificateGenerationParameters
		err    error
	}{
		{"valid", &CertificateGenerationParameters{CommonName: "a"}, nil},
		{"missing common name", &CertificateGenerationParameters{}, ErrMissingCommonName},
		{"duration too long", &CertificateGenerationParameters{CommonName: "a", Duration: 3651}, ErrInvalidDuration},
		{"bad key length", &CertificateGenerationParameters{CommonName: "a", KeyLength: 1024}, ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.WithDefaults().Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeGenerationParameters(t *testing.T) {
	params, err := DecodeGenerationParameters(TypeSsh, json.RawMessage(`{"key_length":4096,"ssh_comment":"me"}`))
	require.NoError(t, err)
	ssh, ok := params.(*SshGenerationParameters)
	require.True(t, ok)
	assert.Equal(t, 4096, ssh.KeyLength)
	assert.Equal(t, "me", ssh.SSHComment)

	params, err = DecodeGenerationParameters(TypePassword, nil)
	require.NoError(t, err)
	assert.Equal(t, &StringGenerationParameters{}, params)

	_, err = DecodeGenerationParameters(TypeJSON, nil)
	assert.ErrorIs(t, err, ErrCannotGenerateType)

	_, err = DecodeGenerationParameters(TypeRsa, json.RawMessage(`[]`))
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestDecodeCredentialValue(t *testing.T) {
	value, err := DecodeCredentialValue(TypeUser, json.RawMessage(`{"username":"u","password":"p"}`))
	require.NoError(t, err)
	assert.Equal(t, &UserCredentialValue{Username: "u", Password: "p"}, value)

	value, err = DecodeCredentialValue(TypeJSON, json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, JSONCredentialValue{"a": float64(1)}, value)

	_, err = DecodeCredentialValue(TypeJSON, json.RawMessage(`"text"`))
	assert.ErrorIs(t, err, ErrInvalidJSONValue)

	_, err = DecodeCredentialValue(TypePassword, json.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = DecodeCredentialValue(CredentialType("other"), json.RawMessage(`"x"`))
	assert.ErrorIs(t, err, ErrUnknownCredentialType)
}

func TestParseCredentialType(t *testing.T) {
	typ, err := ParseCredentialType("PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, TypePassword, typ)
	assert.True(t, typ.Generatable())
	assert.False(t, TypeJSON.Generatable())

	_, err = ParseCredentialType("blob")
	assert.ErrorIs(t, err, ErrUnknownCredentialType)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "/a/b", NormalizeName("a/b"))
	assert.Equal(t, "/a/b", NormalizeName("/a/b"))
}
