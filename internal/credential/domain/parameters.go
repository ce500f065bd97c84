package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// GenerationParameters is the non-secret configuration that produced a generated value.
// Implementations: *StringGenerationParameters, *RsaSshGenerationParameters,
// *SshGenerationParameters and *CertificateGenerationParameters.
type GenerationParameters interface {
	isGenerationParameters()
}

func isNilParameters(p GenerationParameters) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// StringGenerationParameters configures password and user generation.
type StringGenerationParameters struct {
	Length         int    `json:"length,omitempty"`
	Username       string `json:"username,omitempty"`
	ExcludeLower   bool   `json:"exclude_lower,omitempty"`
	ExcludeUpper   bool   `json:"exclude_upper,omitempty"`
	ExcludeNumber  bool   `json:"exclude_number,omitempty"`
	IncludeSpecial bool   `json:"include_special,omitempty"`
}

func (*StringGenerationParameters) isGenerationParameters() {}

// WithDefaults returns a copy whose length is defaultLength when Length is out of bounds.
func (p *StringGenerationParameters) WithDefaults(defaultLength int) *StringGenerationParameters {
	out := StringGenerationParameters{}
	if p != nil {
		out = *p
	}
	if out.Length < MinPasswordLength || out.Length > MaxPasswordLength {
		out.Length = defaultLength
	}
	return &out
}

// stringParametersWire accepts every historical shape of the stored parameters.
type stringParametersWire struct {
	Length         *int      `json:"length"`
	Username       string    `json:"username"`
	ExcludeLower   flexBool  `json:"exclude_lower"`
	ExcludeUpper   flexBool  `json:"exclude_upper"`
	ExcludeNumber  flexBool  `json:"exclude_number"`
	IncludeSpecial *flexBool `json:"include_special"`
	ExcludeSpecial *flexBool `json:"exclude_special"`
}

// UnmarshalJSON decodes parameters tolerantly: booleans may be JSON strings, unknown
// fields are ignored and the legacy exclude_special flag maps onto include_special.
func (p *StringGenerationParameters) UnmarshalJSON(data []byte) error {
	var wire stringParametersWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*p = StringGenerationParameters{
		Username:      wire.Username,
		ExcludeLower:  bool(wire.ExcludeLower),
		ExcludeUpper:  bool(wire.ExcludeUpper),
		ExcludeNumber: bool(wire.ExcludeNumber),
	}
	if wire.Length != nil {
		p.Length = *wire.Length
	}
	switch {
	case wire.IncludeSpecial != nil:
		p.IncludeSpecial = bool(*wire.IncludeSpecial)
	case wire.ExcludeSpecial != nil:
		p.IncludeSpecial = !bool(*wire.ExcludeSpecial)
	}
	return nil
}

// DecodeStringGenerationParameters decodes stored parameters. The length is never taken
// from the stored JSON; it is the length of the decrypted secret.
func DecodeStringGenerationParameters(raw string, secret string) (*StringGenerationParameters, error) {
	var params StringGenerationParameters
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	params.Length = len([]rune(secret))
	return &params, nil
}

// RsaSshGenerationParameters configures RSA key generation.
type RsaSshGenerationParameters struct {
	KeyLength int `json:"key_length,omitempty"`
}

func (*RsaSshGenerationParameters) isGenerationParameters() {}

// WithDefaults returns a copy using DefaultKeyLength when KeyLength is unset.
func (p *RsaSshGenerationParameters) WithDefaults() *RsaSshGenerationParameters {
	out := RsaSshGenerationParameters{}
	if p != nil {
		out = *p
	}
	if out.KeyLength == 0 {
		out.KeyLength = DefaultKeyLength
	}
	return &out
}

// Validate fails with ErrInvalidKeyLength for lengths outside 2048, 3072 and 4096.
func (p *RsaSshGenerationParameters) Validate() error {
	return validateKeyLength(p.KeyLength)
}

func validateKeyLength(n int) error {
	if !slices.Contains(validKeyLengths, n) {
		return ErrInvalidKeyLength
	}
	return nil
}

// SshGenerationParameters configures SSH key generation.
type SshGenerationParameters struct {
	RsaSshGenerationParameters
	SSHComment string `json:"ssh_comment,omitempty"`
}

func (*SshGenerationParameters) isGenerationParameters() {}

// WithDefaults returns a copy using DefaultKeyLength when KeyLength is unset.
func (p *SshGenerationParameters) WithDefaults() *SshGenerationParameters {
	out := SshGenerationParameters{}
	if p != nil {
		out = *p
	}
	out.RsaSshGenerationParameters = *out.RsaSshGenerationParameters.WithDefaults()
	return &out
}

// CertificateGenerationParameters configures self-signed certificate generation.
type CertificateGenerationParameters struct {
	CommonName   string `json:"common_name"`
	Organization string `json:"organization,omitempty"`
	IsCA         bool   `json:"is_ca,omitempty"`
	SelfSign     bool   `json:"self_sign,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	KeyLength    int    `json:"key_length,omitempty"`
}

func (*CertificateGenerationParameters) isGenerationParameters() {}

// WithDefaults fills the duration and key length. Only self-signed certificates are
// generated, so SelfSign is always set.
func (p *CertificateGenerationParameters) WithDefaults() *CertificateGenerationParameters {
	out := CertificateGenerationParameters{}
	if p != nil {
		out = *p
	}
	out.SelfSign = true
	if out.Duration == 0 {
		out.Duration = DefaultCertificateDuration
	}
	if out.KeyLength == 0 {
		out.KeyLength = DefaultKeyLength
	}
	return &out
}

// Validate checks the common name, duration and key length.
func (p *CertificateGenerationParameters) Validate() error {
	if p.CommonName == "" {
		return ErrMissingCommonName
	}
	if p.Duration < 1 || p.Duration > 3650 {
		return ErrInvalidDuration
	}
	return validateKeyLength(p.KeyLength)
}

// flexBool decodes JSON booleans and their string forms.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid boolean %s", data)
	}
	parsed, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", s)
	}
	*b = flexBool(parsed)
	return nil
}
