package service

import (
	"crypto/rand"
	"io"
	"math/big"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

type passwordGenerator struct {
	defaultLength int
	random        io.Reader
}

// NewPasswordGenerator creates a PasswordGenerator. Lengths outside 4..200 fall back
// to defaultLength.
func NewPasswordGenerator(defaultLength int) PasswordGenerator {
	if defaultLength < credentialDomain.MinPasswordLength || defaultLength > credentialDomain.MaxPasswordLength {
		defaultLength = credentialDomain.DefaultPasswordLength
	}
	return &passwordGenerator{defaultLength: defaultLength, random: rand.Reader}
}

// Generate returns a password with at least one character from every included class.
func (g *passwordGenerator) Generate(params *credentialDomain.StringGenerationParameters) (string, error) {
	params = params.WithDefaults(g.defaultLength)

	var classes []string
	if !params.ExcludeLower {
		classes = append(classes, lowerChars)
	}
	if !params.ExcludeUpper {
		classes = append(classes, upperChars)
	}
	if !params.ExcludeNumber {
		classes = append(classes, numberChars)
	}
	if params.IncludeSpecial {
		classes = append(classes, specialChars)
	}
	if len(classes) == 0 {
		return "", credentialDomain.ErrExcludesAllCharsets
	}

	var all string
	for _, class := range classes {
		all += class
	}

	password := make([]byte, 0, params.Length)
	for _, class := range classes {
		c, err := g.pick(class)
		if err != nil {
			return "", generationError(err, "failed to generate password")
		}
		password = append(password, c)
	}
	for len(password) < params.Length {
		c, err := g.pick(all)
		if err != nil {
			return "", generationError(err, "failed to generate password")
		}
		password = append(password, c)
	}

	if err := g.shuffle(password); err != nil {
		return "", generationError(err, "failed to generate password")
	}
	return string(password), nil
}

func (g *passwordGenerator) pick(chars string) (byte, error) {
	n, err := g.randomInt(len(chars))
	if err != nil {
		return 0, err
	}
	return chars[n], nil
}

func (g *passwordGenerator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.randomInt(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func (g *passwordGenerator) randomInt(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
