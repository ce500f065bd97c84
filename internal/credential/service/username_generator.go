package service

import (
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

const usernameLength = 20

type usernameGenerator struct {
	passwords PasswordGenerator
}

// NewUsernameGenerator creates a UsernameGenerator producing 20 random letters.
func NewUsernameGenerator(passwords PasswordGenerator) UsernameGenerator {
	return &usernameGenerator{passwords: passwords}
}

func (g *usernameGenerator) Generate() (string, error) {
	return g.passwords.Generate(&credentialDomain.StringGenerationParameters{
		Length:        usernameLength,
		ExcludeNumber: true,
	})
}
