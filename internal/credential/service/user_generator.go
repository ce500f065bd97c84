package service

import (
	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

type userGenerator struct {
	usernames UsernameGenerator
	passwords PasswordGenerator
	salts     SaltFactory
}

// NewUserGenerator creates a UserGenerator.
func NewUserGenerator(usernames UsernameGenerator, passwords PasswordGenerator, salts SaltFactory) UserGenerator {
	return &userGenerator{usernames: usernames, passwords: passwords, salts: salts}
}

// Generate composes a user. The username comes from params, then value, and is
// generated when both are empty. The password is always generated and the salt is
// derived from it.
func (g *userGenerator) Generate(
	params *credentialDomain.StringGenerationParameters,
	value *credentialDomain.UserCredentialValue,
) (*credentialDomain.UserCredentialValue, error) {
	var username string
	if params != nil {
		username = params.Username
	}
	if username == "" && value != nil {
		username = value.Username
	}
	if username == "" {
		generated, err := g.usernames.Generate()
		if err != nil {
			return nil, err
		}
		username = generated
	}

	password, err := g.passwords.Generate(params)
	if err != nil {
		return nil, err
	}
	salt, err := g.salts.GenerateSalt(password)
	if err != nil {
		return nil, err
	}

	return &credentialDomain.UserCredentialValue{Username: username, Password: password, Salt: salt}, nil
}
