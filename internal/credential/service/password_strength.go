package service

import (
	"github.com/nbutton23/zxcvbn-go"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

type passwordStrengthChecker struct {
	minScore int
}

// NewPasswordStrengthChecker creates a checker requiring a zxcvbn score of at least
// minScore (0-4). A minScore of 0 accepts every password.
func NewPasswordStrengthChecker(minScore int) PasswordStrengthChecker {
	return &passwordStrengthChecker{minScore: minScore}
}

func (c *passwordStrengthChecker) Check(password string, userInputs ...string) error {
	if c.minScore <= 0 {
		return nil
	}
	if zxcvbn.PasswordStrength(password, userInputs).Score < c.minScore {
		return credentialDomain.ErrWeakPassword
	}
	return nil
}
