package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateClientInput_ActorOrDefault(t *testing.T) {
	assert.Equal(t, "client:deployer", (&CreateClientInput{Name: "deployer"}).ActorOrDefault())
	assert.Equal(t, "uaa-user:ops", (&CreateClientInput{Name: "deployer", Actor: "uaa-user:ops"}).ActorOrDefault())
}
