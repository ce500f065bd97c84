// Package domain defines API clients and the actor identity they authenticate as.
//
// A client authenticates with its id and a generated secret. Permission grants are
// attached to the client's actor, not to the client id.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActorPrefix is prepended to the client name when no actor is given.
const ActorPrefix = "client:"

// Client is an API client.
type Client struct {
	ID         uuid.UUID
	Actor      string
	Name       string
	SecretHash string //nolint:gosec // argon2id hash, never the plaintext secret
	IsActive   bool
	CreatedAt  time.Time
}

// CreateClientInput contains the parameters for creating a client. The secret is
// always generated.
type CreateClientInput struct {
	Name  string
	Actor string
}

// ActorOrDefault returns Actor, or ActorPrefix followed by Name when Actor is empty.
func (i *CreateClientInput) ActorOrDefault() string {
	if i.Actor != "" {
		return i.Actor
	}
	return ActorPrefix + i.Name
}

// CreateClientOutput carries the plaintext secret. It is returned once and never stored.
type CreateClientOutput struct {
	ID          uuid.UUID
	Actor       string
	PlainSecret string
}
