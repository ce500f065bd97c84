// Package http provides client authentication and per-client rate limiting middleware.
package http

import (
	"context"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
)

type clientKey struct{}

// WithClient stores the authenticated client in ctx.
func WithClient(ctx context.Context, client *authDomain.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// GetClient returns the authenticated client stored in ctx.
func GetClient(ctx context.Context) (*authDomain.Client, bool) {
	client, ok := ctx.Value(clientKey{}).(*authDomain.Client)
	return client, ok && client != nil
}

// ActorFromContext returns the actor of the authenticated client, or "" when the
// request is anonymous.
func ActorFromContext(ctx context.Context) string {
	if client, ok := GetClient(ctx); ok {
		return client.Actor
	}
	return ""
}

// AuthMechanismFromContext names how the request authenticated, or "" when anonymous.
func AuthMechanismFromContext(ctx context.Context) string {
	if _, ok := GetClient(ctx); ok {
		return AuthMechanismBasic
	}
	return ""
}
