package httpx

import (
	"context"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// grantKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type grantKey struct{}

// SetGrantInContext returns a child context that carries the given granted
// access. If grant is nil, the original ctx is returned unchanged.
func SetGrantInContext(ctx context.Context, grant *GrantInfo) context.Context {
	if grant == nil {
		return ctx
	}
	return context.WithValue(ctx, grantKey{}, grant)
}

// GrantInfo is the per-request authorization result carried in context after
// a guard has passed.
type GrantInfo struct {
	Session domainauth.Session
	User    domainauth.User
	Role    domainauth.Role
}

// GetGrantFromContext returns the granted access from context and a boolean
// indicating presence.
func GetGrantFromContext(ctx context.Context) (*GrantInfo, bool) {
	if grant, ok := ctx.Value(grantKey{}).(*GrantInfo); ok && grant != nil {
		return grant, true
	}
	return nil, false
}
