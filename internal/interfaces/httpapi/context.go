package httpapi

import (
	"context"

	"github.com/riskibarqy/match-predictions/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// viewerFromContext returns the caller's identity, or nil for anonymous requests.
func viewerFromContext(ctx context.Context) *user.Identity {
	p, ok := principalFromContext(ctx)
	if !ok {
		return nil
	}
	identity := p.Identity()
	return &identity
}
