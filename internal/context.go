package internal

import (
	"context"
)

// Principal is the authenticated identity attached to a request after the
// token gate. The role set is the one embedded in the token at issuance
// time, not a live read from the store.
type Principal struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// HasAnyRole reports whether the principal holds at least one of the given
// role names.
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, required := range roles {
		for _, held := range p.Roles {
			if held == required {
				return true
			}
		}
	}
	return false
}

type ctxKey string

const contextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(contextPrincipalKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, p)
}
