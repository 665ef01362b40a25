package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/transport"
)

// RBACAuthorization is the role-membership gate. It has no token-parsing
// path of its own: routes must compose it after the token gate, and a
// missing principal here means the route table is wired wrong.
type RBACAuthorization struct {
	base   *transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		base:   transport.NewBaseHandler(logger),
		logger: logger,
	}
}

// RequireRoles grants access when the principal holds at least one of the
// required role names.
func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				ra.logger.Error("role gate reached without principal; token gate not applied to route",
					"path", r.URL.Path)
				ra.base.WriteAppError(w, internal.ErrInvalidToken)
				return
			}

			if !principal.HasAnyRole(roles...) {
				ra.logger.Warn("access denied: insufficient role",
					"employee_id", principal.ID,
					"required_roles", roles,
					"held_roles", principal.Roles)
				ra.base.WriteAppError(w, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePrivileged gates the administrative attendance and employee
// operations.
func (ra *RBACAuthorization) RequirePrivileged() func(http.Handler) http.Handler {
	return ra.RequireRoles(PrivilegedRoles...)
}
