package middleware

import (
	"net/http"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/user"
	"github.com/frahmantamala/firedept-portal/pkg/logger"
)

// RequireRole rejects requests whose session user holds none of roles.
// It must run after the session middleware.
func RequireRole(base *transport.BaseHandler, roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := user.UserFromContext(r.Context())
			if !ok {
				base.HandleServiceError(w, internal.ErrSessionNotFound)
				return
			}

			if !hasRole(u, roles) {
				logger.From(r.Context()).Warn("access denied: role not allowed",
					"user_id", u.ID,
					"role", u.Role,
					"required_roles", roles)
				base.HandleServiceError(w, internal.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is RequireRole for administrators.
func RequireAdmin(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return RequireRole(base, user.RoleAdmin)
}

func hasRole(u *user.User, roles []user.Role) bool {
	for _, required := range roles {
		switch required {
		case user.RoleAdmin:
			if u.IsAdmin() {
				return true
			}
		case user.RoleApplicant:
			if u.IsApplicant() {
				return true
			}
		}
	}
	return false
}
