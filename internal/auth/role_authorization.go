package auth

import (
	"log/slog"
	"net/http"

	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// RoleAuthorization gates route groups on the actor's role. Roles form a
// closed set, so each branch is checked against the typed constant rather
// than a free-text permission list.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) require(roles ...userDatamodel.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: role mismatch",
				"user_id", user.ID,
				"user_role", user.Role)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
		})
	}
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleAdmin)
}

func (ra *RoleAuthorization) RequireIT() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleIT)
}

func (ra *RoleAuthorization) RequireUser() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleUser)
}

// RequireStaff admits IT personnel and administrators.
func (ra *RoleAuthorization) RequireStaff() func(http.Handler) http.Handler {
	return ra.require(userDatamodel.RoleIT, userDatamodel.RoleAdmin)
}
