package httpx

import (
	"net/http"

	"hampernest-be/internal/rbac"
	"hampernest-be/internal/utils"
)

// RequirePermission gates a route on the role permission table. Anonymous
// callers get 401, authenticated callers without the grant get 403.
func RequirePermission(action rbac.Action, resource rbac.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.GetUserRoleFromContext(r.Context())
			if role == "" {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if !rbac.HasPermission(role, action, resource) {
				utils.WriteJSONError(w, "insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects cart routes that carry neither a user nor a guest
// session header.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetSessionIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "missing session", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
