package middleware

import (
	"net/http"
	"strings"

	"hampernest-be/internal/rbac"
	"hampernest-be/internal/user"
	"hampernest-be/internal/utils"
)

// Auth is passive: requests without an Authorization header pass through
// anonymously and the permission guards decide what they may do. A header
// that is present but fails validation is rejected outright.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		role, ok := rbac.ParseRole(claims.Role)
		if !ok {
			utils.WriteJSONError(w, "unknown role", http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, role, claims.SellerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Session resolves the cart session key: the user ID when authenticated,
// otherwise the client-supplied X-Session-ID header.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if userID, ok := utils.GetUserIDFromContext(ctx); ok {
			ctx = utils.SetSessionID(ctx, userID)
		} else if sid := r.Header.Get("X-Session-ID"); sid != "" {
			ctx = utils.SetSessionID(ctx, sid)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
