package utils

import (
	"context"

	"hampernest-be/internal/rbac"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SellerIDKey  contextKey = "seller_id"
	UserEmailKey contextKey = "email"
	UserRoleKey  contextKey = "role"
	SessionIDKey contextKey = "session_id"
)

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id, email string, role rbac.Role, sellerID *string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	if sellerID != nil {
		ctx = context.WithValue(ctx, SellerIDKey, *sellerID)
	}
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

// GetUserRoleFromContext returns the caller's role; empty for anonymous
// requests, which the permission table denies everything.
func GetUserRoleFromContext(ctx context.Context) rbac.Role {
	role, _ := ctx.Value(UserRoleKey).(rbac.Role)
	return role
}

func GetSellerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SellerIDKey).(string)
	return id, ok
}

// SetSessionID and GetSessionIDFromContext carry the cart session key. For
// authenticated users this is the user ID; guests supply their own.
func SetSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}
