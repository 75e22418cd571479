package httpapi

import "context"

type contextKey string

const (
	userIDContextKey  contextKey = "user_id"
	adminIDContextKey contextKey = "admin_id"
)

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

func withAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDContextKey, adminID)
}

// adminIDFromContext returns the operator named by X-Admin-ID on internal routes.
func adminIDFromContext(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(adminIDContextKey).(string)
	return adminID, ok && adminID != ""
}
