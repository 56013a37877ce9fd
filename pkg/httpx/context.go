package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyUserEmail ctxKey = "user_email"
)

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request carries no verified identity.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// UserEmailFromContext returns the authenticated user's email claim.
func UserEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserEmail).(string); ok {
		return v
	}
	return ""
}
