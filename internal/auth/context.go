package auth

import "context"

// TokenHeader carries the session token on every protected request.
const TokenHeader = "X-TRAINLOAD-TOKEN"

type contextKey string

const userIDContextKey contextKey = "trainload-user-id"

// ContextWithUserID is set by the auth middleware once the session
// token checks out; handlers read it back via UserIDFromContext.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}
