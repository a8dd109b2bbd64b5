package auth

import "context"

type contextKey string

const contextKeySession contextKey = "auth.session_id"

// WithSessionID stores the resolved session id in context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextKeySession, sessionID)
}

// SessionIDFromContext extracts the session id from context.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value := ctx.Value(contextKeySession)
	if sessionID, ok := value.(string); ok {
		return sessionID
	}
	return ""
}
