package auth

import "context"

type contextKey string

const ctxKeySession contextKey = "session"

// WithSession injects the loaded session into the request context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

// SessionFromContext returns the session attached to the request, or nil.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKeySession).(*Session)
	return sess
}
