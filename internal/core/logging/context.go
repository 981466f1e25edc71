package logging

import "context"

type contextKey string

const (
	sessionKey contextKey = "session"
	agentKey   contextKey = "agent"
)

// WithSession adds a tmux session name to the context.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// WithAgent adds an agent kind to the context.
func WithAgent(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, agentKey, kind)
}

// GetSession retrieves the session name from the context.
// Returns empty string if not present.
func GetSession(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey).(string); ok {
		return s
	}
	return ""
}

// GetAgent retrieves the agent kind from the context.
// Returns empty string if not present.
func GetAgent(ctx context.Context) string {
	if s, ok := ctx.Value(agentKey).(string); ok {
		return s
	}
	return ""
}
