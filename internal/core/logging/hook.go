package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the session name and agent kind from context and
// adds them to log events, so every log line from one delivery or
// classification carries its session without repeating the field at each
// call site.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if session := GetSession(ctx); session != "" {
		e.Str("session", session)
	}

	if kind := GetAgent(ctx); kind != "" {
		e.Str("agent", kind)
	}
}
