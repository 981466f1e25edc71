package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns a sub-logger tagged with the subsystem that emits
// it, under the "cmp" key. Together with the session and agent fields
// the ContextHook stamps, one grep of the log file isolates a
// subsystem or a session.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
