package storage

import (
	"strings"

	"github.com/rs/zerolog"
)

// badgerLogger routes badger's log output through zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func newBadgerLogger(l zerolog.Logger) badgerLogger {
	return badgerLogger{l: l.With().Str("component", "badger").Logger()}
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msgf(strings.TrimSpace(format), args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msgf(strings.TrimSpace(format), args...)
}

// Badger is chatty at info level; its info lines go to debug.
func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Trace().Msgf(strings.TrimSpace(format), args...)
}
