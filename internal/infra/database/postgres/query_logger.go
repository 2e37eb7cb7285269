package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog/log"
)

// zerologAdapter adapts the global zerolog logger to pgx's tracelog.Logger
// interface so connection and query events land in the application log.
type zerologAdapter struct{}

func (a *zerologAdapter) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event = log.Debug()
	switch level {
	case tracelog.LogLevelError:
		event = log.Error()
	case tracelog.LogLevelWarn:
		event = log.Warn()
	case tracelog.LogLevelInfo:
		event = log.Info()
	}

	for k, v := range data {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
