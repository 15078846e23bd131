package updater

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type cycleIDKey struct{}

// WithCycleID tags ctx with a fresh cycle id used to correlate log lines
func WithCycleID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, cycleIDKey{}, id), id
}

func CycleID(ctx context.Context) string {
	id, _ := ctx.Value(cycleIDKey{}).(string)
	return id
}

// cycleLogger returns the global logger, with cycle_id attached when ctx carries one
func cycleLogger(ctx context.Context) zerolog.Logger {
	if id := CycleID(ctx); id != "" {
		return log.With().Str("cycle_id", id).Logger()
	}
	return log.Logger
}
