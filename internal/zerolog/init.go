package zerolog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	InitDefaultLogger(os.Stderr, "json")
}

// InitLogger sets the global level and output format ("json" or "console")
func InitLogger(level, format string) error {
	if level == "" {
		level = zerolog.LevelInfoValue
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	InitDefaultLogger(os.Stderr, format)
	return nil
}

func InitDefaultLogger(out io.Writer, format string) {
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	loggerVal := zerolog.New(out).With().Timestamp().Caller().Logger()
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.DefaultContextLogger = &loggerVal
	log.Logger = loggerVal
}
