// Package logger builds the process wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05"

// New returns a logger for the given environment and level. Development
// environments get human readable console output, everything else emits
// JSON. Extra writers, when given, replace the default output entirely.
func New(env, level string, writers ...io.Writer) (*zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(trimmed))
		if err != nil {
			return nil, fmt.Errorf("logger: unknown level %q: %w", level, err)
		}
		lvl = parsed
	}

	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	switch {
	case len(writers) > 0:
		out = io.MultiWriter(writers...)
	case isDevelopment(env):
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: consoleTimeFormat}
	}

	lg := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &lg, nil
}

func isDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "dev", "local":
		return true
	}
	return false
}
