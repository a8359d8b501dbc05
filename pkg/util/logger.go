package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig selects the slog handler. The zero value writes text at
// info level to stderr.
type LoggerConfig struct {
	Level  slog.Level
	JSON   bool
	Output io.Writer
}

// LoggerConfigFrom maps config strings ("debug", "json", ...) onto a
// LoggerConfig. Unrecognised levels keep info; any format other than
// "json" selects text.
func LoggerConfigFrom(level, format string) LoggerConfig {
	cfg := LoggerConfig{Level: slog.LevelInfo, Output: os.Stderr}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
		cfg.Level = l
	}
	cfg.JSON = strings.EqualFold(strings.TrimSpace(format), "json")
	return cfg
}

// NewLogger builds a logger from cfg. Stdout is never the default: it
// carries the MCP stdio stream and scan output.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// NopLogger discards everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// SetDefault installs logger as the slog default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
