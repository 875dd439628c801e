// Package logging provides the shared slog setup for sdkmock.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Format is the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level slog.Level

	// Format is the output format (text or json).
	Format Format

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer
}

// New creates a slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses a log level string. Unrecognized values fall back to
// warn, the library default.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "info", "INFO":
		return slog.LevelInfo
	case "warn", "WARN", "warning", "WARNING", "":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseFormat parses a log format string. Unrecognized values fall back
// to text.
func ParseFormat(s string) Format {
	switch s {
	case "json", "JSON":
		return FormatJSON
	default:
		return FormatText
	}
}

type envConfig struct {
	Level  string `env:"SDKMOCK_LOG_LEVEL" envDefault:"warn"`
	Format string `env:"SDKMOCK_LOG_FORMAT" envDefault:"text"`
}

// FromEnv builds a logger from the SDKMOCK_LOG_LEVEL and
// SDKMOCK_LOG_FORMAT environment variables. Parse failures fall back to
// the defaults; logging must never stop a test run.
func FromEnv() *slog.Logger {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		cfg = envConfig{Level: "warn", Format: "text"}
	}
	return New(Config{
		Level:  ParseLevel(cfg.Level),
		Format: ParseFormat(cfg.Format),
	})
}
