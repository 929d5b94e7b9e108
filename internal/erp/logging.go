package erp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger opens the configured log file. The TUI owns the terminal, so
// nothing is logged to stdout or stderr. The returned closer releases the
// file.
func NewLogger(config *Config) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(config.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if config.LogFile == "" || config.LogFile == "-" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("app", "backoffice"), f, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
}
