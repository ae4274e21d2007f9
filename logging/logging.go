package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string
	Format string
}

// ConfigFromSettings reads "level" and "format" from the settings document's logging
// block. Unknown or non-string values are ignored.
func ConfigFromSettings(block map[string]any) LoggerConfig {
	var cfg LoggerConfig

	if level, ok := block["level"].(string); ok {
		cfg.Level = level
	}

	if format, ok := block["format"].(string); ok {
		cfg.Format = format
	}

	return cfg
}

// NewLogger creates a slog.Logger writing to w. JSON is the default format;
// the level defaults to INFO if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource:   false,
		Level:       parseLevel(config.Level),
		ReplaceAttr: nil,
	}

	if strings.EqualFold(config.Format, FormatText) {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
