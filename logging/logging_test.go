package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/cotacao/ratepipe/logging"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "INFO"}, &buf)

	logger.Info("rates fetched", slog.String("base", "USD"))

	var logEntry map[string]any

	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON")
	require.Equal(t, "rates fetched", logEntry["msg"])
	require.Equal(t, "USD", logEntry["base"])
	require.Equal(t, "INFO", logEntry["level"])
}

func TestNewLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Format: "TEXT"}, &buf)

	logger.Info("rates fetched", slog.String("base", "USD"))

	require.Contains(t, buf.String(), "msg=\"rates fetched\"")
	require.Contains(t, buf.String(), "base=USD")
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		configLevel   string
		logLevel      slog.Level
		shouldLog     bool
		expectedLevel string
	}{
		{name: "debug level logs debug", configLevel: "DEBUG", logLevel: slog.LevelDebug, shouldLog: true, expectedLevel: "DEBUG"},
		{name: "info level logs info", configLevel: "INFO", logLevel: slog.LevelInfo, shouldLog: true, expectedLevel: "INFO"},
		{name: "warning alias", configLevel: "WARNING", logLevel: slog.LevelWarn, shouldLog: true, expectedLevel: "WARN"},
		{name: "critical maps to error", configLevel: "CRITICAL", logLevel: slog.LevelError, shouldLog: true, expectedLevel: "ERROR"},
		{name: "info level does not log debug", configLevel: "INFO", logLevel: slog.LevelDebug, shouldLog: false},
		{name: "error level does not log info", configLevel: "ERROR", logLevel: slog.LevelInfo, shouldLog: false},
		{name: "lowercase with spaces", configLevel: " debug ", logLevel: slog.LevelDebug, shouldLog: true, expectedLevel: "DEBUG"},
		{name: "empty level defaults to info", configLevel: "", logLevel: slog.LevelInfo, shouldLog: true, expectedLevel: "INFO"},
		{name: "invalid level defaults to info", configLevel: "VERBOSE", logLevel: slog.LevelDebug, shouldLog: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := logging.NewLogger(logging.LoggerConfig{Level: testCase.configLevel}, &buf)

			logger.Log(context.Background(), testCase.logLevel, "test message")

			if !testCase.shouldLog {
				require.Empty(t, buf.String(), "log should not be written")

				return
			}

			var logEntry map[string]any

			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
			require.Equal(t, testCase.expectedLevel, logEntry["level"])
		})
	}
}

func TestConfigFromSettings(t *testing.T) {
	t.Parallel()

	cfg := logging.ConfigFromSettings(map[string]any{
		"level":  "DEBUG",
		"format": "text",
		"file":   "logs/pipeline.log",
	})
	require.Equal(t, logging.LoggerConfig{Level: "DEBUG", Format: "text"}, cfg)

	cfg = logging.ConfigFromSettings(map[string]any{"level": 10})
	require.Equal(t, logging.LoggerConfig{}, cfg)

	require.Equal(t, logging.LoggerConfig{}, logging.ConfigFromSettings(nil))
}
