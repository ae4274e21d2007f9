package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotacao/ratepipe/config"
	"github.com/cotacao/ratepipe/logging"
	"github.com/cotacao/ratepipe/settings"
)

const fullSettings = `
api:
  base_url: https://api.example.com
  timeout: 30
currencies:
  base: USD
  targets: [BRL]
data_paths:
  raw: data/raw
llm:
  model: gpt-4o-mini
logging:
  level: INFO
database:
  enabled: true
  password: file-secret
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// clearKeys isolates the run from keys set in the developer's environment.
func clearKeys(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		settings.EnvExchangeRateAPIKey, settings.EnvOpenAIAPIKey,
		settings.EnvDatabaseHost, settings.EnvDatabasePort, settings.EnvDatabaseName,
		settings.EnvDatabaseUser, settings.EnvDatabasePassword,
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestCheck(t *testing.T) {
	clearKeys(t)

	path := writeSettings(t, fullSettings)
	noDotenv := filepath.Join(t.TempDir(), "none.env")

	code, stdout, _ := execute(t, "--config", path, "--env-file", noDotenv, "check")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "settings: ok")
	assert.Contains(t, stdout, "missing API keys: EXCHANGE_RATE_API_KEY, OPENAI_API_KEY")

	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("EXCHANGE_RATE_API_KEY=abc\nOPENAI_API_KEY=sk\n"), 0o600))

	code, stdout, _ = execute(t, "--config", path, "--env-file", dotenv, "check")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "api keys: ok")
}

func TestCheck_MissingRequiredKeys(t *testing.T) {
	clearKeys(t)

	path := writeSettings(t, "api:\n  base_url: https://api.example.com\n")

	code, stdout, _ := execute(t, "--config", path, "check")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "settings: FAIL")
	assert.Contains(t, stdout, "missing configuration key: currencies.base")
}

func TestShow_RedactsSecrets(t *testing.T) {
	clearKeys(t)
	t.Setenv(settings.EnvOpenAIAPIKey, "sk-live")

	path := writeSettings(t, fullSettings)

	code, stdout, stderr := execute(t, "--config", path, "show")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "file-secret")
	assert.NotContains(t, stdout, "sk-live")

	var summary settings.Summary

	require.NoError(t, yaml.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, "USD", summary.BaseCurrency)
	assert.Equal(t, settings.RedactedValue, summary.Database.Password)
	assert.Equal(t, settings.DefaultDatabasePort, summary.Database.Port)
	assert.True(t, summary.APIKeys[settings.EnvOpenAIAPIKey])
	assert.False(t, summary.APIKeys[settings.EnvExchangeRateAPIKey])
}

func TestURL(t *testing.T) {
	clearKeys(t)
	t.Setenv(settings.EnvExchangeRateAPIKey, "XYZ")

	path := writeSettings(t, fullSettings)

	code, stdout, _ := execute(t, "--config", path, "url", "latest/USD")
	assert.Equal(t, 0, code)
	assert.Equal(t, "https://api.example.com/XYZ/latest/USD\n", stdout)
}

func TestURL_MissingBaseURL(t *testing.T) {
	clearKeys(t)

	path := writeSettings(t, "currencies:\n  base: USD\n")

	code, _, stderr := execute(t, "--config", path, "url", "latest")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "api.base_url")
}

func TestMissingSettingsFile(t *testing.T) {
	clearKeys(t)

	code, _, stderr := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "show")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not found")
}

func TestUsageError(t *testing.T) {
	code, _, _ := execute(t, "frobnicate")
	assert.Equal(t, 2, code)
}

func freeAddress(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	return addr
}

func TestNewServeApp(t *testing.T) {
	clearKeys(t)

	addr := freeAddress(t)
	doc := strings.Replace(fullSettings, "  level: INFO\n", "  level: INFO\n  format: text\n", 1) +
		"status:\n  address: " + addr + "\n"
	path := writeSettings(t, doc)

	var stderr bytes.Buffer

	app, err := newServeApp(cli{configPath: path, envFiles: []string{filepath.Join(t.TempDir(), "none.env")}}, &stderr)
	require.NoError(t, err)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Contains(t, stderr.String(), `msg="settings resolved"`)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+"/healthz", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestNewServeApp_ListenFlagOverridesDocument(t *testing.T) {
	clearKeys(t)

	addr := freeAddress(t)
	path := writeSettings(t, fullSettings+"status:\n  address: 256.0.0.1:1\n")

	app, err := newServeApp(cli{configPath: path, listen: addr}, io.Discard)
	require.NoError(t, err)

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
}

func TestNewServeApp_Errors(t *testing.T) {
	clearKeys(t)

	_, err := newServeApp(cli{configPath: filepath.Join(t.TempDir(), "absent.yaml")}, io.Discard)
	require.ErrorIs(t, err, config.ErrDocumentNotFound)

	_, err = newServeApp(cli{configPath: writeSettings(t, "# nothing\n")}, io.Discard)
	require.ErrorIs(t, err, config.ErrDocumentParse)
}

func TestLoggerConfigFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		expected logging.LoggerConfig
	}{
		{name: "level and format", document: "logging:\n  level: DEBUG\n  format: text\n", expected: logging.LoggerConfig{Level: "DEBUG", Format: "text"}},
		{name: "no logging block", document: "api:\n  timeout: 1\n", expected: logging.LoggerConfig{}},
		{name: "logging not a mapping", document: "logging: verbose\n", expected: logging.LoggerConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, loggerConfigFrom(staticSettings(tt.document)))
		})
	}
}

type staticSettings string

func (s staticSettings) Fetch() ([]byte, error) { return []byte(s), nil }
