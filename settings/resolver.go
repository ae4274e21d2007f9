package settings

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cotacao/ratepipe/config"
	"github.com/cotacao/ratepipe/config/fetcher/env"
	filefetcher "github.com/cotacao/ratepipe/config/fetcher/file"
	yamlparser "github.com/cotacao/ratepipe/config/parser/yaml"
)

// DefaultPath is used when no settings path is given. It is relative to the working directory.
const DefaultPath = "config/config.yaml"

// DefaultDatabasePort applies when neither DB_PORT nor database.port is set.
const DefaultDatabasePort = 5432

// Environment variables consulted during resolution.
const (
	EnvExchangeRateAPIKey = "EXCHANGE_RATE_API_KEY"
	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvDatabaseHost       = "DB_HOST"
	EnvDatabasePort       = "DB_PORT"
	EnvDatabaseName       = "DB_NAME"
	EnvDatabaseUser       = "DB_USER"
	EnvDatabasePassword   = "DB_PASSWORD"
)

// Database is the resolved database block.
type Database struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

type apiKeys struct {
	exchangeRate string
	openAI       string
}

// Resolver exposes the resolved configuration: the settings document overlaid with
// environment overrides. All state is fixed at construction.
type Resolver struct {
	path     string
	document Document
	apiKeys  apiKeys
	database Database
}

// New reads the settings document at path (DefaultPath when empty) and resolves it
// against environ.
func New(path string, environ config.Environment) (*Resolver, error) {
	if path == "" {
		path = DefaultPath
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, err
	}

	return Load(yamlparser.NewParser(), fetcher, environ)
}

// Load resolves a settings document from fetcher. A nil parser means YAML and a nil
// environ behaves as an empty environment.
func Load(parser config.Parser, fetcher config.DataFetcher, environ config.Environment) (*Resolver, error) {
	if parser == nil {
		parser = yamlparser.NewParser()
	}

	if environ == nil {
		environ = env.FromMap(nil)
	}

	resolver, err := config.Provider(&Resolver{}, "")(parser, fetcher, environ)
	if err != nil {
		return nil, err
	}

	if located, ok := fetcher.(interface{ Path() string }); ok {
		resolver.path = located.Path()
	}

	return resolver, nil
}

// UnmarshalYAML decodes the settings file into the resolver's document.
func (r *Resolver) UnmarshalYAML(unmarshal func(any) error) error {
	return unmarshal(&r.document)
}

// Override reads API keys and database overrides from environ.
func (r *Resolver) Override(environ config.Environment) error {
	r.apiKeys.exchangeRate, _ = environ.Lookup(EnvExchangeRateAPIKey)
	r.apiKeys.openAI, _ = environ.Lookup(EnvOpenAIAPIKey)

	var section DatabaseSection
	if r.document.Database != nil {
		section = *r.document.Database
	}

	r.database = Database{
		Host:     firstSet(environ, EnvDatabaseHost, section.Host),
		Name:     firstSet(environ, EnvDatabaseName, section.Database),
		User:     firstSet(environ, EnvDatabaseUser, section.User),
		Password: firstSet(environ, EnvDatabasePassword, section.Password),
	}

	if raw, ok := environ.Lookup(EnvDatabasePort); ok {
		port, err := parsePort(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDatabasePort, err)
		}

		r.database.Port = port

		return nil
	}

	if section.Port != nil {
		port, err := parsePort(section.Port)
		if err != nil {
			return fmt.Errorf("database.port: %w", err)
		}

		r.database.Port = port
	}

	return nil
}

// SetDefaults applies DefaultDatabasePort.
func (r *Resolver) SetDefaults() bool {
	if r.database.Port != 0 {
		return false
	}

	r.database.Port = DefaultDatabasePort

	return true
}

// Validate checks the resolved database block. Required document keys are checked
// per accessor, or all at once by CheckRequired.
func (r *Resolver) Validate() error {
	if r.database.Port < 1 || r.database.Port > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, r.database.Port)
	}

	return nil
}

// Path returns the settings file the resolver was loaded from, if known.
func (r *Resolver) Path() string {
	return r.path
}

// APIBaseURL returns api.base_url.
func (r *Resolver) APIBaseURL() (string, error) {
	if r.document.API == nil || r.document.API.BaseURL == nil {
		return "", missing("api.base_url")
	}

	return *r.document.API.BaseURL, nil
}

// APITimeout returns api.timeout.
func (r *Resolver) APITimeout() (int, error) {
	if r.document.API == nil || r.document.API.Timeout == nil {
		return 0, missing("api.timeout")
	}

	return *r.document.API.Timeout, nil
}

// BaseCurrency returns currencies.base.
func (r *Resolver) BaseCurrency() (string, error) {
	if r.document.Currencies == nil || r.document.Currencies.Base == nil {
		return "", missing("currencies.base")
	}

	return *r.document.Currencies.Base, nil
}

// TargetCurrencies returns currencies.targets in document order.
func (r *Resolver) TargetCurrencies() ([]string, error) {
	if r.document.Currencies == nil || r.document.Currencies.Targets == nil {
		return nil, missing("currencies.targets")
	}

	return slices.Clone(r.document.Currencies.Targets), nil
}

// DataPaths returns the data_paths mapping.
func (r *Resolver) DataPaths() (map[string]string, error) {
	if r.document.DataPaths == nil {
		return nil, missing("data_paths")
	}

	return maps.Clone(r.document.DataPaths), nil
}

// LLM returns the llm block.
func (r *Resolver) LLM() (map[string]any, error) {
	if r.document.LLM == nil {
		return nil, missing("llm")
	}

	return copyMap(r.document.LLM), nil
}

// Logging returns the logging block.
func (r *Resolver) Logging() (map[string]any, error) {
	if r.document.Logging == nil {
		return nil, missing("logging")
	}

	return copyMap(r.document.Logging), nil
}

// DatabaseEnabled reports database.enabled, false when the block is absent.
func (r *Resolver) DatabaseEnabled() bool {
	return r.document.Database != nil && r.document.Database.Enabled
}

// Database returns the resolved database block.
func (r *Resolver) Database() Database {
	return r.database
}

// CheckRequired returns every missing required key at once, joined.
func (r *Resolver) CheckRequired() error {
	_, errBaseURL := r.APIBaseURL()
	_, errTimeout := r.APITimeout()
	_, errBase := r.BaseCurrency()
	_, errTargets := r.TargetCurrencies()
	_, errPaths := r.DataPaths()
	_, errLLM := r.LLM()
	_, errLogging := r.Logging()

	return errors.Join(errBaseURL, errTimeout, errBase, errTargets, errPaths, errLLM, errLogging)
}

// ValidateAPIKeys returns nil when both API keys are present. Otherwise the error
// names every missing variable.
func (r *Resolver) ValidateAPIKeys() error {
	var names []string

	if r.apiKeys.exchangeRate == "" {
		names = append(names, EnvExchangeRateAPIKey)
	}

	if r.apiKeys.openAI == "" {
		names = append(names, EnvOpenAIAPIKey)
	}

	if len(names) > 0 {
		return &MissingAPIKeysError{Names: names}
	}

	return nil
}

// FullAPIURL builds {base_url}/{api_key}/{endpoint}. No component is escaped.
func (r *Resolver) FullAPIURL(endpoint string) (string, error) {
	baseURL, err := r.APIBaseURL()
	if err != nil {
		return "", err
	}

	return baseURL + "/" + r.apiKeys.exchangeRate + "/" + endpoint, nil
}

func firstSet(environ config.Environment, key, fallback string) string {
	if value, ok := environ.Lookup(key); ok {
		return value
	}

	return fallback
}

func parsePort(raw any) (int, error) {
	var port int

	switch value := raw.(type) {
	case int:
		port = value
	case int64:
		port = int(value)
	case uint64:
		if value > math.MaxUint16 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidPort, value)
		}

		port = int(value)
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPort, value)
		}

		port = int(value)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPort, value)
		}

		port = parsed
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidPort, raw)
	}

	if port < 1 || port > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	return port, nil
}
