// Package settings resolves the exchange-rate pipeline configuration.
//
// A Resolver is built once from a YAML settings document and an environment
// snapshot and never changes afterwards. Document-backed accessors fail with a
// *MissingKeyError when their key is absent, leaving the others usable; the
// database block is optional and resolved at load time with environment
// variables taking precedence:
//
//	DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD  >  database.*  >  zero value
//
// DB_PORT and database.port fall back to DefaultDatabasePort.
//
// API keys are read only from EXCHANGE_RATE_API_KEY and OPENAI_API_KEY, never from
// the document. ValidateAPIKeys reports every missing key in one error.
//
// Usage:
//
//	environ, err := env.Snapshot(env.DefaultDotenvFile)
//	resolver, err := settings.New("config/config.yaml", environ)
//	url, err := resolver.FullAPIURL("latest/USD")
package settings
