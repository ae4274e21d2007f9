// Package config provides the layered configuration pipeline used by ratepipe.
//
// A settings document is resolved in fixed stages, each behind a small interface:
//   - DataFetcher: retrieves raw bytes (see config/fetcher/file)
//   - Parser: decodes bytes into a typed record, with path navigation (see config/parser/yaml)
//   - Overrider: merges environment-sourced values (see config/fetcher/env)
//   - Defaulter: fills values neither source supplied
//   - Validator: rejects the result
//
// # Path Navigation
//
// Paths use colon (:) as the separator:
//
//	"api:base_url"      -> document["api"]["base_url"]
//	"database"          -> document["database"]
//	""                  -> entire document
//
// # Errors
//
// Fetchers wrap a missing file with ErrDocumentNotFound and Provider wraps every
// parser failure with ErrDocumentParse, so callers can branch with errors.Is.
//
// # Example
//
//	type APIConfig struct {
//	    BaseURL string `yaml:"base_url"`
//	    Timeout int    `yaml:"timeout"`
//	}
//
//	provider := config.Provider(&APIConfig{}, "api")
//	cfg, err := provider(yamlparser.NewParser(), fetcher, env.FromMap(nil))
package config
