package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrDocumentNotFound is returned when the settings document path does not resolve to a file.
var ErrDocumentNotFound = errors.New("settings document not found")

// ErrDocumentParse is returned when the settings document exists but is not valid structured data.
var ErrDocumentParse = errors.New("settings document parse error")

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter specifies a navigation path within the document using colon (:)
// as the separator for nested keys, e.g. "api:base_url" or "database:port".
// An empty path parses the entire document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading raw configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Environment is a read-only view over environment-sourced values.
// Lookup reports ok=false for both absent and empty values.
type Environment interface {
	Lookup(key string) (string, bool)
}

// Overrider applies environment-sourced overrides after the document has been parsed.
type Overrider interface {
	Override(env Environment) error
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads and parses configuration data, then applies
// environment overrides, defaults and validation, in that order.
func Provider[T any](target *T, path string) func(Parser, DataFetcher, Environment) (*T, error) {
	return func(parser Parser, fetcher DataFetcher, env Environment) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDocumentParse, err)
		}

		if overrider, ok := any(target).(Overrider); ok && env != nil {
			err = overrider.Override(env)
			if err != nil {
				return nil, fmt.Errorf("applying overrides: %w", err)
			}
		}

		if defaulter, ok := any(target).(Defaulter); ok {
			if defaulter.SetDefaults() {
				slog.Debug("defaults applied", slog.String("path", path))
			}
		}

		if validator, ok := any(target).(Validator); ok {
			err = validator.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
