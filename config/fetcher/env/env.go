package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDotenvFile is the dotenv file consulted when the caller names none.
const DefaultDotenvFile = ".env"

// Env is an immutable snapshot of environment variables.
// It implements config.Environment.
type Env struct {
	values map[string]string
}

// FromMap builds a snapshot from values. The map is copied.
func FromMap(values map[string]string) Env {
	return Env{values: maps.Clone(values)}
}

// Snapshot copies the process environment and fills gaps from the given dotenv files.
// Variables already set in the process win over dotenv values, and earlier files win
// over later ones. Files that do not exist are skipped. The process environment is
// never modified.
func Snapshot(dotenvFiles ...string) (Env, error) {
	values := make(map[string]string)

	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			values[key] = value
		}
	}

	for _, file := range dotenvFiles {
		cleanPath := filepath.Clean(file)

		parsed, err := godotenv.Read(cleanPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("dotenv file not present, skipping", slog.String("path", cleanPath))

				continue
			}

			return Env{}, fmt.Errorf("reading dotenv %q: %w", cleanPath, err)
		}

		applied := 0

		for key, value := range parsed {
			if _, exists := values[key]; exists {
				continue
			}

			values[key] = value
			applied++
		}

		slog.Debug("dotenv file loaded", slog.String("path", cleanPath), slog.Int("applied", applied))
	}

	return Env{values: values}, nil
}

// Lookup returns the value for key. ok is false when the key is absent or empty.
func (e Env) Lookup(key string) (string, bool) {
	value, ok := e.values[key]
	if !ok || value == "" {
		return "", false
	}

	return value, true
}
