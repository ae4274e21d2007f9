package settings

import (
	"errors"
	"strings"
)

// ErrMissingKey is matched by every MissingKeyError.
var ErrMissingKey = errors.New("missing configuration key")

// ErrMissingAPIKeys is matched by every MissingAPIKeysError.
var ErrMissingAPIKeys = errors.New("missing API keys")

// ErrInvalidPort is returned when the database port is not an integer in 1..65535.
var ErrInvalidPort = errors.New("invalid database port")

// MissingKeyError reports a required document path that is absent.
type MissingKeyError struct {
	// Path is dot-separated, e.g. "api.base_url".
	Path string
}

func (e *MissingKeyError) Error() string {
	return ErrMissingKey.Error() + ": " + e.Path
}

// Is reports whether target is ErrMissingKey.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// MissingAPIKeysError lists every required API key absent from the environment.
type MissingAPIKeysError struct {
	Names []string
}

func (e *MissingAPIKeysError) Error() string {
	return ErrMissingAPIKeys.Error() + ": " + strings.Join(e.Names, ", ")
}

// Is reports whether target is ErrMissingAPIKeys.
func (e *MissingAPIKeysError) Is(target error) bool {
	return target == ErrMissingAPIKeys
}

func missing(path string) error {
	return &MissingKeyError{Path: path}
}
