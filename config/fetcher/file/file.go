package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cotacao/ratepipe/config"
)

// ErrPathIsDirectory is returned when the settings path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for a settings document on disk.
// The document is read once at construction and cached.
type Fetcher struct {
	path string
	data []byte
}

// NewFetcher returns an Fx-friendly constructor for a Fetcher reading fpath.
// A path that does not exist yields an error wrapping config.ErrDocumentNotFound.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", config.ErrDocumentNotFound, cleanPath)
			}

			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- operator-supplied settings path
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{path: cleanPath, data: data}, nil
	}
}

// Path returns the cleaned path the document was read from.
func (f *Fetcher) Path() string {
	return f.path
}

// Fetch returns a copy of the cached document.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
