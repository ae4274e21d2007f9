package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotacao/ratepipe/config"
	"github.com/cotacao/ratepipe/listener"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		section  string
		address  string
		expected listener.Config
	}{
		{
			name:     "no status block",
			expected: listener.Config{Address: listener.DefaultAddress, ReadHeaderTimeout: listener.DefaultReadHeaderTimeout},
		},
		{
			name:     "address only",
			section:  "status:\n  address: 127.0.0.1:9090\n",
			expected: listener.Config{Address: "127.0.0.1:9090", ReadHeaderTimeout: listener.DefaultReadHeaderTimeout},
		},
		{
			name:     "full block",
			section:  "status:\n  address: :9191\n  read_header_timeout: 3s\n",
			expected: listener.Config{Address: ":9191", ReadHeaderTimeout: 3 * time.Second},
		},
		{
			name:     "flag overrides block",
			section:  "status:\n  address: :9191\n",
			address:  "127.0.0.1:7070",
			expected: listener.Config{Address: "127.0.0.1:7070", ReadHeaderTimeout: listener.DefaultReadHeaderTimeout},
		},
		{
			name:     "flag without block",
			address:  "127.0.0.1:7070",
			expected: listener.Config{Address: "127.0.0.1:7070", ReadHeaderTimeout: listener.DefaultReadHeaderTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(staticFetcher(document+tt.section), tt.address)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(staticFetcher(document+"status:\n  listen: :9090\n"), "")

	require.ErrorIs(t, err, config.ErrDocumentParse)
	assert.Contains(t, err.Error(), "listen")
}
