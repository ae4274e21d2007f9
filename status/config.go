package status

import (
	"errors"
	"fmt"

	"github.com/cotacao/ratepipe/config"
	yamlparser "github.com/cotacao/ratepipe/config/parser/yaml"
	"github.com/cotacao/ratepipe/listener"
)

// SettingsSection is the settings document key holding the listener block:
//
//	status:
//	  address: 127.0.0.1:8081
//	  read_header_timeout: 5s
const SettingsSection = "status"

// LoadConfig reads the listener block from the settings document. Unknown keys in
// the block are rejected. A missing block yields defaults. A non-empty address
// overrides the document.
func LoadConfig(fetcher config.DataFetcher, address string) (listener.Config, error) {
	var cfg listener.Config

	loaded, err := config.Provider(&cfg, SettingsSection)(yamlparser.NewParser(yamlparser.WithStrict()), fetcher, nil)

	switch {
	case err == nil:
		cfg = *loaded
	case errors.Is(err, yamlparser.ErrPathNotFound):
		cfg = listener.Config{}
		cfg.SetDefaults()
	default:
		return listener.Config{}, fmt.Errorf("status listener settings: %w", err)
	}

	if address != "" {
		cfg.Address = address
	}

	return cfg, nil
}
