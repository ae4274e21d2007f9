package settings

// RedactedValue replaces secrets in a Summary.
const RedactedValue = "***"

// Summary is an operator-facing view of the resolved configuration with secrets redacted.
type Summary struct {
	Path             string            `json:"path,omitempty"             yaml:"path,omitempty"`
	APIBaseURL       string            `json:"api_base_url,omitempty"     yaml:"api_base_url,omitempty"`
	APITimeout       int               `json:"api_timeout,omitempty"      yaml:"api_timeout,omitempty"`
	BaseCurrency     string            `json:"base_currency,omitempty"    yaml:"base_currency,omitempty"`
	TargetCurrencies []string          `json:"target_currencies,omitempty" yaml:"target_currencies,omitempty"`
	DataPaths        map[string]string `json:"data_paths,omitempty"       yaml:"data_paths,omitempty"`
	Database         DatabaseSummary   `json:"database"                   yaml:"database"`
	APIKeys          map[string]bool   `json:"api_keys"                   yaml:"api_keys"`
}

// DatabaseSummary is the redacted database block.
type DatabaseSummary struct {
	Enabled  bool   `json:"enabled"            yaml:"enabled"`
	Host     string `json:"host,omitempty"     yaml:"host,omitempty"`
	Port     int    `json:"port"               yaml:"port"`
	Name     string `json:"name,omitempty"     yaml:"name,omitempty"`
	User     string `json:"user,omitempty"     yaml:"user,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// Summary builds the redacted view. Missing document keys are left empty.
func (r *Resolver) Summary() Summary {
	summary := Summary{
		Path: r.path,
		Database: DatabaseSummary{
			Enabled: r.DatabaseEnabled(),
			Host:    r.database.Host,
			Port:    r.database.Port,
			Name:    r.database.Name,
			User:    r.database.User,
		},
		APIKeys: map[string]bool{
			EnvExchangeRateAPIKey: r.apiKeys.exchangeRate != "",
			EnvOpenAIAPIKey:       r.apiKeys.openAI != "",
		},
	}

	if r.database.Password != "" {
		summary.Database.Password = RedactedValue
	}

	summary.APIBaseURL, _ = r.APIBaseURL()
	summary.APITimeout, _ = r.APITimeout()
	summary.BaseCurrency, _ = r.BaseCurrency()
	summary.TargetCurrencies, _ = r.TargetCurrencies()
	summary.DataPaths, _ = r.DataPaths()

	return summary
}
