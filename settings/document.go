package settings

// Document is the typed form of the settings file. Required fields are pointers or
// nil-able collections so that an absent key can be told apart from a zero value.
type Document struct {
	API        *APISection        `yaml:"api"`
	Currencies *CurrenciesSection `yaml:"currencies"`
	DataPaths  map[string]string  `yaml:"data_paths"`
	LLM        map[string]any     `yaml:"llm"`
	Logging    map[string]any     `yaml:"logging"`
	Database   *DatabaseSection   `yaml:"database"`
}

// APISection is the "api" block.
type APISection struct {
	BaseURL *string `yaml:"base_url"`
	Timeout *int    `yaml:"timeout"`
}

// CurrenciesSection is the "currencies" block.
type CurrenciesSection struct {
	Base    *string  `yaml:"base"`
	Targets []string `yaml:"targets"`
}

// DatabaseSection is the optional "database" block. Port is kept as raw YAML so that
// both 5433 and "5433" are accepted, as they are for DB_PORT.
type DatabaseSection struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     any    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}
