package config

// Config is the full application configuration.
type Config struct {
	// Providers maps provider name to its settings.
	Providers map[string]ProviderConfig `mapstructure:"providers" yaml:"providers"`

	// Defaults holds per-turn defaults.
	Defaults Defaults `mapstructure:"defaults" yaml:"defaults"`

	// Covers holds cover-lookup settings.
	Covers CoversConfig `mapstructure:"covers" yaml:"covers"`
}

// ProviderConfig holds settings for one text-generation provider.
type ProviderConfig struct {
	Type        string  `mapstructure:"type" yaml:"type"`
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"` // ${ENV_VAR} references allowed
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
}

// Defaults holds per-turn defaults.
type Defaults struct {
	// Provider is the provider used when a request does not name one.
	Provider string `mapstructure:"provider" yaml:"provider"`

	// ResultCount is the number of books requested per turn (1-10).
	ResultCount int `mapstructure:"result_count" yaml:"result_count"`
}

// CoversConfig holds cover-lookup settings.
type CoversConfig struct {
	// Enabled toggles the Open Library lookup. When disabled every record
	// gets the placeholder image.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}
