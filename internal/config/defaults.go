package config

// DefaultConfig returns the built-in configuration. The Gemini provider is
// enabled by default and reads its key from the GEMINI_API_KEY environment
// variable.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderConfig{
			"gemini": {
				Type:        "gemini",
				Model:       "gemini-2.0-flash",
				APIKey:      "${GEMINI_API_KEY}",
				Temperature: 0.5,
				MaxTokens:   1250,
				Enabled:     true,
			},
			"openai": {
				Type:        "openai",
				Model:       "gpt-4o-mini",
				APIKey:      "${OPENAI_API_KEY}",
				Temperature: 0.5,
				MaxTokens:   1250,
				Enabled:     false,
			},
		},
		Defaults: Defaults{
			Provider:    "gemini",
			ResultCount: 5,
		},
		Covers: CoversConfig{
			Enabled: true,
		},
	}
}
