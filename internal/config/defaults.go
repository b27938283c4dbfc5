package config

import "time"

// DefaultConfig returns the built-in configuration. Ollama is enabled out of
// the box since it needs no API key; the hosted backends ship disabled with
// environment-variable key references.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"ollama": {
				Type:    "ollama",
				BaseURL: "http://127.0.0.1:11434",
				Model:   "gemma3",
				Enabled: true,
			},
			"openai": {
				Type:    "openai",
				APIKey:  "${OPENAI_API_KEY}",
				Model:   "gpt-4o-mini",
				Enabled: false,
			},
			"openrouter": {
				Type:    "openrouter",
				APIKey:  "${OPENROUTER_API_KEY}",
				Model:   "google/gemma-3-27b-it",
				Enabled: false,
			},
		},
		Correction: CorrectionCfg{
			Provider:         "ollama",
			MaxAttempts:      3,
			RetryDelay:       time.Second,
			RequestTimeout:   120 * time.Second,
			BatchConcurrency: 4,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}
