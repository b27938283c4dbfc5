package providers

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry holds references to completion clients by name. It supports
// config-driven instantiation, hot-reload, and thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]CompletionClient
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]CompletionClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds a completion client by name.
func (r *Registry) Register(name string, client CompletionClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered completion client", "name", name)
	}
}

// Get returns a completion client by name.
func (r *Registry) Get(name string) (CompletionClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("completion client not found: %s", name)
	}
	return client, nil
}

// Has checks if a completion client is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	// Providers maps provider names to their config
	Providers map[string]ProviderConfig
}

// ProviderConfig describes one completion backend with resolved API key.
type ProviderConfig struct {
	Type    string // "ollama", "openai"
	BaseURL string // Service endpoint (optional, type-specific default)
	APIKey  string // Resolved API key (openai only)
	Model   string // Default model name
	Enabled bool
}

// NewRegistryFromConfig creates a registry with clients based on configuration.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled {
			continue
		}
		if client := createClient(provCfg); client != nil {
			r.clients[name] = client
		}
	}
	return r
}

// Reload updates the registry based on new configuration. Clients that are no
// longer configured are unregistered; clients with changed settings are
// re-created.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)

	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled {
			continue
		}

		existing, hasExisting := r.clients[name]
		if hasExisting && !needsUpdate(existing, provCfg) {
			want[name] = true
			continue
		}

		client := createClient(provCfg)
		if client == nil {
			continue
		}
		want[name] = true
		r.clients[name] = client
		if r.logger != nil {
			if hasExisting {
				r.logger.Info("updated completion client", "name", name, "type", provCfg.Type)
			} else {
				r.logger.Info("registered completion client", "name", name, "type", provCfg.Type)
			}
		}
	}

	for name := range r.clients {
		if !want[name] {
			delete(r.clients, name)
			if r.logger != nil {
				r.logger.Info("unregistered completion client", "name", name)
			}
		}
	}
}

// createClient creates a completion client based on provider type.
// Returns nil for unknown types or missing required credentials.
func createClient(cfg ProviderConfig) CompletionClient {
	switch cfg.Type {
	case "ollama":
		return NewOllamaClient(OllamaConfig{
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.Model,
		})
	case "openai":
		if cfg.APIKey == "" {
			return nil
		}
		return NewOpenAIClient(OpenAIConfig{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.Model,
		})
	case "openrouter":
		if cfg.APIKey == "" {
			return nil
		}
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.Model,
		})
	default:
		return nil
	}
}

// needsUpdate checks if a client needs to be recreated for new settings.
func needsUpdate(client CompletionClient, cfg ProviderConfig) bool {
	switch c := client.(type) {
	case *OllamaClient:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = OllamaBaseURL
		}
		model := cfg.Model
		if model == "" {
			model = ollamaDefaultModel
		}
		return c.baseURL != baseURL || c.defaultModel != model
	case *OpenAIClient:
		model := cfg.Model
		if model == "" {
			model = openAIDefaultModel
		}
		return c.apiKey != cfg.APIKey ||
			c.baseURL != cfg.BaseURL ||
			c.defaultModel != model
	case *OpenRouterClient:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = OpenRouterBaseURL
		}
		model := cfg.Model
		if model == "" {
			model = openRouterDefaultModel
		}
		return c.apiKey != cfg.APIKey ||
			c.baseURL != baseURL ||
			c.defaultModel != model
	default:
		return true
	}
}
