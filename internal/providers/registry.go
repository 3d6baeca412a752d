package providers

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ClientConfig describes one configured provider.
type ClientConfig struct {
	Type        string // "gemini", "openai", "mock"
	Model       string
	APIKey      string // already resolved, never a ${ENV} reference
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Enabled     bool
}

// RegistryConfig is the provider section of the application config.
type RegistryConfig struct {
	Clients map[string]ClientConfig
}

// Registry holds text-generation clients by name. It supports config-driven
// instantiation and hot reload, and provides thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers a client by name.
func (r *Registry) Register(name string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// Get returns a client by name.
func (r *Registry) Get(name string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// Has checks if a client is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// List returns all registered client names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reload replaces the registered clients from configuration. Disabled
// entries and entries with an unresolved API key are skipped; the skip is
// logged so a missing environment variable is visible at startup.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make(map[string]Client, len(cfg.Clients))
	for name, cc := range cfg.Clients {
		if !cc.Enabled {
			continue
		}
		if cc.APIKey == "" && cc.Type != "mock" {
			if r.logger != nil {
				r.logger.Warn("skipping LLM client with no API key", "name", name, "type", cc.Type)
			}
			continue
		}

		chatCfg := ChatConfig{
			APIKey:      cc.APIKey,
			Model:       cc.Model,
			Temperature: cc.Temperature,
			MaxTokens:   cc.MaxTokens,
			Timeout:     cc.Timeout,
		}

		switch cc.Type {
		case "gemini":
			clients[name] = NewGeminiClient(chatCfg)
		case "openai":
			clients[name] = NewOpenAIClient(chatCfg)
		case "mock":
			clients[name] = NewMockClient()
		default:
			if r.logger != nil {
				r.logger.Warn("unknown LLM client type", "name", name, "type", cc.Type)
			}
			continue
		}
		if r.logger != nil {
			r.logger.Info("registered LLM client", "name", name, "type", cc.Type, "model", cc.Model)
		}
	}

	r.clients = clients
}
