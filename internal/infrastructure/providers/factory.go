package providers

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Factory manages provider clients keyed by provider name. Clients are
// created lazily and cached.
type Factory struct {
	baseURL string
	apiKey  string
	timeout time.Duration

	clients map[string]Client
	mu      sync.RWMutex
}

// NewFactory creates a new provider client factory.
func NewFactory(baseURL, apiKey string, timeout time.Duration) *Factory {
	return &Factory{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		clients: make(map[string]Client),
	}
}

// GetClient returns the client for the given provider name.
// If a client already exists for the provider, it returns the cached client.
func (f *Factory) GetClient(provider string) (Client, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		return nil, fmt.Errorf("provider name is required")
	}

	f.mu.RLock()
	client, ok := f.clients[name]
	f.mu.RUnlock()
	if ok {
		return client, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double check
	if client, ok := f.clients[name]; ok {
		return client, nil
	}

	newClient := NewHTTPClient(f.baseURL+"/"+name, f.apiKey, f.timeout)
	f.clients[name] = newClient
	return newClient, nil
}

// RegisterClient injects/overrides the cached client for a provider.
// Useful for deterministic unit tests.
func (f *Factory) RegisterClient(provider string, client Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[strings.ToLower(provider)] = client
}
