package ai

import (
	"errors"
	"sync"

	"resumeflow/internal/config"
	flowErrors "resumeflow/internal/errors"
)

// Registry caches providers per operation type and model so pipelines
// sharing a model share one client. It owns provider lifetimes: callers
// create one registry, pass it to the pipelines, and Close it on shutdown.
type Registry struct {
	mu        sync.Mutex
	providers map[string]*GeminiProvider
	logger    *flowErrors.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(logger *flowErrors.Logger) *Registry {
	return &Registry{
		providers: make(map[string]*GeminiProvider),
		logger:    logger,
	}
}

// Provider returns the cached provider for the operation type and model,
// creating it on first use. The key includes the operation type so
// operations with different retry or breaker settings never alias.
func (r *Registry) Provider(cfg *config.OperationAIConfig, operationType string) (*GeminiProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := operationType + "/" + cfg.Model
	if provider, ok := r.providers[key]; ok {
		return provider, nil
	}

	provider, err := NewGeminiProvider(cfg, operationType, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Created AI provider",
		"operation_type", operationType,
		"model", cfg.Model)

	r.providers[key] = provider
	return provider, nil
}

// Stats returns circuit breaker statistics for every cached provider.
func (r *Registry) Stats() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := make(map[string]any, len(r.providers))
	for key, provider := range r.providers {
		stats[key] = provider.GetCircuitBreakerStats()
	}
	return stats
}

// Close closes every cached provider.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for key, provider := range r.providers {
		if err := provider.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.providers, key)
	}
	return errors.Join(errs...)
}
