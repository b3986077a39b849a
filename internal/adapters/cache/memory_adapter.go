package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/korlebu/facilitypulse/internal/domain/providers"
)

// MemoryAdapter implements the CacheProvider interface with an in-process
// store. It is the fallback when Redis is not configured.
type MemoryAdapter struct {
	store *gocache.Cache
}

// NewMemoryAdapter creates a new in-memory cache adapter
func NewMemoryAdapter(defaultTTL, cleanupInterval time.Duration) providers.CacheProvider {
	return &MemoryAdapter{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	value, found := a.store.Get(key)
	if !found {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected value type for key: %s", key)
	}
	return data, nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	expiration := time.Duration(expirationSeconds) * time.Second
	if expirationSeconds <= 0 {
		expiration = gocache.DefaultExpiration
	}
	a.store.Set(key, value, expiration)
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.store.Delete(key)
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(_ context.Context, key string) (bool, error) {
	_, found := a.store.Get(key)
	return found, nil
}
