// Package cache provides the short-lived in-memory cache the derived
// views are served through.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache defines the contract for cache implementations
type Cache interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)
}

// Memory is the in-process implementation backed by go-cache.
type Memory struct {
	cache *gocache.Cache
}

var _ Cache = (*Memory)(nil)

func NewMemory(defaultExpiration, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (m *Memory) Set(key string, value interface{}, duration time.Duration) {
	m.cache.Set(key, value, duration)
}

func (m *Memory) Get(key string) (interface{}, bool) {
	return m.cache.Get(key)
}

func (m *Memory) Delete(key string) {
	m.cache.Delete(key)
}

func (m *Memory) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error)) (interface{}, error) {
	if val, found := m.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	m.Set(key, val, duration)
	return val, nil
}
