package cache

import (
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// InMemoryCache is an in-process store. Entries never expire.
type InMemoryCache[V any] struct {
	items *gocache.Cache
	pool  *workers

	// mu serializes writes so that swaps observe a consistent prior value.
	mu sync.Mutex
}

// NewInMemoryCache creates a new in-memory store running asynchronous
// operations on at most n workers.
func NewInMemoryCache[V any](n int) *InMemoryCache[V] {
	return &InMemoryCache[V]{
		items: gocache.New(gocache.NoExpiration, 0),
		pool:  newWorkers(n),
	}
}

// Get retrieves the value stored under key.
func (c *InMemoryCache[V]) Get(key string) (V, bool, error) {
	var zero V

	raw, ok := c.items.Get(key)
	if !ok {
		return zero, false, nil
	}

	v, ok := raw.(V)
	if !ok {
		return zero, false, fmt.Errorf("%w: %T under key %q", ErrUnexpectedValue, raw, key)
	}

	return v, true, nil
}

// Put stores value under key.
func (c *InMemoryCache[V]) Put(key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Set(key, value, gocache.NoExpiration)

	return nil
}

// Remove deletes key.
func (c *InMemoryCache[V]) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Delete(key)

	return nil
}

// Clear removes every entry.
func (c *InMemoryCache[V]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Flush()

	return nil
}

// Scan returns a copy of all entries.
func (c *InMemoryCache[V]) Scan() ([]Entry[V], error) {
	items := c.items.Items()

	entries := make([]Entry[V], 0, len(items))
	for key, item := range items {
		v, ok := item.Object.(V)
		if !ok {
			return nil, fmt.Errorf("%w: %T under key %q", ErrUnexpectedValue, item.Object, key)
		}

		entries = append(entries, Entry[V]{Key: key, Value: v})
	}

	return entries, nil
}

// GetAsync retrieves the value stored under key on a worker.
func (c *InMemoryCache[V]) GetAsync(key string) Future[V] {
	return submit(c.pool, func() (V, bool, error) {
		return c.Get(key)
	})
}

// PutAsync stores value on a worker and resolves to the replaced value.
func (c *InMemoryCache[V]) PutAsync(key string, value V) Future[V] {
	return submit(c.pool, func() (V, bool, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		prior, found, err := c.Get(key)
		if err != nil {
			return prior, false, err
		}

		c.items.Set(key, value, gocache.NoExpiration)

		return prior, found, nil
	})
}

// RemoveAsync deletes key on a worker and resolves to whether it was present.
func (c *InMemoryCache[V]) RemoveAsync(key string) Future[bool] {
	return submit(c.pool, func() (bool, bool, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		_, found := c.items.Get(key)
		c.items.Delete(key)

		return found, true, nil
	})
}

// Close waits for in-flight asynchronous operations.
func (c *InMemoryCache[V]) Close() error {
	c.pool.close()

	return nil
}
