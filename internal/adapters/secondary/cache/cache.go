// Package cache provides the asynchronous key-value store used as the system of record.
//
// Two engines are available: an in-process store backed by go-cache and a
// shared store backed by Redis. Both expose synchronous calls and
// asynchronous calls that complete on store-managed workers.
package cache

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrClosed is returned by operations issued after Close.
	ErrClosed = errors.New("cache: closed")

	// ErrUnexpectedValue is returned when a stored value has the wrong type.
	ErrUnexpectedValue = errors.New("cache: unexpected value type")
)

// Entry is a key/value pair returned by Scan.
type Entry[V any] struct {
	Key   string
	Value V
}

// Future is the handle of an asynchronous store operation.
type Future[V any] interface {
	// Listen registers fn to run exactly once when the operation completes.
	// If the operation already completed, fn runs immediately on the caller.
	Listen(fn func(Future[V]))

	// Get blocks until completion. The boolean reports whether a value was returned.
	Get() (V, bool, error)

	// Done is closed once the operation completes.
	Done() <-chan struct{}
}

// Cache defines the key-value store operations consumed by repositories.
type Cache[V any] interface {
	// Get returns the value stored under key. Returns false if there is none.
	Get(key string) (V, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value V) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Clear removes every entry.
	Clear() error

	// Scan returns a point-in-time copy of all entries.
	Scan() ([]Entry[V], error)

	// GetAsync is the asynchronous form of Get.
	GetAsync(key string) Future[V]

	// PutAsync stores value and resolves to the value it replaced, if any.
	PutAsync(key string, value V) Future[V]

	// RemoveAsync deletes key and resolves to whether it was present.
	RemoveAsync(key string) Future[bool]

	// Close waits for in-flight asynchronous operations and releases resources.
	Close() error
}

// Options selects and configures a store engine.
type Options struct {
	Driver    string
	RedisAddr string
	RedisDB   int
	Prefix    string
	Workers   int
}

// New creates the store engine selected by opts.Driver, wrapped with metrics.
func New[V any](opts Options, logger *zap.Logger) (Cache[V], error) {
	switch opts.Driver {
	case "memory", "":
		return NewInstrumented[V](NewInMemoryCache[V](opts.Workers)), nil
	case "redis":
		client, err := DialRedis(opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, err
		}

		return NewInstrumented[V](NewRedisCache[V](client, opts.Prefix, opts.Workers, logger)), nil
	default:
		return nil, fmt.Errorf("cache: unknown driver %q", opts.Driver)
	}
}
