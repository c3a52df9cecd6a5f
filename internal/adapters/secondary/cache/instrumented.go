package cache

import (
	"time"

	"github.com/denchenko/usergrid/internal/metrics"
)

// Instrumented records metrics for every operation of the wrapped store.
type Instrumented[V any] struct {
	next Cache[V]
}

// NewInstrumented wraps next with metrics.
func NewInstrumented[V any](next Cache[V]) *Instrumented[V] {
	return &Instrumented[V]{next: next}
}

func outcome(found bool, err error) string {
	switch {
	case err != nil:
		return metrics.OutcomeError
	case !found:
		return metrics.OutcomeMiss
	default:
		return metrics.OutcomeOK
	}
}

func observeErr(op string, started time.Time, err error) error {
	metrics.Observe(op, outcome(true, err), started)

	return err
}

func (c *Instrumented[V]) Get(key string) (V, bool, error) {
	started := time.Now()
	v, found, err := c.next.Get(key)
	metrics.Observe("get", outcome(found, err), started)

	return v, found, err
}

func (c *Instrumented[V]) Put(key string, value V) error {
	return observeErr("put", time.Now(), c.next.Put(key, value))
}

func (c *Instrumented[V]) Remove(key string) error {
	return observeErr("remove", time.Now(), c.next.Remove(key))
}

func (c *Instrumented[V]) Clear() error {
	return observeErr("clear", time.Now(), c.next.Clear())
}

func (c *Instrumented[V]) Scan() ([]Entry[V], error) {
	started := time.Now()
	entries, err := c.next.Scan()
	metrics.Observe("scan", outcome(true, err), started)

	return entries, err
}

func (c *Instrumented[V]) GetAsync(key string) Future[V] {
	started := time.Now()
	f := c.next.GetAsync(key)
	f.Listen(func(done Future[V]) {
		_, found, err := done.Get()
		metrics.Observe("get_async", outcome(found, err), started)
	})

	return f
}

func (c *Instrumented[V]) PutAsync(key string, value V) Future[V] {
	started := time.Now()
	f := c.next.PutAsync(key, value)
	f.Listen(func(done Future[V]) {
		_, _, err := done.Get()
		metrics.Observe("put_async", outcome(true, err), started)
	})

	return f
}

func (c *Instrumented[V]) RemoveAsync(key string) Future[bool] {
	started := time.Now()
	f := c.next.RemoveAsync(key)
	f.Listen(func(done Future[bool]) {
		_, _, err := done.Get()
		metrics.Observe("remove_async", outcome(true, err), started)
	})

	return f
}

func (c *Instrumented[V]) Close() error {
	return c.next.Close()
}
