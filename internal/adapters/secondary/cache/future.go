package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type future[V any] struct {
	done chan struct{}

	mu        sync.Mutex
	listeners []func(Future[V])
	value     V
	found     bool
	err       error
}

func newFuture[V any]() *future[V] {
	return &future[V]{done: make(chan struct{})}
}

// CompletedFuture returns a future that has already completed with the given result.
func CompletedFuture[V any](v V, found bool, err error) Future[V] {
	f := newFuture[V]()
	f.complete(v, found, err)

	return f
}

func failedFuture[V any](err error) Future[V] {
	var zero V

	return CompletedFuture(zero, false, err)
}

func (f *future[V]) complete(v V, found bool, err error) {
	f.mu.Lock()
	f.value = v
	f.found = found
	f.err = err
	close(f.done)
	listeners := f.listeners
	f.listeners = nil
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(f)
	}
}

func (f *future[V]) Listen(fn func(Future[V])) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		fn(f)

		return
	default:
	}

	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

func (f *future[V]) Get() (V, bool, error) {
	<-f.done

	return f.value, f.found, f.err
}

func (f *future[V]) Done() <-chan struct{} {
	return f.done
}

// workers bounds the number of concurrently running asynchronous operations.
type workers struct {
	sem *semaphore.Weighted

	mu     sync.RWMutex
	wg     sync.WaitGroup
	closed bool
}

func newWorkers(n int) *workers {
	if n < 1 {
		n = 1
	}

	return &workers{sem: semaphore.NewWeighted(int64(n))}
}

func submit[V any](w *workers, fn func() (V, bool, error)) Future[V] {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return failedFuture[V](ErrClosed)
	}

	f := newFuture[V]()
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		if err := w.sem.Acquire(context.Background(), 1); err != nil {
			var zero V
			f.complete(zero, false, err)

			return
		}
		defer w.sem.Release(1)

		f.complete(fn())
	}()

	return f
}

func (w *workers) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.wg.Wait()
}
