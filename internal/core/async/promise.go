// Package async provides the result types returned by repository operations:
// single-assignment promises, completion signals and snapshot sequences.
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrAlreadyCompleted is returned when a promise is completed a second time.
	ErrAlreadyCompleted = errors.New("async: promise already completed")

	// ErrStoreFailure marks faults reported by the underlying store.
	ErrStoreFailure = errors.New("store failure")

	errNilRejection = errors.New("async: rejected without a cause")
)

// StoreFailure wraps a store fault so that callers can match it with errors.Is.
func StoreFailure(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, cause)
}

// Promise is a single-assignment result. It settles exactly once to a value,
// to empty, or to an error.
type Promise[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	value   T
	present bool
	err     error
}

// NewPromise returns a pending promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolved returns a promise settled with v.
func Resolved[T any](v T) *Promise[T] {
	p := NewPromise[T]()
	_ = p.Resolve(v)

	return p
}

// Empty returns a promise settled without a value.
func Empty[T any]() *Promise[T] {
	p := NewPromise[T]()
	_ = p.ResolveEmpty()

	return p
}

// Failed returns a promise settled with err.
func Failed[T any](err error) *Promise[T] {
	p := NewPromise[T]()
	_ = p.Reject(err)

	return p
}

// Resolve settles the promise with a value.
func (p *Promise[T]) Resolve(v T) error {
	return p.settle(v, true, nil)
}

// ResolveEmpty settles the promise successfully without a value.
func (p *Promise[T]) ResolveEmpty() error {
	var zero T

	return p.settle(zero, false, nil)
}

// Reject settles the promise with an error.
func (p *Promise[T]) Reject(err error) error {
	if err == nil {
		err = errNilRejection
	}

	var zero T

	return p.settle(zero, false, err)
}

func (p *Promise[T]) settle(v T, present bool, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		return ErrAlreadyCompleted
	default:
	}

	p.value = v
	p.present = present
	p.err = err
	close(p.done)

	return nil
}

// Done returns a channel closed once the promise is settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise settles or ctx is done. The boolean reports
// whether a value is present. An abandoned await returns ctx.Err(); the
// promise may still settle later.
func (p *Promise[T]) Await(ctx context.Context) (T, bool, error) {
	select {
	case <-p.done:
		return p.value, p.present, p.err
	default:
	}

	select {
	case <-p.done:
		return p.value, p.present, p.err
	case <-ctx.Done():
		var zero T

		return zero, false, ctx.Err()
	}
}

// Completion is a settle-once signal that carries no value.
type Completion struct {
	p *Promise[struct{}]
}

// NewCompletion returns a pending completion.
func NewCompletion() *Completion {
	return &Completion{p: NewPromise[struct{}]()}
}

// Completed returns a completion that already succeeded.
func Completed() *Completion {
	c := NewCompletion()
	_ = c.Complete()

	return c
}

// FailedCompletion returns a completion that already failed with err.
func FailedCompletion(err error) *Completion {
	c := NewCompletion()
	_ = c.Fail(err)

	return c
}

// Complete signals success.
func (c *Completion) Complete() error {
	return c.p.ResolveEmpty()
}

// Fail signals failure.
func (c *Completion) Fail(err error) error {
	return c.p.Reject(err)
}

// Done returns a channel closed once the completion is settled.
func (c *Completion) Done() <-chan struct{} {
	return c.p.Done()
}

// Wait blocks until the completion settles or ctx is done.
func (c *Completion) Wait(ctx context.Context) error {
	_, _, err := c.p.Await(ctx)

	return err
}
