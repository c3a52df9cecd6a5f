// Package provider implements a lazily constructed, memoized instance holder
// with a replacement slot for tests.
package provider

import (
	"fmt"
	"sync"
)

// Provider constructs at most one T per handle lifetime. An installed mock
// always takes precedence over the memoized instance.
type Provider[H, T any] struct {
	create func(H) (T, error)

	mu       sync.Mutex
	instance *T
	mock     *T
	created  int
}

// New creates a provider that builds instances with create.
func New[H, T any](create func(H) (T, error)) *Provider[H, T] {
	return &Provider[H, T]{create: create}
}

// Get returns the mock if installed, otherwise the memoized instance,
// constructing it on first use.
func (p *Provider[H, T]) Get(handle H) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mock != nil {
		return *p.mock, nil
	}

	if p.instance != nil {
		return *p.instance, nil
	}

	instance, err := p.create(handle)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("failed to create instance: %w", err)
	}

	p.instance = &instance
	p.created++

	return instance, nil
}

// MustGet is like Get but panics when construction fails.
func (p *Provider[H, T]) MustGet(handle H) T {
	instance, err := p.Get(handle)
	if err != nil {
		panic(err)
	}

	return instance
}

// SetMock installs a replacement returned by every subsequent Get.
func (p *Provider[H, T]) SetMock(mock T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mock = &mock
}

// ClearMock removes the installed replacement.
func (p *Provider[H, T]) ClearMock() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mock = nil
}

// Reset drops the memoized instance so the next Get constructs a new one.
func (p *Provider[H, T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.instance = nil
}

// Created returns how many instances have been constructed.
func (p *Provider[H, T]) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.created
}
