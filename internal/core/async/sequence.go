package async

import (
	"iter"
	"sync"
)

// Sequence is a finite, non-restartable stream of values. The snapshot is
// taken when the sequence is first consumed, so later changes to the source
// are not reflected. A new snapshot requires a new Sequence.
type Sequence[T any] struct {
	mu         sync.Mutex
	snapshot   func() ([]T, error)
	subscribed bool
	items      []T
	pos        int
	err        error
}

// NewSequence returns a sequence that calls snapshot on first consumption.
func NewSequence[T any](snapshot func() ([]T, error)) *Sequence[T] {
	return &Sequence[T]{snapshot: snapshot}
}

// SequenceOf returns a sequence over fixed items.
func SequenceOf[T any](items ...T) *Sequence[T] {
	return NewSequence(func() ([]T, error) {
		return items, nil
	})
}

// FailedSequence returns a sequence that yields nothing and reports err.
func FailedSequence[T any](err error) *Sequence[T] {
	return NewSequence(func() ([]T, error) {
		return nil, err
	})
}

func (s *Sequence[T]) subscribe() {
	if s.subscribed {
		return
	}

	s.subscribed = true
	if s.snapshot != nil {
		s.items, s.err = s.snapshot()
		s.snapshot = nil
	}
}

// Next returns the next value, or false once the sequence is exhausted.
func (s *Sequence[T]) Next() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribe()

	var zero T
	if s.pos >= len(s.items) {
		s.items = nil

		return zero, false
	}

	v := s.items[s.pos]
	s.pos++

	return v, true
}

// Err returns the error raised while taking the snapshot, if any.
func (s *Sequence[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// All ranges over the remaining values.
func (s *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := s.Next()
			if !ok {
				return
			}

			if !yield(v) {
				return
			}
		}
	}
}

// Collect drains the sequence into a slice.
func (s *Sequence[T]) Collect() ([]T, error) {
	var out []T
	for v := range s.All() {
		out = append(out, v)
	}

	return out, s.Err()
}
