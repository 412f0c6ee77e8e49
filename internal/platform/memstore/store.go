// Package memstore provides the in-memory record tables behind the console's
// mock data.
package memstore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("memstore: record not found")

// Store is a mutex-guarded, insertion-ordered table of records keyed by an
// int64 ID assigned on insert.
type Store[T any] struct {
	mu     sync.RWMutex
	rows   []T
	nextID int64
	idOf   func(T) int64
	assign func(*T, int64)
}

// New builds an empty store. idOf reads a record's ID and assign writes it.
func New[T any](idOf func(T) int64, assign func(*T, int64)) *Store[T] {
	return &Store[T]{idOf: idOf, assign: assign}
}

// Seed appends rows, assigning fresh IDs.
func (s *Store[T]) Seed(rows ...T) {
	for _, row := range rows {
		s.Add(row)
	}
}

// Add appends row with the next ID and returns the stored copy.
func (s *Store[T]) Add(row T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.assign(&row, s.nextID)
	s.rows = append(s.rows, row)
	return row
}

// List returns a snapshot of all rows in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the row count.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Get returns the row with id.
func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows {
		if s.idOf(row) == id {
			return row, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Update replaces the row with id by applying fn to a copy of it.
func (s *Store[T]) Update(id int64, fn func(*T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.idOf(s.rows[i]) == id {
			next := s.rows[i]
			fn(&next)
			s.assign(&next, id)
			s.rows[i] = next
			return next, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// UpdateIf is Update with a veto: when fn returns an error the row is left
// untouched and the error is returned together with the current row.
func (s *Store[T]) UpdateIf(id int64, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.idOf(s.rows[i]) == id {
			next := s.rows[i]
			if err := fn(&next); err != nil {
				return s.rows[i], err
			}
			s.assign(&next, id)
			s.rows[i] = next
			return next, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Delete removes the row with id.
func (s *Store[T]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if s.idOf(row) == id {
			s.rows = append(s.rows[:i:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
