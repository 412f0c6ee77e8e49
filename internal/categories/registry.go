// Package categories provides the incident category registry shared by the
// incident setup screens. The registry is add-only: names can be added once
// (compared case-insensitively) and are never removed.
package categories

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// ErrNameRequired is returned when a blank name is added.
var ErrNameRequired = errors.New("category name is required")

// Registry is the shared add-only category store.
type Registry interface {
	// Add stores name and reports false when it already exists.
	Add(ctx context.Context, name string) (bool, error)
	// List returns the names in insertion order.
	List(ctx context.Context) ([]string, error)
	// Contains reports whether name exists, ignoring case.
	Contains(ctx context.Context, name string) (bool, error)
}

// normalize trims name and returns it with its case-folded lookup key.
func normalize(name string) (string, string, error) {
	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return "", "", ErrNameRequired
	}
	return trimmed, cases.Fold().String(trimmed), nil
}

// MemoryRegistry keeps categories in process memory.
type MemoryRegistry struct {
	mu    sync.RWMutex
	names []string
	keys  map[string]struct{}
}

// NewMemoryRegistry builds a registry preloaded with seed. Duplicate and
// blank seed entries are skipped.
func NewMemoryRegistry(seed ...string) *MemoryRegistry {
	r := &MemoryRegistry{keys: make(map[string]struct{})}
	for _, name := range seed {
		_, _ = r.Add(context.Background(), name)
	}
	return r
}

// Add implements Registry.
func (r *MemoryRegistry) Add(_ context.Context, name string) (bool, error) {
	display, key, err := normalize(name)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.keys[key]; exists {
		return false, nil
	}
	r.keys[key] = struct{}{}
	r.names = append(r.names, display)
	return true, nil
}

// List implements Registry.
func (r *MemoryRegistry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out, nil
}

// Contains implements Registry.
func (r *MemoryRegistry) Contains(_ context.Context, name string) (bool, error) {
	_, key, err := normalize(name)
	if err != nil {
		return false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok, nil
}
