package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/ports"
)

// Entry is a handler bound to the module path it operates on.
type Entry struct {
	Path    string
	Op      string
	Handler ports.Handler
}

// Registry maps routed action types ("[path] op") to handlers.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register records a handler under domain.ActionType(path, op).
// If a handler with the same type exists, it is overwritten.
func (r *Registry) Register(path, op string, fn ports.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[domain.ActionType(path, op)] = Entry{Path: path, Op: op, Handler: fn}
}

// Lookup returns the entry registered under actionType.
func (r *Registry) Lookup(actionType string) (Entry, error) {
	r.mu.RLock()
	entry, ok := r.entries[actionType]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownAction, actionType)
	}
	return entry, nil
}

// Types returns every registered action type in ascending order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
