package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/pdfnotes/internal/domain"
)

// Registry implements the CompleterRegistry interface.
type Registry struct {
	mu         sync.RWMutex
	completers map[string]domain.Completer
}

// NewRegistry creates a new completer registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:         sync.RWMutex{},
		completers: make(map[string]domain.Completer),
	}
}

// Register adds a completer to the registry.
func (r *Registry) Register(_ context.Context, completer domain.Completer) error {
	if completer == nil {
		return errors.New("completer cannot be nil")
	}

	name := completer.Name()
	if name == "" {
		return errors.New("completer name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.completers[name]; exists {
		return fmt.Errorf("completer %s already registered", name)
	}

	r.completers[name] = completer

	return nil
}

// Get retrieves a completer by name.
func (r *Registry) Get(_ context.Context, name string) (domain.Completer, error) {
	if name == "" {
		return nil, errors.New("completer name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	completer, exists := r.completers[name]
	if !exists {
		return nil, fmt.Errorf("completer %s not found", name)
	}

	return completer, nil
}

// List returns the sorted names of all registered completers.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.completers))
	for name := range r.completers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
