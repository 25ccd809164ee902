package prompt

import (
	"fmt"
	"sync"
)

// Registry holds all loaded prompt templates.
type Registry struct {
	templates map[string]*Template
	mu        sync.RWMutex
}

var globalRegistry *Registry
var once sync.Once

// Get returns the global registry singleton, seeded with the built-in
// report template.
func Get() *Registry {
	once.Do(func() {
		globalRegistry = &Registry{
			templates: make(map[string]*Template),
		}
		globalRegistry.Register(defaultReportTemplate())
	})
	return globalRegistry
}

// Register adds a template to the registry, replacing any previous one with
// the same ID.
func (r *Registry) Register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("template ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[t.ID] = t
	return nil
}

// GetTemplate retrieves a template by ID.
func (r *Registry) GetTemplate(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.templates[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("template not found: %s", id)
}

// Count returns the number of registered templates.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
