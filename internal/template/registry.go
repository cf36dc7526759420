package template

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// ErrNoTemplate means not even the default template could be loaded; no
// page can render.
var ErrNoTemplate = errors.New("template: default template unavailable")

// Factory constructs a template.
type Factory func() (*Template, error)

// Registry maps template ids to factories. Unknown ids and failing
// factories fall back to the default entry. Each factory runs once; its
// outcome is kept until the id is registered again.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	built     map[string]buildResult
	defaultID string
}

type buildResult struct {
	tpl *Template
	err error
}

// NewRegistry creates an empty registry with the given default id.
func NewRegistry(defaultID string) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		built:     make(map[string]buildResult),
		defaultID: normalizeID(defaultID),
	}
}

// Register adds or replaces a factory.
func (r *Registry) Register(id string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id = normalizeID(id)
	r.factories[id] = factory
	delete(r.built, id)
}

// DefaultID is the id used whenever the requested one cannot be served.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// IDs lists registered template ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load returns the template for id, or the default template when id is
// unknown or its factory fails.
func (r *Registry) Load(id string) (*Template, error) {
	id = normalizeID(id)
	if id != r.defaultID {
		t, err := r.build(id)
		if err == nil {
			return t, nil
		}
		log.Printf("template: load id=%s failed, falling back to %s: %v", id, r.defaultID, err)
	}

	t, err := r.build(r.defaultID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTemplate, err)
	}
	return t, nil
}

// Check builds every registered template and reports the pages each cannot
// serve. A default template that fails to build or lacks a page is an
// error; other templates are only logged, since requests fall back or fail
// per page.
func (r *Registry) Check() error {
	def, err := r.build(r.defaultID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoTemplate, err)
	}
	if missing := def.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %v", ErrMissingComponent, r.defaultID, missing)
	}
	for _, id := range r.IDs() {
		if id == r.defaultID {
			continue
		}
		t, err := r.build(id)
		if err != nil {
			log.Printf("template: check id=%s failed: %v", id, err)
			continue
		}
		if missing := t.Missing(); len(missing) > 0 {
			log.Printf("template: check id=%s missing=%v", id, missing)
		}
	}
	return nil
}

func (r *Registry) build(id string) (*Template, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	cached, done := r.built[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %q is not registered", id)
	}
	if done {
		return cached.tpl, cached.err
	}

	t, err := factory()
	if err == nil && t == nil {
		err = fmt.Errorf("template %q factory returned nil", id)
	}
	if err != nil {
		t = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, done := r.built[id]; done {
		return cached.tpl, cached.err
	}
	r.built[id] = buildResult{tpl: t, err: err}
	return t, err
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
