package template

import (
	"context"
	"log"
	"sync"

	"github.com/octobees/sitegen/internal/entity"
)

// ThemeSource reads the site-wide theme options from remote configuration.
type ThemeSource interface {
	ThemeOptions(ctx context.Context) (*entity.ThemeOptions, error)
}

// Resolver picks the template for a request.
type Resolver struct {
	source   ThemeSource
	registry *Registry
}

// NewResolver wires a resolver.
func NewResolver(source ThemeSource, registry *Registry) *Resolver {
	return &Resolver{source: source, registry: registry}
}

type requestScope struct {
	once  sync.Once
	theme *entity.ThemeOptions
	err   error
}

type scopeKey struct{}

// WithRequestScope returns a context in which the theme options are fetched
// at most once. Install it per request, never on a long-lived context, so a
// theme change is picked up by the next request.
func WithRequestScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, &requestScope{})
}

// ScopedThemeOptions returns the theme options for the request in ctx. Inside
// a request scope the first fetch, successful or not, is shared by every
// later caller; outside one each call goes to source.
func ScopedThemeOptions(ctx context.Context, source ThemeSource) (*entity.ThemeOptions, error) {
	scope, ok := ctx.Value(scopeKey{}).(*requestScope)
	if !ok {
		return source.ThemeOptions(ctx)
	}
	scope.once.Do(func() {
		scope.theme, scope.err = source.ThemeOptions(ctx)
	})
	return scope.theme, scope.err
}

// ActiveTemplateID returns the configured template id, or the registry
// default when the theme options cannot be read or name nothing.
func (r *Resolver) ActiveTemplateID(ctx context.Context) string {
	if r.source == nil {
		return r.registry.DefaultID()
	}
	theme, err := ScopedThemeOptions(ctx, r.source)
	if err != nil {
		log.Printf("template: active template lookup failed, using %s: %v", r.registry.DefaultID(), err)
		return r.registry.DefaultID()
	}
	var id string
	if theme != nil {
		id = normalizeID(theme.ActiveTemplate)
	}
	if id == "" {
		return r.registry.DefaultID()
	}
	return id
}

// Resolve loads the active template for the request.
func (r *Resolver) Resolve(ctx context.Context) (*Template, error) {
	return r.registry.Load(r.ActiveTemplateID(ctx))
}
