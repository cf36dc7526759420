// Package template selects and runs the page skin of a site. A template is a
// fixed set of page components and metadata generators; which one is active
// is decided per request from the CMS theme options.
package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/octobees/sitegen/internal/entity"
)

// ErrMissingComponent is returned when a template does not provide the
// component or metadata generator a page needs.
var ErrMissingComponent = errors.New("template: missing component")

// PageKind names a page every template must be able to render.
type PageKind string

const (
	PageHome                PageKind = "home"
	PageAbout               PageKind = "about"
	PageContact             PageKind = "contact"
	PageServices            PageKind = "services"
	PageService             PageKind = "service"
	PageBlog                PageKind = "blog"
	PagePost                PageKind = "post"
	PageLocation            PageKind = "location"
	PageCity                PageKind = "city"
	PageNeighborhood        PageKind = "neighborhood"
	PageCityService         PageKind = "city_service"
	PageNeighborhoodService PageKind = "neighborhood_service"
)

// RequiredPages lists the page kinds the router can ask for.
var RequiredPages = []PageKind{
	PageHome, PageAbout, PageContact, PageServices, PageService, PageBlog, PagePost,
	PageLocation, PageCity, PageNeighborhood, PageCityService, PageNeighborhoodService,
}

// PageData is everything resolved for a request before it reaches a template.
type PageData struct {
	Kind            PageKind
	Path            string
	SiteURL         string
	Theme           *entity.ThemeOptions
	Contact         *entity.ContactContent
	MainLocation    *entity.ContactLocation
	ContactLocation *entity.ContactLocation
	SEOLocation     *entity.SEOLocation
	Services        []entity.ServiceItem
	Service         *entity.ServiceItem
	About           *entity.AboutContent
	Posts           *entity.PostPage
	Post            *entity.Post
}

// Section is one block of a rendered page.
type Section struct {
	Type  string         `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

// View is the output of a page component.
type View struct {
	Template string    `json:"template"`
	Layout   string    `json:"layout"`
	Sections []Section `json:"sections"`
}

// Metadata is the SEO head of a page.
type Metadata struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Canonical   string            `json:"canonical,omitempty"`
	Robots      string            `json:"robots,omitempty"`
	OpenGraph   map[string]string `json:"open_graph,omitempty"`
}

// Component renders a page.
type Component func(ctx context.Context, data PageData) (*View, error)

// MetadataGenerator builds the head of a page.
type MetadataGenerator func(data PageData) (Metadata, error)

// Template is a loaded page skin.
type Template struct {
	ID         string
	Name       string
	SchemaType string
	pages      map[PageKind]Component
	metadata   map[PageKind]MetadataGenerator
}

// Render runs the component registered for data.Kind.
func (t *Template) Render(ctx context.Context, data PageData) (*View, error) {
	component, ok := t.pages[data.Kind]
	if !ok || component == nil {
		return nil, fmt.Errorf("%w: %s has no %s page", ErrMissingComponent, t.ID, data.Kind)
	}
	return component(ctx, data)
}

// Metadata runs the metadata generator registered for data.Kind.
func (t *Template) Metadata(data PageData) (Metadata, error) {
	gen, ok := t.metadata[data.Kind]
	if !ok || gen == nil {
		return Metadata{}, fmt.Errorf("%w: %s has no %s metadata", ErrMissingComponent, t.ID, data.Kind)
	}
	return gen(data)
}

// Missing lists the required pages the template cannot fully serve.
func (t *Template) Missing() []PageKind {
	var out []PageKind
	for _, kind := range RequiredPages {
		if t.pages[kind] == nil || t.metadata[kind] == nil {
			out = append(out, kind)
		}
	}
	return out
}
