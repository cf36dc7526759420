package template

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed manifests/*.yaml
var manifestFS embed.FS

// Manifest declares a template's pages in YAML.
type Manifest struct {
	ID             string                    `yaml:"id"`
	Name           string                    `yaml:"name"`
	SchemaType     string                    `yaml:"schema_type"`
	ContactFormID  string                    `yaml:"contact_form_id"`
	TitleSeparator string                    `yaml:"title_separator"`
	Pages          map[PageKind]PageManifest `yaml:"pages"`
}

// PageManifest lists the sections and head patterns of one page.
type PageManifest struct {
	Layout      string   `yaml:"layout"`
	Sections    []string `yaml:"sections"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Robots      string   `yaml:"robots"`
}

// ParseManifest decodes and sanity-checks a manifest.
func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		return nil, fmt.Errorf("parse manifest: id is required")
	}
	if m.SchemaType == "" {
		m.SchemaType = "LocalBusiness"
	}
	if m.TitleSeparator == "" {
		m.TitleSeparator = " | "
	}
	return &m, nil
}

func loadManifest(name string) (*Manifest, error) {
	raw, err := manifestFS.ReadFile("manifests/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", name, err)
	}
	return ParseManifest(raw)
}

// Build turns a manifest into a Template. Every section named by the
// manifest must have a builder; pages without a title pattern get no
// metadata generator.
func Build(m *Manifest, builders map[string]SectionBuilder) (*Template, error) {
	t := &Template{
		ID:         m.ID,
		Name:       m.Name,
		SchemaType: m.SchemaType,
		pages:      make(map[PageKind]Component, len(m.Pages)),
		metadata:   make(map[PageKind]MetadataGenerator, len(m.Pages)),
	}

	for kind, page := range m.Pages {
		steps := make([]SectionBuilder, 0, len(page.Sections))
		for _, name := range page.Sections {
			b, ok := builders[name]
			if !ok {
				return nil, fmt.Errorf("template %s: page %s uses unknown section %q", m.ID, kind, name)
			}
			steps = append(steps, b)
		}
		t.pages[kind] = newComponent(m, page, steps)
		if page.Title != "" {
			t.metadata[kind] = newMetadataGenerator(m, page)
		}
	}
	return t, nil
}

func newComponent(m *Manifest, page PageManifest, steps []SectionBuilder) Component {
	layout := page.Layout
	if layout == "" {
		layout = "default"
	}
	return func(ctx context.Context, data PageData) (*View, error) {
		view := &View{Template: m.ID, Layout: layout, Sections: make([]Section, 0, len(steps))}
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			section, ok := step(m, data)
			if !ok {
				continue
			}
			view.Sections = append(view.Sections, section)
		}
		return view, nil
	}
}

func newMetadataGenerator(m *Manifest, page PageManifest) MetadataGenerator {
	return func(data PageData) (Metadata, error) {
		r := placeholders(data)
		md := Metadata{
			Title:       collapse(r.Replace(page.Title), m.TitleSeparator),
			Description: truncate(collapse(r.Replace(page.Description), ""), 160),
			Canonical:   data.SiteURL + data.Path,
			Robots:      page.Robots,
		}
		md.OpenGraph = map[string]string{
			"og:title":       md.Title,
			"og:description": md.Description,
			"og:url":         md.Canonical,
			"og:type":        "website",
		}
		if data.Kind == PagePost {
			md.OpenGraph["og:type"] = "article"
		}
		if img := pageImage(data); img != "" {
			md.OpenGraph["og:image"] = img
		}
		if data.Theme != nil && data.Theme.SiteName != "" {
			md.OpenGraph["og:site_name"] = data.Theme.SiteName
		}
		return md, nil
	}
}

// collapse removes separators left dangling by empty placeholders.
func collapse(s, sep string) string {
	s = strings.Join(strings.Fields(s), " ")
	if sep = strings.TrimSpace(sep); sep != "" {
		s = strings.TrimSpace(strings.Trim(s, sep+" "))
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max-1])
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
