package dto

import (
	"github.com/octobees/sitegen/internal/schema"
	"github.com/octobees/sitegen/internal/template"
)

// PageResponse is the payload a renderer needs to draw one page.
type PageResponse struct {
	Template string             `json:"template"`
	Kind     template.PageKind  `json:"kind"`
	Path     string             `json:"path"`
	Layout   string             `json:"layout"`
	Sections []template.Section `json:"sections"`
	Metadata template.Metadata  `json:"metadata"`
	Schema   []schema.Document  `json:"schema,omitempty"`
}
