package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/dto"
	middlewarepkg "github.com/octobees/sitegen/internal/middleware"
	"github.com/octobees/sitegen/internal/schema"
	"github.com/octobees/sitegen/internal/service"
	"github.com/octobees/sitegen/internal/template"
)

// PagesHandler resolves site URLs into renderable page payloads.
type PagesHandler struct {
	pages     *service.PageService
	templates *template.Resolver
}

// NewPagesHandler creates a new handler instance.
func NewPagesHandler(pages *service.PageService, templates *template.Resolver) *PagesHandler {
	return &PagesHandler{pages: pages, templates: templates}
}

type pageLoader func(ctx context.Context) (template.PageData, error)

// Home handles GET /.
func (h *PagesHandler) Home(c echo.Context) error {
	return h.render(c, h.pages.Home)
}

// About handles GET /about.
func (h *PagesHandler) About(c echo.Context) error {
	return h.render(c, h.pages.About)
}

// Contact handles GET /contact.
func (h *PagesHandler) Contact(c echo.Context) error {
	return h.render(c, h.pages.Contact)
}

// Services handles GET /services.
func (h *PagesHandler) Services(c echo.Context) error {
	return h.render(c, h.pages.Services)
}

// Service handles GET /services/:service.
func (h *PagesHandler) Service(c echo.Context) error {
	slug := c.Param("service")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.Service(ctx, slug)
	})
}

// Blog handles GET /blog?page=N.
func (h *PagesHandler) Blog(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.Blog(ctx, page)
	})
}

// Post handles GET /blog/:slug.
func (h *PagesHandler) Post(c echo.Context) error {
	slug := c.Param("slug")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.Post(ctx, slug)
	})
}

// Location handles GET /locations/* where the wildcard is a city slug.
func (h *PagesHandler) Location(c echo.Context) error {
	slug := c.Param("*")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.Location(ctx, slug)
	})
}

// City handles GET /:state/:city.
func (h *PagesHandler) City(c echo.Context) error {
	state, city := c.Param("state"), c.Param("city")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.City(ctx, state, city)
	})
}

// Neighborhood handles GET /:state/:city/:neighborhood.
func (h *PagesHandler) Neighborhood(c echo.Context) error {
	state, city, neighborhood := c.Param("state"), c.Param("city"), c.Param("neighborhood")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.Neighborhood(ctx, state, city, neighborhood)
	})
}

// CityService handles GET /:state/:city/services/:service.
func (h *PagesHandler) CityService(c echo.Context) error {
	state, city, svc := c.Param("state"), c.Param("city"), c.Param("service")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.CityService(ctx, state, city, svc)
	})
}

// NeighborhoodService handles GET /:state/:city/:neighborhood/services/:service.
func (h *PagesHandler) NeighborhoodService(c echo.Context) error {
	state, city := c.Param("state"), c.Param("city")
	neighborhood, svc := c.Param("neighborhood"), c.Param("service")
	return h.render(c, func(ctx context.Context) (template.PageData, error) {
		return h.pages.NeighborhoodService(ctx, state, city, neighborhood, svc)
	})
}

func (h *PagesHandler) render(c echo.Context, load pageLoader) error {
	ctx := c.Request().Context()

	tpl, err := h.templates.Resolve(ctx)
	if err != nil {
		return pageError(c, err)
	}

	data, err := load(ctx)
	if err != nil {
		return pageError(c, err)
	}

	view, err := tpl.Render(ctx, data)
	if err != nil {
		return pageError(c, err)
	}
	meta, err := tpl.Metadata(data)
	if err != nil {
		return pageError(c, err)
	}

	return Success(c, http.StatusOK, "page rendered", dto.PageResponse{
		Template: view.Template,
		Kind:     data.Kind,
		Path:     data.Path,
		Layout:   view.Layout,
		Sections: view.Sections,
		Metadata: meta,
		Schema:   schema.ForPage(data, tpl.SchemaType),
	})
}

func pageError(c echo.Context, err error) error {
	rid := middlewarepkg.RequestIDFromContext(c)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return Error(c, http.StatusNotFound, "page not found")
	case errors.Is(err, template.ErrMissingComponent), errors.Is(err, template.ErrNoTemplate):
		log.Printf("page_render_failed request_id=%s path=%s error=%v", rid, c.Request().URL.Path, err)
		return Error(c, http.StatusInternalServerError, "failed to render page")
	case errors.Is(err, context.Canceled):
		return Error(c, http.StatusServiceUnavailable, "request cancelled")
	default:
		log.Printf("page_content_failed request_id=%s path=%s error=%v", rid, c.Request().URL.Path, err)
		return Error(c, http.StatusBadGateway, "content unavailable")
	}
}

func parseIntDefault(input string, fallback int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
