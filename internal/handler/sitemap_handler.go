package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/service"
)

// SitemapHandler serves sitemap.xml.
type SitemapHandler struct {
	service *service.SitemapService
}

// NewSitemapHandler creates a new handler instance.
func NewSitemapHandler(service *service.SitemapService) *SitemapHandler {
	return &SitemapHandler{service: service}
}

// Sitemap handles GET /sitemap.xml.
func (h *SitemapHandler) Sitemap(c echo.Context) error {
	set, err := h.service.Build(c.Request().Context())
	if err != nil {
		log.Printf("sitemap_failed error=%v", err)
		return Error(c, http.StatusBadGateway, "content unavailable")
	}
	body, err := set.Marshal()
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to encode sitemap")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, body)
}
