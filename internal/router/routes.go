package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/sitegen/internal/auth"
	"github.com/octobees/sitegen/internal/config"
	"github.com/octobees/sitegen/internal/handler"
	middlewarepkg "github.com/octobees/sitegen/internal/middleware"
)

// apiBodyLimit caps form and webhook payloads.
const apiBodyLimit = "64K"

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Pages      *handler.PagesHandler
	Leads      *handler.LeadsHandler
	Revalidate *handler.RevalidateHandler
	Sitemap    *handler.SitemapHandler
}

// Register wires all HTTP routes of the site.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/sitemap.xml", handlers.Sitemap.Sitemap)

	api := e.Group("/api", echoMiddleware.BodyLimit(apiBodyLimit))
	api.POST("/leads", handlers.Leads.Submit, middlewarepkg.RateLimiter(cfg.RateLimitLeads))
	api.POST("/revalidate", handlers.Revalidate.Revalidate, middlewarepkg.RevalidateSecret(cfg.RevalidateSecret))

	admin := e.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(auth.RoleAdmin))
	admin.GET("/leads", handlers.Leads.List)

	pages := e.Group("", middlewarepkg.TemplateScope())
	pages.GET("/", handlers.Pages.Home)
	pages.GET("/about", handlers.Pages.About)
	pages.GET("/contact", handlers.Pages.Contact)
	pages.GET("/services", handlers.Pages.Services)
	pages.GET("/services/:service", handlers.Pages.Service)
	pages.GET("/blog", handlers.Pages.Blog)
	pages.GET("/blog/:slug", handlers.Pages.Post)
	pages.GET("/locations/*", handlers.Pages.Location)
	pages.GET("/:state/:city", handlers.Pages.City)
	pages.GET("/:state/:city/:neighborhood", handlers.Pages.Neighborhood)
	pages.GET("/:state/:city/services/:service", handlers.Pages.CityService)
	pages.GET("/:state/:city/:neighborhood/services/:service", handlers.Pages.NeighborhoodService)
}
