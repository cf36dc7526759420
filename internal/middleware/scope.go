package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/template"
)

// TemplateScope gives each request its own active-template memo, so the
// theme options are read at most once per request.
func TemplateScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(template.WithRequestScope(req.Context())))
			return next(c)
		}
	}
}
