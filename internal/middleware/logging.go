package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes a concise structured line for each HTTP request. Handler
// errors are rendered here so the logged status is the one the client saw.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			latency := time.Since(start)

			req := c.Request()
			rid := RequestIDFromContext(c)
			if err != nil {
				log.Printf("request_id=%s method=%s path=%s status=%d latency=%s ip=%s error=%q",
					rid, req.Method, req.URL.Path, c.Response().Status, latency, c.RealIP(), err.Error())
				return err
			}
			log.Printf("request_id=%s method=%s path=%s status=%d latency=%s ip=%s",
				rid, req.Method, req.URL.Path, c.Response().Status, latency, c.RealIP())
			return nil
		}
	}
}
