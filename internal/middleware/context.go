package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store request metadata.
const (
	ContextKeySubject   = "subject"
	ContextKeyRole      = "role"
	ContextKeyRequestID = "request_id"
)

// deny writes the shared error envelope and stops the chain.
func deny(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"status": "error", "message": message})
}
