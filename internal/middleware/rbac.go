package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole lets the request through when the token role is one of roles.
// Denials are logged with the token subject so inbox access can be audited.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := allowed[role]; ok && role != "" {
				return next(c)
			}
			subject, _ := c.Get(ContextKeySubject).(string)
			log.Printf("access_denied request_id=%s subject=%s role=%q path=%s",
				RequestIDFromContext(c), subject, role, c.Request().URL.Path)
			if role == "" {
				return deny(c, http.StatusForbidden, "token carries no role")
			}
			return deny(c, http.StatusForbidden, "role "+role+" cannot access this resource")
		}
	}
}
