package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/sitegen/internal/auth"
)

const bearerChallenge = `Bearer realm="sitegen-admin"`

// JWT validates admin bearer tokens minted by cmd/admintoken and stores the
// subject and role in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return unauthorized(c, "bearer token required")
			}

			claims, err := manager.ParseToken(strings.TrimSpace(token))
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				return unauthorized(c, "token expired, mint a new one")
			case err != nil:
				return unauthorized(c, "invalid token")
			}

			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyRole, claims.Role)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, bearerChallenge)
	return deny(c, http.StatusUnauthorized, message)
}
