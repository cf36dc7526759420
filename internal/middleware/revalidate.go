package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RevalidateSecretHeader carries the shared secret of the CMS webhook.
const RevalidateSecretHeader = "X-Revalidate-Secret"

// RevalidateSecret rejects webhook calls that do not carry secret.
func RevalidateSecret(secret string) echo.MiddlewareFunc {
	want := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := []byte(c.Request().Header.Get(RevalidateSecretHeader))
			if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				return deny(c, http.StatusUnauthorized, "invalid revalidation secret")
			}
			return next(c)
		}
	}
}
