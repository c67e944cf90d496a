package middleware

import (
	"net/http" // standard HTTP status codes

	"github.com/labstack/echo/v4"

	"github.com/mini4/book-catalog/internal/auth"
)

// RequireAuth rejects requests that reached a protected operation without
// an identity in the request context. Detecting the unauthenticated state
// here, downstream of the gate, is what lets public and protected routes
// share a single gate implementation.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := auth.IdentityFrom(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "authentication required",
				})
			}
			return next(c)
		}
	}
}

// RequireAuthority enforces that the authenticated identity carries one of
// the given authorities. It assumes RequireAuth (or an equivalent check)
// already ran; a request without identity is rejected with 401 and one
// whose identity lacks every listed authority with 403.
func RequireAuthority(authorities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := auth.IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "authentication required",
				})
			}
			for _, a := range authorities {
				if id.HasAuthority(a) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"message": "forbidden",
			})
		}
	}
}
