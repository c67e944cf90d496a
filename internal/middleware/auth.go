package middleware // middleware provides reusable HTTP middleware functions

import (
	"strings" // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware

	"github.com/mini4/book-catalog/internal/auth" // auth core: coordinator and identity helpers
)

// bearerPrefix is the exact, case-sensitive prefix a usable Authorization
// header must carry. Anything else means "no token", not an error.
const bearerPrefix = "Bearer "

// RequestGate returns the per-request authentication middleware. It runs
// once for every inbound request, before routing to any protected
// operation: it extracts the bearer token, asks the coordinator to verify
// it and, on success, attaches the resulting identity to the request
// context. It NEVER rejects a request itself: a missing or invalid token
// simply leaves the context without an identity, and protected endpoints
// reject separately via RequireAuth. Public and protected routes therefore
// share this one gate.
func RequestGate(co *auth.Coordinator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(header, bearerPrefix) {
				token := strings.TrimPrefix(header, bearerPrefix)
				if token != "" {
					if id, err := co.Authenticate(c.Request().Context(), token); err == nil {
						auth.SetIdentity(c, id)
					}
					// Verification failures are already logged inside the
					// coordinator/codec; the gate stays silent and forwards.
				}
			}
			return next(c)
		}
	}
}

// BearerToken returns the raw token from the Authorization header, or ""
// when the header is absent or not an exact "Bearer " header. The logout
// handler uses it to blacklist the presented access token.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, bearerPrefix)
}
