package auth

import "github.com/labstack/echo/v4"

// Identity is the authenticated principal attached to a request. It is
// immutable from the auth core's point of view: the fields are loaded from
// the credential store (plus the authority claim carried in the token) and
// never written back.
type Identity struct {
	ID          uint64
	Name        string
	Email       string
	Authorities []string
}

// HasAuthority reports whether the identity carries the given authority.
func (id Identity) HasAuthority(a string) bool {
	for _, have := range id.Authorities {
		if have == a {
			return true
		}
	}
	return false
}

// identityKey is the echo context key under which the request gate stores
// the authenticated identity. Identity is passed explicitly through the
// request context rather than any process-global holder, so nothing can
// leak across pooled connections.
const identityKey = "auth.identity"

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// ClearIdentity removes any identity from the request context.
func ClearIdentity(c echo.Context) {
	c.Set(identityKey, nil)
}

// IdentityFrom returns the identity attached to the request, if any.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
