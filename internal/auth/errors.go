// Package auth implements the token-based authentication core: signing and
// verifying bearer tokens, storing refresh tokens and blacklisted access
// tokens in Redis, and coordinating login, per-request authentication and
// logout on top of the credential store.
package auth

import "errors"

// ErrInvalidCredentials is returned by Login when the email is unknown or
// the password does not match. The two causes are deliberately
// indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTokenInvalid is returned by Authenticate when the presented token
// fails verification or has been blacklisted. The token codec itself never
// returns this; it collapses all verification failures to a boolean.
var ErrTokenInvalid = errors.New("invalid token")

// ErrMissingAuthorityClaim is returned when a structurally valid token has
// no authority claim, i.e. a refresh token was presented where an access
// token was expected.
var ErrMissingAuthorityClaim = errors.New("token has no authority claim")

// ErrUserNotFound is returned by Logout when the given user id does not
// resolve to an existing user. Handlers translate this into an HTTP 404.
var ErrUserNotFound = errors.New("user not found")
