package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthorityClaim is the custom claim carrying the comma-joined authority
// list of an access token. Refresh tokens do not have it.
const AuthorityClaim = "auth"

// TokenCodec signs and verifies HS256 bearer tokens. The signing key is
// derived once from a base64-encoded secret at construction and is
// read-only afterwards, so concurrent use needs no synchronization.
type TokenCodec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *slog.Logger
}

// NewTokenCodec decodes the base64 secret and builds a codec. A malformed
// secret is a startup error; callers are expected to fail fast on it.
func NewTokenCodec(secretB64 string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	key, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("decode jwt secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	return &TokenCodec{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        slog.Default(),
	}, nil
}

// IssueAccessToken signs a short-lived access token for the identity. The
// subject is the login email and the authority list is carried as a single
// comma-joined claim.
func (tc *TokenCodec) IssueAccessToken(id Identity) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":          id.Email,
		AuthorityClaim: strings.Join(id.Authorities, ","),
		"exp":          now.Add(tc.accessTTL).Unix(),
		"iat":          now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.key)
}

// IssueRefreshToken signs a long-lived token carrying only an expiry. It is
// deliberately opaque: no subject, no authorities. Presenting it where an
// access token is expected fails with ErrMissingAuthorityClaim.
func (tc *TokenCodec) IssueRefreshToken() (string, error) {
	claims := jwt.MapClaims{
		"exp": time.Now().UTC().Add(tc.refreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.key)
}

// Verify reports whether the token has a valid signature and is not
// expired. Every distinct failure cause is logged at debug level and
// collapsed to false; no parsing error escapes this boundary.
func (tc *TokenCodec) Verify(token string) bool {
	tok, err := jwt.Parse(token, tc.keyFunc)
	switch {
	case err == nil && tok.Valid:
		return true
	case errors.Is(err, jwt.ErrTokenMalformed):
		tc.log.Debug("malformed jwt", "err", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		tc.log.Debug("invalid jwt signature", "err", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		tc.log.Debug("expired jwt", "err", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		tc.log.Debug("unverifiable jwt", "err", err)
	default:
		tc.log.Debug("jwt rejected", "err", err)
	}
	return false
}

// ParseClaimsAllowExpired parses and returns the token's claims even when
// the token has already expired, as long as the signature is valid. Logout
// needs this: it must still identify whose token is being blacklisted after
// the token may have just run out.
func (tc *TokenCodec) ParseClaimsAllowExpired(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, tc.keyFunc)
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return nil, err
	}
	return claims, nil
}

// RemainingTTL returns the token's expiry minus the current time. The
// result is negative for an already-expired token; callers must treat a
// non-positive value as "do not blacklist".
func (tc *TokenCodec) RemainingTTL(token string) (time.Duration, error) {
	claims, err := tc.ParseClaimsAllowExpired(token)
	if err != nil {
		return 0, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, errors.New("token has no expiry claim")
	}
	return time.Until(exp.Time), nil
}

// keyFunc supplies the signing key and pins the algorithm to HMAC so a
// token signed with anything else is rejected.
func (tc *TokenCodec) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return tc.key, nil
}
