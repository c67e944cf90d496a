package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mini4/book-catalog/internal/model"
	"github.com/mini4/book-catalog/internal/repository"
	"github.com/mini4/book-catalog/internal/utils"
)

// CredentialStore is the slice of the user repository the auth core needs:
// lookup by identity for login and per-request authentication, lookup by id
// for logout. repository.UserRepo satisfies it.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// defaultAuthority is granted to every registered user. The user table has
// no role column; authority still travels inside the token so the claim
// round-trips the way a richer role model would.
const defaultAuthority = "ROLE_USER"

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Identity     Identity
	AccessToken  string
	RefreshToken string
}

// Coordinator orchestrates the three session transitions (login,
// per-request authentication, logout) across the credential store, the
// token codec and the Redis session store. Each transition is atomic from
// the caller's point of view; no intermediate state is persisted.
type Coordinator struct {
	creds    CredentialStore
	codec    *TokenCodec
	sessions *SessionStore
	log      *slog.Logger
}

func NewCoordinator(creds CredentialStore, codec *TokenCodec, sessions *SessionStore) *Coordinator {
	return &Coordinator{
		creds:    creds,
		codec:    codec,
		sessions: sessions,
		log:      slog.Default(),
	}
}

// Login verifies the credentials and, on success, issues an access/refresh
// token pair and stores the refresh token under RT:{userID}, superseding
// any previous one. Unknown email and wrong password both come back as
// ErrInvalidCredentials; the caller can never tell which half was wrong.
func (co *Coordinator) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := co.creds.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	id := identityOf(u)
	access, err := co.codec.IssueAccessToken(id)
	if err != nil {
		return LoginResult{}, err
	}
	refresh, err := co.codec.IssueRefreshToken()
	if err != nil {
		return LoginResult{}, err
	}
	if err := co.sessions.SaveRefreshToken(ctx, u.ID, refresh, co.codec.refreshTTL); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Identity: id, AccessToken: access, RefreshToken: refresh}, nil
}

// Authenticate turns a bearer token into an Identity. A token is usable iff
// its signature verifies, it is not expired and it is not blacklisted. The
// authority set comes from the token's claim; the rest of the identity is
// reloaded from the credential store by the token's subject so stale
// embedded data beyond subject+authorities is never trusted.
func (co *Coordinator) Authenticate(ctx context.Context, token string) (Identity, error) {
	if !co.codec.Verify(token) {
		return Identity{}, ErrTokenInvalid
	}
	blacklisted, err := co.sessions.IsBlacklisted(ctx, token)
	if err != nil {
		co.log.Warn("blacklist lookup failed", "err", err)
		return Identity{}, ErrTokenInvalid
	}
	if blacklisted {
		co.log.Debug("rejected blacklisted access token")
		return Identity{}, ErrTokenInvalid
	}

	claims, err := co.codec.ParseClaimsAllowExpired(token)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}
	authClaim, ok := claims[AuthorityClaim].(string)
	if !ok || authClaim == "" {
		return Identity{}, ErrMissingAuthorityClaim
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Identity{}, ErrTokenInvalid
	}

	u, err := co.creds.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, ErrTokenInvalid
		}
		return Identity{}, err
	}
	return Identity{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Authorities: strings.Split(authClaim, ","),
	}, nil
}

// Logout ends the session of userID. The only outward failure is an
// unresolvable user id; after that the two store operations are
// independent and best-effort, so logout is idempotent from the client's
// point of view:
//
//   - the refresh token under RT:{userID} is deleted; absence only gets a
//     debug note (already logged out is a valid state)
//   - the access token, if still verifiable with positive remaining TTL,
//     is blacklisted for exactly that remainder; an expired or garbage
//     token is a no-op
//
// Neither operation blocks or rolls back the other.
func (co *Coordinator) Logout(ctx context.Context, userID uint64, accessToken string) error {
	if _, err := co.creds.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	existed, err := co.sessions.DeleteRefreshToken(ctx, userID)
	switch {
	case err != nil:
		co.log.Warn("refresh token delete failed", "user_id", userID, "err", err)
	case !existed:
		co.log.Debug("no refresh token to delete, already logged out", "user_id", userID)
	}

	if accessToken != "" && co.codec.Verify(accessToken) {
		ttl, err := co.codec.RemainingTTL(accessToken)
		if err != nil {
			co.log.Warn("remaining ttl lookup failed", "err", err)
		} else if ttl > 0 {
			if err := co.sessions.BlacklistAccessToken(ctx, accessToken, ttl); err != nil {
				co.log.Warn("access token blacklist failed", "err", err)
			}
		}
	}
	return nil
}

func identityOf(u model.User) Identity {
	return Identity{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Authorities: []string{defaultAuthority},
	}
}
