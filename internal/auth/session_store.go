package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// refreshKeyPrefix namespaces refresh-token keys; blacklist entries are
// keyed by the raw access token itself, so they need no prefix.
const refreshKeyPrefix = "RT:"

// blacklistMarker is the sentinel value stored for a revoked access token.
// Only key existence matters; the value is never read.
const blacklistMarker = "logout"

// SessionStore keeps the ephemeral half of a session in Redis: the single
// authoritative refresh token per user and the blacklist of access tokens
// revoked before their natural expiry. Redis key TTLs are the cleanup
// mechanism; nothing is ever garbage-collected by the application.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// SaveRefreshToken stores token as the current refresh token for userID
// with the given TTL. A plain SET overwrites any previous value, which is
// exactly the supersession semantics wanted: the most recent login wins.
func (s *SessionStore) SaveRefreshToken(ctx context.Context, userID uint64, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKey(userID), token, ttl).Err()
}

// DeleteRefreshToken removes the refresh token of userID and reports
// whether one existed. Absence is not an error: an already-logged-out user
// is a valid state.
func (s *SessionStore) DeleteRefreshToken(ctx context.Context, userID uint64) (bool, error) {
	n, err := s.rdb.Del(ctx, refreshKey(userID)).Result()
	return n > 0, err
}

// BlacklistAccessToken marks the raw access token as revoked for its
// remaining lifetime. The entry expires on its own exactly when the token
// would have, so a blacklisted token never outlives its natural expiry.
// Re-blacklisting overwrites the entry with the new TTL (last call wins).
func (s *SessionStore) BlacklistAccessToken(ctx context.Context, rawToken string, ttl time.Duration) error {
	return s.rdb.Set(ctx, rawToken, blacklistMarker, ttl).Err()
}

// IsBlacklisted reports whether the raw access token has been revoked.
func (s *SessionStore) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	n, err := s.rdb.Exists(ctx, rawToken).Result()
	return n > 0, err
}

func refreshKey(userID uint64) string {
	return refreshKeyPrefix + strconv.FormatUint(userID, 10)
}
