package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini4/book-catalog/internal/config"
)

func limiterFixture(t *testing.T, cfg config.RateLimitConfig) *echo.Echo {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewTokenBucket(cfg, rdb))
	return e
}

func hit(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucket_ExhaustsAndRejects(t *testing.T) {
	e := limiterFixture(t, config.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            time.Hour,
		Prefix:         "rl",
	})

	for i := 0; i < 3; i++ {
		rec := hit(e)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := hit(e)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestTokenBucket_DisabledPassesThrough(t *testing.T) {
	e := limiterFixture(t, config.RateLimitConfig{Enabled: false})

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, hit(e).Code)
	}
}

func TestTokenBucket_NilRedisPassesThrough(t *testing.T) {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hit(e).Code)
	}
}
