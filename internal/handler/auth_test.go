package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mini4/book-catalog/internal/auth"
	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/middleware"
	"github.com/mini4/book-catalog/internal/model"
	"github.com/mini4/book-catalog/internal/repository"
	"github.com/mini4/book-catalog/internal/utils"
)

type memCreds struct {
	user model.User
}

func (m *memCreds) GetByEmail(_ context.Context, email string) (model.User, error) {
	if email != m.user.Email {
		return model.User{}, repository.ErrNotFound
	}
	return m.user, nil
}

func (m *memCreds) GetByID(_ context.Context, id uint64) (model.User, error) {
	if id != m.user.ID {
		return model.User{}, repository.ErrNotFound
	}
	return m.user, nil
}

type authFixture struct {
	e  *echo.Echo
	mr *miniredis.Miniredis
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	creds := &memCreds{user: model.User{ID: 1, Name: "alice", Email: "a@x.com", PasswordHash: hash}}

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	codec, err := auth.NewTokenCodec(secret, 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	co := auth.NewCoordinator(creds, codec, auth.NewSessionStore(rdb))
	h := NewAuthHandler(config.Config{Env: "test", BcryptCost: bcrypt.MinCost}, nil, co)

	e := echo.New()
	e.Use(middleware.RequestGate(co))
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout, middleware.RequireAuth())
	e.GET("/me", h.Me, middleware.RequireAuth())
	return &authFixture{e: e, mr: mr}
}

func (fx *authFixture) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	fx.e.ServeHTTP(rec, req)
	return rec
}

func (fx *authFixture) login(t *testing.T) (access, refresh string) {
	t.Helper()
	rec := fx.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	require.NotEmpty(t, body.Data.RefreshToken)
	return body.Data.AccessToken, body.Data.RefreshToken
}

func TestLoginEndpoint_Success(t *testing.T) {
	fx := newAuthFixture(t)

	access, refresh := fx.login(t)
	assert.NotEqual(t, access, refresh)

	stored, err := fx.mr.Get("RT:1")
	require.NoError(t, err)
	assert.Equal(t, refresh, stored)
}

func TestLoginEndpoint_FailureBodiesAreIdentical(t *testing.T) {
	fx := newAuthFixture(t)

	unknown := fx.do(http.MethodPost, "/login", `{"email":"nobody@x.com","password":"secret"}`, "")
	wrongPw := fx.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"nope"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	fx := newAuthFixture(t)

	rec := fx.do(http.MethodPost, "/login", `{"email":"a@x.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	fx := newAuthFixture(t)

	rec := fx.do(http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	access, _ := fx.login(t)
	rec = fx.do(http.MethodGet, "/me", "", access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
}

func TestLogoutEndpoint_Lifecycle(t *testing.T) {
	fx := newAuthFixture(t)
	access, _ := fx.login(t)

	rec := fx.do(http.MethodPost, "/logout", `{"id":1}`, access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fx.mr.Exists("RT:1"))

	// The unexpired access token is now blacklisted: it no longer opens
	// protected endpoints even though its signature is still good.
	rec = fx.do(http.MethodGet, "/me", "", access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// And because the gate yields no identity anymore, a repeat logout
	// with the same token bounces at RequireAuth.
	rec = fx.do(http.MethodPost, "/logout", `{"id":1}`, access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint_AfterRelogin(t *testing.T) {
	fx := newAuthFixture(t)

	first, _ := fx.login(t)
	rec := fx.do(http.MethodPost, "/logout", `{"id":1}`, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// A fresh login owns RT:1 again; ending that session works the same
	// and the earlier logout left nothing behind to trip over.
	second, _ := fx.login(t)
	rec = fx.do(http.MethodPost, "/logout", `{"id":1}`, second)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fx.mr.Exists("RT:1"))
}

func TestLogoutEndpoint_UnknownUser(t *testing.T) {
	fx := newAuthFixture(t)
	access, _ := fx.login(t)

	rec := fx.do(http.MethodPost, "/logout", `{"id":42}`, access)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutEndpoint_MissingID(t *testing.T) {
	fx := newAuthFixture(t)
	access, _ := fx.login(t)

	rec := fx.do(http.MethodPost, "/logout", `{}`, access)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
