package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mini4/book-catalog/internal/auth"
	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/middleware"
	"github.com/mini4/book-catalog/internal/repository"
)

// AuthHandler bundles dependencies for the user/session endpoints.
type AuthHandler struct {
	Cfg         config.Config
	Users       *repository.UserRepo
	Coordinator *auth.Coordinator
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, co *auth.Coordinator) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Coordinator: co}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type logoutReq struct {
	ID uint64 `json:"id"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
type loginResp struct {
	userPart
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a user account. Tokens are not issued here; the client
// logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required")
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusCreated, "registered", userPart{ID: uid, Name: req.Name, Email: req.Email})
}

// Login verifies the credentials and returns a fresh token pair. The
// failure body is identical no matter which half of the credential pair
// was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	res, err := h.Coordinator.Login(ctx, req.Email, req.Password)
	if err != nil {
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "logged in", loginResp{
		userPart:     userPart{ID: res.Identity.ID, Name: res.Identity.Name, Email: res.Identity.Email},
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// Logout ends the session of the user id in the body: the refresh token is
// dropped from the session store and the presented access token, if still
// live, is blacklisted for its remaining lifetime. The request-scoped
// identity is cleared no matter what, and the only error a client can see
// is an unknown user id.
func (h *AuthHandler) Logout(c echo.Context) error {
	defer auth.ClearIdentity(c)

	var req logoutReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "user id is required")
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	if err := h.Coordinator.Logout(ctx, req.ID, middleware.BearerToken(c)); err != nil {
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated identity, mainly for smoke-testing tokens.
func (h *AuthHandler) Me(c echo.Context) error {
	id, _ := auth.IdentityFrom(c)
	return ok(c, http.StatusOK, "ok", echo.Map{
		"id":          id.ID,
		"name":        id.Name,
		"email":       id.Email,
		"authorities": id.Authorities,
	})
}

func (h *AuthHandler) reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func (h *AuthHandler) dev() bool { return h.Cfg.Env == "dev" }
