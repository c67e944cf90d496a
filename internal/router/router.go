package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mini4/book-catalog/internal/auth"
	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/handler"
	"github.com/mini4/book-catalog/internal/middleware"
)

// Register wires every route of the API onto the Echo instance. The
// request gate runs on all of them (it authenticates when it can and
// never rejects) while the permit list below decides which operations
// additionally require an identity:
//
//	open:      register, login, book list/detail, health
//	protected: logout, me, book writes, image upload/delete
func Register(e *echo.Echo, cfg config.Config, co *auth.Coordinator,
	a *handler.AuthHandler, b *handler.BookHandler, img *handler.ImageHandler,
	rdb *redis.Client) {

	e.GET("/healthz", handler.Health)

	e.Use(middleware.RequestGate(co))

	api := e.Group("/api/v1")

	// Credential endpoints sit behind the brute-force limiter.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	users := api.Group("/users")
	users.POST("/register", a.Register, limiter)
	users.POST("/login", a.Login, limiter)
	users.POST("/logout", a.Logout, middleware.RequireAuth())
	users.GET("/me", a.Me, middleware.RequireAuth())

	// Book reads are public; writes require the user authority carried in
	// the access token.
	api.GET("/books", b.List)
	api.GET("/books/:id", b.Get)
	books := api.Group("/books", middleware.RequireAuthority("ROLE_USER"))
	books.POST("", b.Register)
	books.PUT("/:id", b.Update)
	books.DELETE("/:id", b.Delete)

	images := api.Group("/images", middleware.RequireAuthority("ROLE_USER"))
	images.POST("/upload", img.Upload)
	images.DELETE("/delete", img.Delete)
}
