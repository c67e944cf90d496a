package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mini4/book-catalog/internal/auth"
	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/database"
	"github.com/mini4/book-catalog/internal/handler"
	"github.com/mini4/book-catalog/internal/queue"
	"github.com/mini4/book-catalog/internal/repository"
	"github.com/mini4/book-catalog/internal/router"
	"github.com/mini4/book-catalog/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := config.NewRedisClient()
	if err != nil {
		// The session store is load-bearing: without it there are no
		// refresh tokens and no blacklist, so refuse to start.
		log.Fatalf("redis: %v", err)
	}

	// The signing key is derived exactly once here; a malformed secret
	// kills the process before it can accept a request.
	codec, err := auth.NewTokenCodec(cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	users := repository.NewUserRepo(db)
	books := repository.NewBookRepo(db)
	sessions := auth.NewSessionStore(rdb)
	coordinator := auth.NewCoordinator(users, codec, sessions)

	store, err := storage.NewObjectStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("object store: %v", err)
	}

	go func() {
		if err := queue.StartBookConsumer(); err != nil {
			log.Printf("book consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, cfg,
		coordinator,
		handler.NewAuthHandler(cfg, users, coordinator),
		handler.NewBookHandler(cfg, books),
		handler.NewImageHandler(cfg, store),
		rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
