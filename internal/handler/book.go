package handler

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mini4/book-catalog/internal/auth"
	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/model"
	"github.com/mini4/book-catalog/internal/queue"
	"github.com/mini4/book-catalog/internal/repository"
	publisher "github.com/mini4/book-catalog/internal/service"
)

// BookHandler bundles dependencies for the catalog endpoints.
type BookHandler struct {
	Cfg   config.Config
	Books *repository.BookRepo
}

func NewBookHandler(cfg config.Config, books *repository.BookRepo) *BookHandler {
	return &BookHandler{Cfg: cfg, Books: books}
}

// ----- DTOs -----

type bookReq struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"publishedDate"`
	Content       string `json:"content"`
	Price         *int   `json:"price"`
	Category      string `json:"category"`
	ImageURL      string `json:"imageUrl"`
}

type bookResp struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Publisher     string     `json:"publisher"`
	PublishedDate string     `json:"publishedDate"`
	Content       string     `json:"content"`
	Price         *int       `json:"price"`
	Category      string     `json:"category"`
	ImageURL      string     `json:"imageUrl"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	OwnerName     string     `json:"ownerName"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (r *bookReq) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	if r.PublishedDate != "" && !dateRe.MatchString(r.PublishedDate) {
		return "publishedDate must be YYYY-MM-DD"
	}
	if r.Price != nil && *r.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

func toBookResp(b model.Book, ownerName string) bookResp {
	return bookResp{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Content:       b.Content,
		Price:         b.Price,
		Category:      b.Category,
		ImageURL:      b.ImageURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		OwnerName:     ownerName,
		DeletedAt:     b.DeletedAt,
	}
}

// Register creates a book owned by the authenticated user and publishes a
// book.registered event. Event publishing is best effort: a broker outage
// never fails the request.
func (h *BookHandler) Register(c echo.Context) error {
	id, _ := auth.IdentityFrom(c)

	var req bookReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	book := &model.Book{
		UserID:        id.ID,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		Content:       req.Content,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
	}
	bookID, err := h.Books.Create(ctx, book)
	if err != nil {
		return failFromError(c, err, h.dev())
	}

	_ = publisher.PublishBookRegistered(ctx, queue.BookRegisteredEvent{
		BookID:       bookID,
		UserID:       id.ID,
		UserName:     id.Name,
		Title:        req.Title,
		Author:       req.Author,
		Category:     req.Category,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return ok(c, http.StatusCreated, "book registered", echo.Map{"id": bookID})
}

// List returns all non-deleted books. Public.
func (h *BookHandler) List(c echo.Context) error {
	ctx, cancel := h.reqContext(c)
	defer cancel()

	books, owners, err := h.Books.List(ctx)
	if err != nil {
		return failFromError(c, err, h.dev())
	}
	items := make([]bookResp, 0, len(books))
	for i, b := range books {
		items = append(items, toBookResp(b, owners[i]))
	}
	return ok(c, http.StatusOK, "ok", echo.Map{"books": items})
}

// Get returns one book by id. Public.
func (h *BookHandler) Get(c echo.Context) error {
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	b, ownerName, err := h.Books.GetByID(ctx, bookID)
	if err != nil {
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "ok", toBookResp(b, ownerName))
}

// Update rewrites a book the caller owns.
func (h *BookHandler) Update(c echo.Context) error {
	id, _ := auth.IdentityFrom(c)
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req bookReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	book := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		Content:       req.Content,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
	}
	if err := h.Books.Update(ctx, bookID, id.ID, book); err != nil {
		return failFromError(c, err, h.dev())
	}
	updated, ownerName, err := h.Books.GetByID(ctx, bookID)
	if err != nil {
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "book updated", toBookResp(updated, ownerName))
}

// Delete soft-deletes a book the caller owns.
func (h *BookHandler) Delete(c echo.Context) error {
	id, _ := auth.IdentityFrom(c)
	bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := h.reqContext(c)
	defer cancel()

	if err := h.Books.SoftDelete(ctx, bookID, id.ID); err != nil {
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "book deleted", nil)
}

func (h *BookHandler) reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func (h *BookHandler) dev() bool { return h.Cfg.Env == "dev" }
