package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mini4/book-catalog/internal/config"
	"github.com/mini4/book-catalog/internal/storage"
)

// ImageHandler exposes cover image upload and deletion over the object
// store. Validation lives here; the store itself only moves bytes.
type ImageHandler struct {
	Cfg   config.Config
	Store *storage.ObjectStore
}

func NewImageHandler(cfg config.Config, store *storage.ObjectStore) *ImageHandler {
	return &ImageHandler{Cfg: cfg, Store: store}
}

// Upload accepts a multipart "file" field, validates size and content type
// and stores it under a unique object name. The response carries the
// public URL the client should attach to a book record.
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "file is required")
	}
	if fh.Size == 0 {
		return fail(c, http.StatusBadRequest, "file is empty")
	}
	if fh.Size > h.Cfg.MaxUploadBytes {
		return fail(c, http.StatusBadRequest,
			fmt.Sprintf("file exceeds the %d MiB limit", h.Cfg.MaxUploadBytes>>20))
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fail(c, http.StatusBadRequest, "only image files are accepted")
	}

	src, err := fh.Open()
	if err != nil {
		return failFromError(c, err, h.dev())
	}
	defer src.Close()

	imageURL, err := h.Store.Upload(c.Request().Context(), fh.Filename, contentType, fh.Size, src)
	if err != nil {
		c.Logger().Errorf("image upload failed: %v", err)
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "uploaded", echo.Map{"imageUrl": imageURL})
}

// Delete removes the object behind ?imageUrl=.
func (h *ImageHandler) Delete(c echo.Context) error {
	imageURL := c.QueryParam("imageUrl")
	if imageURL == "" {
		return fail(c, http.StatusBadRequest, "imageUrl is required")
	}
	if err := h.Store.Delete(c.Request().Context(), imageURL); err != nil {
		c.Logger().Errorf("image delete failed: %v", err)
		return failFromError(c, err, h.dev())
	}
	return ok(c, http.StatusOK, "deleted", nil)
}

func (h *ImageHandler) dev() bool { return h.Cfg.Env == "dev" }
