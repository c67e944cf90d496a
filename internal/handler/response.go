package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mini4/book-catalog/internal/auth"
	"github.com/mini4/book-catalog/internal/repository"
)

// ApiResponse is the uniform response envelope: every endpoint, success or
// failure, answers with a human-readable message and an optional payload.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, ApiResponse{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, ApiResponse{Success: false, Message: message})
}

// msgInvalidCredentials is the single message for every login failure.
// Unknown email and wrong password must produce byte-identical responses.
const msgInvalidCredentials = "invalid email or password"

// failFromError is the one place error kinds become HTTP statuses. Nothing
// below the coordinator/repository boundary reaches a response body: the
// sentinels are matched here and everything unrecognized collapses to a
// generic 500. In dev the underlying detail is appended for convenience;
// that is environment-dependent behavior, not a contract.
func failFromError(c echo.Context, err error, dev bool) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrMissingAuthorityClaim):
		return fail(c, http.StatusUnauthorized, "authentication failed")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, repository.ErrEmailExists):
		return fail(c, http.StatusBadRequest, "email already registered")
	}
	msg := "internal server error"
	if dev {
		msg += " (" + err.Error() + ")"
	}
	return fail(c, http.StatusInternalServerError, msg)
}
