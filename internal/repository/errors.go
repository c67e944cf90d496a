// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist or has
// been soft-deleted. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned on registration when the email (or the unique
// display name) is already taken. Handlers translate this into an HTTP 400
// response, matching the uniform "already registered" contract.
var ErrEmailExists = errors.New("email already exists")
