// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records catalog activity.
package queue

// BookRegisteredEvent is published when a book is added to the catalog. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookRegisteredEvent struct {
	BookID       uint64 `json:"book_id"`
	UserID       uint64 `json:"user_id"`
	UserName     string `json:"user_name"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Category     string `json:"category"`
	RegisteredAt string `json:"registered_at"`
}
