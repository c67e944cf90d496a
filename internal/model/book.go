package model

import "time"

// Book represents a row of the `book_table`.  A book belongs to the user
// who registered it and is soft-deleted by setting DeletedAt instead of
// removing the row.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – owner of the record (references user_table.id).
//  Title         – book title, required.
//  Author        – author name; empty means unknown.
//  Publisher     – publisher name.
//  PublishedDate – publication date stored as a YYYY-MM-DD string.
//  Content       – free-form description (TEXT column).
//  Price         – price in won; nil means not set.
//  Category      – free-form category label.
//  ImageURL      – public URL of the uploaded cover image.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
//  DeletedAt     – soft-delete marker (nullable).
type Book struct {
	ID            uint64     // book_table.id
	UserID        uint64     // book_table.user_id
	Title         string     // book_table.title
	Author        string     // book_table.author
	Publisher     string     // book_table.publisher
	PublishedDate string     // book_table.published_date
	Content       string     // book_table.content
	Price         *int       // book_table.price (nullable)
	Category      string     // book_table.category
	ImageURL      string     // book_table.image_url
	CreatedAt     time.Time  // book_table.created_at
	UpdatedAt     time.Time  // book_table.updated_at
	DeletedAt     *time.Time // book_table.deleted_at (nullable)
}
