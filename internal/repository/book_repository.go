package repository

import (
	"context"
	"database/sql"

	"github.com/mini4/book-catalog/internal/model"
)

// BookRepo persists book records. Deletion is a soft delete: rows keep
// their data and are excluded from reads once deleted_at is set.
type BookRepo struct{ DB *sql.DB }

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{DB: db} }

const bookColumns = "b.id,b.user_id,b.title,b.author,b.publisher,b.published_date,b.content,b.price,b.category,b.image_url,b.created_at,b.updated_at,b.deleted_at"

// Create inserts a book owned by userID and returns the new ID.
func (r *BookRepo) Create(ctx context.Context, b *model.Book) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO book_table
		 (user_id, title, author, publisher, published_date, content, price, category, image_url)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.Title, b.Author, b.Publisher, b.PublishedDate, b.Content, b.Price, b.Category, b.ImageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a non-deleted book together with its owner's display name.
func (r *BookRepo) GetByID(ctx context.Context, id uint64) (model.Book, string, error) {
	var (
		b         model.Book
		ownerName string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+bookColumns+", u.name FROM book_table b JOIN user_table u ON u.id=b.user_id WHERE b.id=? AND b.deleted_at IS NULL LIMIT 1",
		id).Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Publisher, &b.PublishedDate,
		&b.Content, &b.Price, &b.Category, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt, &ownerName)
	if err == sql.ErrNoRows {
		return b, "", ErrNotFound
	}
	return b, ownerName, err
}

// List returns all non-deleted books, newest first, with owner names.
func (r *BookRepo) List(ctx context.Context) ([]model.Book, []string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookColumns+", u.name FROM book_table b JOIN user_table u ON u.id=b.user_id WHERE b.deleted_at IS NULL ORDER BY b.created_at DESC")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		books  []model.Book
		owners []string
	)
	for rows.Next() {
		var (
			b    model.Book
			name string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Publisher, &b.PublishedDate,
			&b.Content, &b.Price, &b.Category, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt, &name); err != nil {
			return nil, nil, err
		}
		books = append(books, b)
		owners = append(owners, name)
	}
	return books, owners, rows.Err()
}

// Update rewrites the mutable fields of a book owned by ownerID. Ownership
// is checked first so a mismatch surfaces as ErrForbidden rather than a
// silent zero-row update.
func (r *BookRepo) Update(ctx context.Context, id, ownerID uint64, b *model.Book) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE book_table SET title=?, author=?, publisher=?, published_date=?, content=?, price=?, category=?, image_url=?, updated_at=NOW()
		 WHERE id=? AND deleted_at IS NULL`,
		b.Title, b.Author, b.Publisher, b.PublishedDate, b.Content, b.Price, b.Category, b.ImageURL, id)
	return err
}

// SoftDelete marks a book owned by ownerID as deleted.
func (r *BookRepo) SoftDelete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE book_table SET deleted_at=NOW() WHERE id=? AND deleted_at IS NULL", id)
	return err
}

func (r *BookRepo) checkOwner(ctx context.Context, id, ownerID uint64) error {
	var owner uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM book_table WHERE id=? AND deleted_at IS NULL LIMIT 1", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}
