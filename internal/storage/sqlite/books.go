package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
)

// bookColumns reads optional text columns back as empty strings.
var bookColumns = []interface{}{
	"id", "title", "author",
	goqu.COALESCE(goqu.C("isbn"), "").As("isbn"),
	goqu.COALESCE(goqu.C("cover_image_url"), "").As("cover_image_url"),
	goqu.COALESCE(goqu.C("summary"), "").As("summary"),
	"is_available",
}

// CreateBook inserts a new, available book.
func (s *SQLiteStore) CreateBook(ctx context.Context, book *models.Book) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO books (title, author, isbn, cover_image_url, summary, is_available)
		 VALUES (?, ?, ?, ?, ?, 1)`,
		book.Title, book.Author, nullable(book.ISBN), nullable(book.CoverImageURL), nullable(book.Summary),
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", translateErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read book id: %w", err)
	}
	book.ID = id
	book.IsAvailable = true

	return nil
}

// GetBook retrieves a book by ID.
func (s *SQLiteStore) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	query, args, err := dialect.From("books").Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	book := &models.Book{}
	err = s.db.GetContext(ctx, book, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// ListBooks returns books in ID order, optionally filtered by a substring of
// title, author or ISBN.
func (s *SQLiteStore) ListBooks(ctx context.Context, filter storage.BookFilter) ([]models.Book, error) {
	ds := dialect.From("books").Select(bookColumns...).Order(goqu.I("id").Asc())
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		ds = ds.Where(goqu.Or(
			goqu.C("title").Like(pattern),
			goqu.C("author").Like(pattern),
			goqu.C("isbn").Like(pattern),
		))
	}
	ds = selectPage(ds, filter.Page)

	books := []models.Book{}
	if err := s.selectAll(ctx, &books, ds); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

// UpdateBook replaces a book's descriptive fields.
func (s *SQLiteStore) UpdateBook(ctx context.Context, book *models.Book) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, isbn = ?, cover_image_url = ?, summary = ?
		 WHERE id = ?`,
		book.Title, book.Author, nullable(book.ISBN), nullable(book.CoverImageURL), nullable(book.Summary),
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", translateErr(err))
	}

	return requireAffected(res, "book", book.ID)
}

// DeleteBook removes a book and its loan history.
func (s *SQLiteStore) DeleteBook(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	return requireAffected(res, "book", id)
}
