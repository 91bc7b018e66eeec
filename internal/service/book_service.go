package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
	"github.com/mmynk/librarian/pkg/api"
)

const (
	msgBookNotFound  = "Book not found"
	msgISBNDuplicate = "ISBN already registered"
)

// BookService implements the Connect BookService.
type BookService struct {
	store storage.Store
}

// NewBookService creates a new BookService with the given storage backend.
func NewBookService(store storage.Store) *BookService {
	return &BookService{store: store}
}

func bookFromRequest(id int64, req api.CreateBookRequest) (*models.Book, []api.Violation) {
	violations := required(nil,
		[2]string{"title", req.Title},
		[2]string{"author", req.Author},
	)
	return &models.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		CoverImageURL: req.CoverImageURL,
		Summary:       req.Summary,
	}, violations
}

// CreateBook adds a new book to the collection.
func (s *BookService) CreateBook(ctx context.Context, req *connect.Request[api.CreateBookRequest]) (*connect.Response[api.BookResponse], error) {
	slog.Info("CreateBook request received", "title", req.Msg.Title, "isbn", req.Msg.ISBN)

	book, violations := bookFromRequest(0, *req.Msg)
	if len(violations) > 0 {
		return nil, api.NewValidationError(violations)
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		slog.Error("CreateBook failed", "error", err)
		return nil, storeError(err, msgBookNotFound, msgISBNDuplicate)
	}

	slog.Info("Book created", "book_id", book.ID)

	return connect.NewResponse(&api.BookResponse{Book: *book}), nil
}

// GetBook retrieves a book by ID.
func (s *BookService) GetBook(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.BookResponse], error) {
	slog.Info("GetBook request received", "book_id", req.Msg.ID)

	book, err := s.store.GetBook(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetBook failed", "book_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgBookNotFound, msgISBNDuplicate)
	}

	return connect.NewResponse(&api.BookResponse{Book: *book}), nil
}

// ListBooks retrieves books, optionally filtered by a search query.
func (s *BookService) ListBooks(ctx context.Context, req *connect.Request[api.ListBooksRequest]) (*connect.Response[api.ListBooksResponse], error) {
	slog.Info("ListBooks request received", "query", req.Msg.Query)

	books, err := s.store.ListBooks(ctx, storage.BookFilter{
		Query: req.Msg.Query,
		Page:  storage.Page{Skip: req.Msg.Skip, Limit: req.Msg.Limit},
	})
	if err != nil {
		slog.Error("ListBooks failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListBooks successful", "count", len(books))

	return connect.NewResponse(&api.ListBooksResponse{Books: books}), nil
}

// UpdateBook replaces a book's descriptive fields.
func (s *BookService) UpdateBook(ctx context.Context, req *connect.Request[api.UpdateBookRequest]) (*connect.Response[api.BookResponse], error) {
	slog.Info("UpdateBook request received", "book_id", req.Msg.ID)

	book, violations := bookFromRequest(req.Msg.ID, req.Msg.CreateBookRequest)
	if len(violations) > 0 {
		return nil, api.NewValidationError(violations)
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		slog.Error("UpdateBook failed", "book_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgBookNotFound, msgISBNDuplicate)
	}

	// Fetch updated book to get availability
	updated, err := s.store.GetBook(ctx, book.ID)
	if err != nil {
		slog.Error("Failed to fetch updated book", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Book updated", "book_id", book.ID)

	return connect.NewResponse(&api.BookResponse{Book: *updated}), nil
}

// DeleteBook removes a book and its loan history.
func (s *BookService) DeleteBook(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteBook request received", "book_id", req.Msg.ID)

	if err := s.store.DeleteBook(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteBook failed", "error", err)
		return nil, storeError(err, msgBookNotFound, msgISBNDuplicate)
	}

	slog.Info("Book deleted", "book_id", req.Msg.ID)

	return connect.NewResponse(&api.Empty{}), nil
}

// GetBookCode returns the payload to print on the book's scannable label.
func (s *BookService) GetBookCode(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.BookCodeResponse], error) {
	book, err := s.store.GetBook(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetBookCode failed", "book_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgBookNotFound, msgISBNDuplicate)
	}

	return connect.NewResponse(&api.BookCodeResponse{Payload: book.Code()}), nil
}
