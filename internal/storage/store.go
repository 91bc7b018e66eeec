// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/librarian/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique column (ISBN, email, phone) clashes.
	ErrDuplicate = errors.New("record already exists")

	// ErrBookUnavailable is returned when a loan is requested for a book that
	// is already on an active loan.
	ErrBookUnavailable = errors.New("book is already loaned")

	// ErrLoanReturned is returned when returning a loan that is already closed.
	ErrLoanReturned = errors.New("loan already returned")
)

// Page bounds a list query. A zero Limit means the store default.
type Page struct {
	Skip  int
	Limit int
}

// BookFilter narrows ListBooks. Query matches title, author or ISBN.
type BookFilter struct {
	Query string
	Page
}

// UserFilter narrows ListUsers. Query matches name, email or phone.
type UserFilter struct {
	Query string
	Page
}

// LoanFilter narrows ListLoans.
type LoanFilter struct {
	ActiveOnly bool
	UserID     int64
	Page
}

// Store defines the interface for library storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateBook persists a new book; book.ID is populated by the store and
	// the book starts out available.
	CreateBook(ctx context.Context, book *models.Book) error
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error)
	// UpdateBook replaces the descriptive fields; availability is owned by
	// the loan operations and is left untouched.
	UpdateBook(ctx context.Context, book *models.Book) error
	// DeleteBook removes the book and, through the foreign key, its loans.
	DeleteBook(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdmin(ctx context.Context, id int64) (*models.Admin, error)
	// GetAdminByEmail returns ErrNotFound when no admin has the email.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	ListAdmins(ctx context.Context, page Page) ([]models.Admin, error)
	// UpdateAdmin writes name, email and flag; the password hash is only
	// written when non-empty.
	UpdateAdmin(ctx context.Context, admin *models.Admin) error
	DeleteAdmin(ctx context.Context, id int64) error

	// CreateLoan marks the book unavailable and inserts the loan in one
	// transaction. It returns ErrNotFound for an unknown book or user and
	// ErrBookUnavailable when the book is already on loan.
	CreateLoan(ctx context.Context, loan *models.Loan) error
	GetLoan(ctx context.Context, id int64) (*models.Loan, error)
	ListLoans(ctx context.Context, filter LoanFilter) ([]models.Loan, error)
	// ReturnLoan closes an active loan and makes its book available again.
	// It returns ErrLoanReturned when the loan is already closed.
	ReturnLoan(ctx context.Context, id int64) (*models.Loan, error)

	// Stats counts books, users, active loans and overdue loans. A loan is
	// overdue once its due date is on or before today (models.DateLayout),
	// matching models.Loan.Overdue at any time after midnight.
	Stats(ctx context.Context, today string) (*models.Stats, error)

	// Close releases any resources held by the store.
	Close() error
}
