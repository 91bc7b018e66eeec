package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
)

const loanColumns = "id, book_id, user_id, loan_date, due_date, return_date"

// CreateLoan persists a new loan and takes the book off the shelf.
func (s *SQLiteStore) CreateLoan(ctx context.Context, loan *models.Loan) error {
	if loan.LoanDate == 0 {
		loan.LoanDate = time.Now().Unix()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var available bool
	err = tx.QueryRowxContext(ctx, "SELECT is_available FROM books WHERE id = ?", loan.BookID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("book %d: %w", loan.BookID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}

	// The conditional update is what settles two desks racing for one book.
	res, err := tx.ExecContext(ctx,
		"UPDATE books SET is_available = 0 WHERE id = ? AND is_available = 1",
		loan.BookID,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve book: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("book %d: %w", loan.BookID, storage.ErrBookUnavailable)
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO loans (book_id, user_id, loan_date, due_date) VALUES (?, ?, ?, ?)",
		loan.BookID, loan.UserID, loan.LoanDate, loan.DueDate,
	)
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("user %d: %w", loan.UserID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to insert loan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read loan id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	loan.ID = id
	loan.ReturnDate = nil

	return nil
}

// GetLoan retrieves a loan by ID.
func (s *SQLiteStore) GetLoan(ctx context.Context, id int64) (*models.Loan, error) {
	return getLoan(ctx, s.db, id)
}

func getLoan(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Loan, error) {
	loan := &models.Loan{}
	err := sqlx.GetContext(ctx, q, loan, "SELECT "+loanColumns+" FROM loans WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loan %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return loan, nil
}

// ListLoans returns loans in ID order.
func (s *SQLiteStore) ListLoans(ctx context.Context, filter storage.LoanFilter) ([]models.Loan, error) {
	ds := dialect.From("loans").
		Select("id", "book_id", "user_id", "loan_date", "due_date", "return_date").
		Order(goqu.I("id").Asc())

	var where []goqu.Expression
	if filter.ActiveOnly {
		where = append(where, goqu.C("return_date").IsNull())
	}
	if filter.UserID != 0 {
		where = append(where, goqu.C("user_id").Eq(filter.UserID))
	}
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	ds = selectPage(ds, filter.Page)

	loans := []models.Loan{}
	if err := s.selectAll(ctx, &loans, ds); err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	return loans, nil
}

// ReturnLoan closes an active loan and puts its book back on the shelf.
func (s *SQLiteStore) ReturnLoan(ctx context.Context, id int64) (*models.Loan, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE loans SET return_date = ? WHERE id = ? AND return_date IS NULL",
		time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to close loan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		// Either unknown or already closed; tell them apart for the caller.
		if _, err := getLoan(ctx, tx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("loan %d: %w", id, storage.ErrLoanReturned)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE books SET is_available = 1 WHERE id = (SELECT book_id FROM loans WHERE id = ?)",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to release book: %w", err)
	}

	loan, err := getLoan(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return loan, nil
}
