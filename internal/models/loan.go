package models

import "time"

// DateLayout is the wire and storage format of a due date.
const DateLayout = "2006-01-02"

// Loan represents one book lent to one user.
//
// A loan is active while ReturnDate is nil. Returning it sets ReturnDate,
// after which the loan never changes again.
type Loan struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id" db:"id"`

	// BookID references the loaned book.
	BookID int64 `json:"book_id" db:"book_id"`

	// UserID references the borrower.
	UserID int64 `json:"user_id" db:"user_id"`

	// LoanDate is the Unix timestamp set by the store at creation.
	LoanDate int64 `json:"loan_date" db:"loan_date"`

	// DueDate is a calendar date in DateLayout.
	DueDate string `json:"due_date" db:"due_date"`

	// ReturnDate is the Unix timestamp of the return, nil while active.
	ReturnDate *int64 `json:"return_date,omitempty" db:"return_date"`
}

// Active reports whether the loan has not been returned yet.
func (l Loan) Active() bool {
	return l.ReturnDate == nil
}

// Due parses the due date as local midnight in loc.
func (l Loan) Due(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, l.DueDate, loc)
}

// Overdue reports whether the loan is active and its due date is strictly
// before now. The due date is interpreted in now's location.
func (l Loan) Overdue(now time.Time) bool {
	if !l.Active() {
		return false
	}
	due, err := l.Due(now.Location())
	if err != nil {
		return false
	}
	return due.Before(now)
}

// LoanRequest is the draft submitted to create a loan.
type LoanRequest struct {
	BookID  int64  `json:"book_id"`
	UserID  int64  `json:"user_id"`
	DueDate string `json:"due_date"`
}

// Stats summarizes the collection for the dashboard.
type Stats struct {
	TotalBooks   int64 `json:"total_books"`
	TotalUsers   int64 `json:"total_users"`
	ActiveLoans  int64 `json:"active_loans"`
	OverdueLoans int64 `json:"overdue_loans"`
}
