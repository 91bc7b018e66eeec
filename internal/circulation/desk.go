// Package circulation runs the loan desk: the draft form, its validation,
// and the lifecycle of loans from issue to return.
package circulation

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/librarian/internal/directory"
	"github.com/mmynk/librarian/internal/errmap"
	"github.com/mmynk/librarian/internal/models"
)

// Backend is the persistence boundary the desk talks to.
type Backend interface {
	directory.Source
	ListLoans(ctx context.Context) ([]models.Loan, error)
	CreateLoan(ctx context.Context, req models.LoanRequest) (*models.Loan, error)
	ReturnLoan(ctx context.Context, id int64) (*models.Loan, error)
}

// RefreshPolicy controls how the desk catches up after a write.
type RefreshPolicy int

const (
	// RefreshFull refetches the loan list and the book directory.
	RefreshFull RefreshPolicy = iota
	// RefreshDelta applies the known change locally: the loan is added or
	// closed and its book's availability flipped.
	RefreshDelta
)

// Option configures a Desk.
type Option func(*Desk)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Desk) { d.now = now }
}

// WithLocation sets the time zone due dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(d *Desk) { d.loc = loc }
}

// WithRefreshPolicy sets how the desk refreshes after a write.
func WithRefreshPolicy(p RefreshPolicy) Option {
	return func(d *Desk) { d.policy = p }
}

// WithCatalog sets the message language.
func WithCatalog(cat *Catalog) Option {
	return func(d *Desk) { d.cat = cat }
}

// Desk is the loan lifecycle manager. It is owned by one goroutine and is
// not safe for concurrent use.
type Desk struct {
	backend Backend
	cache   *directory.Cache
	form    *Form
	cat     *Catalog
	now     func() time.Time
	loc     *time.Location
	policy  RefreshPolicy

	loans []models.Loan
}

// NewDesk creates a desk over backend. Call Load before use.
func NewDesk(backend Backend, opts ...Option) *Desk {
	d := &Desk{
		backend: backend,
		cache:   directory.NewCache(backend),
		now:     time.Now,
		loc:     time.Local,
		policy:  RefreshFull,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cat == nil {
		d.cat = NewCatalog("en")
	}
	d.form = newForm(d.cache, d.cat, d.today)
	return d
}

func (d *Desk) today() time.Time {
	return d.now().In(d.loc)
}

// Form returns the loan draft.
func (d *Desk) Form() *Form { return d.form }

// Directory returns the book and user snapshot.
func (d *Desk) Directory() *directory.Cache { return d.cache }

// Catalog returns the desk's message catalog.
func (d *Desk) Catalog() *Catalog { return d.cat }

// Load fetches loans, books and users.
func (d *Desk) Load(ctx context.Context) error {
	if err := d.refreshLoans(ctx); err != nil {
		return &Notice{Op: OpLoad, Message: d.cat.Text(MsgLoadFailed), Err: err}
	}
	if err := d.cache.Refresh(ctx); err != nil {
		return &Notice{Op: OpLoad, Message: d.cat.Text(MsgLoadFailed), Err: err}
	}
	d.form.resync()
	return nil
}

func (d *Desk) refreshLoans(ctx context.Context) error {
	loans, err := d.backend.ListLoans(ctx)
	if err != nil {
		return err
	}
	d.loans = loans
	return nil
}

// CreateLoan submits the draft. A draft missing fields is rejected with a
// *ValidationError before anything is sent. On success the form is reset
// and the desk refreshed; on failure the draft is left for correction and
// the error is a *ValidationError (server field errors) or a *Notice.
func (d *Desk) CreateLoan(ctx context.Context) (*models.Loan, error) {
	req := d.form.Request()

	if errs := Validate(req, d.cat); errs != nil {
		d.form.setErrors(errs)
		return nil, &ValidationError{Fields: errs}
	}
	d.form.setErrors(nil)

	loan, err := d.backend.CreateLoan(ctx, req)
	if err != nil {
		slog.Warn("Loan rejected", "book_id", req.BookID, "user_id", req.UserID, "error", err)
		return nil, d.reject(OpCreateLoan, MsgCreateLoanFailed, err)
	}

	slog.Info("Loan issued", "loan_id", loan.ID, "book_id", loan.BookID, "due_date", loan.DueDate)

	d.form.Reset()
	d.afterWrite(ctx, loan, false)

	return loan, nil
}

// ReturnLoan closes the loan. Failures are reported as a *Notice and leave
// the desk unchanged.
func (d *Desk) ReturnLoan(ctx context.Context, id int64) (*models.Loan, error) {
	loan, err := d.backend.ReturnLoan(ctx, id)
	if err != nil {
		slog.Warn("Return rejected", "loan_id", id, "error", err)
		return nil, &Notice{Op: OpReturnLoan, Message: d.cat.Text(MsgReturnLoanFailed), Err: err}
	}

	slog.Info("Loan returned", "loan_id", loan.ID, "book_id", loan.BookID)

	d.afterWrite(ctx, loan, true)

	return loan, nil
}

// reject routes a backend failure through the error mapper.
func (d *Desk) reject(op, generic string, err error) error {
	res := errmap.Classify(err)
	switch res.Kind {
	case errmap.Fields:
		d.form.setErrors(res.Fields)
		return &ValidationError{Fields: res.Fields, Remote: true}
	case errmap.Notice:
		return &Notice{Op: op, Message: d.cat.Text(MsgErrorDetail, res.Message), Err: err}
	default:
		return &Notice{Op: op, Message: d.cat.Text(generic), Err: err}
	}
}

// afterWrite brings the loan list and book directory up to date. The write
// already succeeded, so refresh failures are logged, not returned.
func (d *Desk) afterWrite(ctx context.Context, loan *models.Loan, returned bool) {
	if d.policy == RefreshDelta {
		d.applyDelta(*loan, returned)
		d.form.resync()
		return
	}

	if err := d.refreshLoans(ctx); err != nil {
		slog.Warn("Failed to refresh loans", "error", err)
		d.applyDelta(*loan, returned)
	} else if err := d.cache.RefreshBooks(ctx); err != nil {
		slog.Warn("Failed to refresh books", "error", err)
		d.markBook(loan.BookID, returned)
	}
	d.form.resync()
}

func (d *Desk) applyDelta(loan models.Loan, returned bool) {
	replaced := false
	for i := range d.loans {
		if d.loans[i].ID == loan.ID {
			d.loans[i] = loan
			replaced = true
			break
		}
	}
	if !replaced {
		d.loans = append(d.loans, loan)
	}
	d.markBook(loan.BookID, returned)
}

func (d *Desk) markBook(bookID int64, returned bool) {
	if returned {
		d.cache.MarkBookReturned(bookID)
	} else {
		d.cache.MarkBookLoaned(bookID)
	}
}

// Loans returns every loan the desk knows about, returned ones included.
func (d *Desk) Loans() []models.Loan {
	out := make([]models.Loan, len(d.loans))
	copy(out, d.loans)
	return out
}

// ActiveLoans returns the loans not yet returned whose ID, book title or
// borrower name contains query, ignoring case. It is recomputed on every
// call.
func (d *Desk) ActiveLoans(query string) []models.Loan {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.Loan
	for _, loan := range d.loans {
		if !loan.Active() {
			continue
		}
		if query == "" || d.matchLoan(loan, query) {
			out = append(out, loan)
		}
	}
	return out
}

func (d *Desk) matchLoan(loan models.Loan, query string) bool {
	if strings.Contains(strconv.FormatInt(loan.ID, 10), query) {
		return true
	}
	if book, ok := d.cache.Book(loan.BookID); ok && strings.Contains(strings.ToLower(book.Title), query) {
		return true
	}
	if user, ok := d.cache.User(loan.UserID); ok && strings.Contains(strings.ToLower(user.Name), query) {
		return true
	}
	return false
}

// IsOverdue reports whether loan is active and its due date, taken as
// midnight in the desk's location, is strictly before now.
func (d *Desk) IsOverdue(loan models.Loan, now time.Time) bool {
	return loan.Overdue(now.In(d.loc))
}

// OverdueLoans returns the active loans that are overdue at now.
func (d *Desk) OverdueLoans(now time.Time) []models.Loan {
	var out []models.Loan
	for _, loan := range d.ActiveLoans("") {
		if d.IsOverdue(loan, now) {
			out = append(out, loan)
		}
	}
	return out
}

// Title returns the cached title for bookID, or its ID when unknown.
func (d *Desk) Title(bookID int64) string {
	if b, ok := d.cache.Book(bookID); ok {
		return b.Title
	}
	return "#" + strconv.FormatInt(bookID, 10)
}

// Borrower returns the cached name for userID, or its ID when unknown.
func (d *Desk) Borrower(userID int64) string {
	if u, ok := d.cache.User(userID); ok {
		return u.Name
	}
	return "#" + strconv.FormatInt(userID, 10)
}
