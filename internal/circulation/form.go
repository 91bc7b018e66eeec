package circulation

import (
	"maps"
	"strings"
	"time"

	"github.com/mmynk/librarian/internal/directory"
	"github.com/mmynk/librarian/internal/duedate"
	"github.com/mmynk/librarian/internal/models"
)

// Form is the loan draft being filled in at the desk.
//
// Book and user selections follow the search text: whenever the text (or
// the directory behind it) changes, a text equal to a record's ID selects
// that record, and an empty text clears the selection. A record picked from
// the results or by scan holds until the text is edited again.
type Form struct {
	cache *directory.Cache
	cat   *Catalog
	today func() time.Time

	duration   duedate.Duration
	dueDate    string
	bookID     int64
	userID     int64
	bookSearch string
	userSearch string
	errors     map[string]string

	// set while the search text is a picked record's label, not typed input
	bookPicked bool
	userPicked bool
}

func newForm(cache *directory.Cache, cat *Catalog, today func() time.Time) *Form {
	f := &Form{cache: cache, cat: cat, today: today}
	f.Reset()
	return f
}

// Reset returns the form to its defaults: two weeks from today, nothing
// selected, no errors.
func (f *Form) Reset() {
	f.bookID, f.userID = 0, 0
	f.bookSearch, f.userSearch = "", ""
	f.bookPicked, f.userPicked = false, false
	f.errors = nil
	f.SelectDuration(duedate.Default)
}

// SelectDuration picks a loan length. A fixed duration overwrites the due
// date, including one typed in by hand.
func (f *Form) SelectDuration(d duedate.Duration) {
	f.duration = d
	if date, ok := duedate.Resolve(f.today(), d); ok {
		f.dueDate = date
	}
}

// EditDueDate sets the due date directly and switches the duration to
// custom so the date is not recomputed behind the librarian's back.
func (f *Form) EditDueDate(date string) {
	f.dueDate = strings.TrimSpace(date)
	f.duration = duedate.Custom
}

// SetBookSearch updates the book search text.
func (f *Form) SetBookSearch(text string) {
	f.bookSearch = text
	f.bookPicked = false
	f.syncBook()
}

// SetUserSearch updates the user search text.
func (f *Form) SetUserSearch(text string) {
	f.userSearch = text
	f.userPicked = false
	f.syncUser()
}

// SelectBook picks a book from the search results.
func (f *Form) SelectBook(b models.Book) {
	f.bookID = b.ID
	f.bookSearch = b.Title
	f.bookPicked = true
}

// SelectUser picks a user from the search results.
func (f *Form) SelectUser(u models.User) {
	f.userID = u.ID
	f.userSearch = u.Name
	f.userPicked = true
}

// ApplyScan resolves a decoded code payload. On a hit the book is selected
// and its field error cleared; on a miss the raw payload is left in the
// search text and a *directory.LookupMiss is returned.
func (f *Form) ApplyScan(payload string) error {
	book, err := directory.ScanBook(f.cache.Books(), payload)
	if err != nil {
		f.bookSearch = strings.TrimSpace(payload)
		f.bookPicked = false
		return err
	}
	f.SelectBook(book)
	delete(f.errors, FieldBookID)
	return nil
}

// BookMatches returns the books matching the current search text.
func (f *Form) BookMatches() []models.Book {
	return directory.FilterBooks(f.cache.Books(), f.bookSearch)
}

// UserMatches returns the users matching the current search text.
func (f *Form) UserMatches() []models.User {
	return directory.FilterUsers(f.cache.Users(), f.userSearch)
}

// Warning returns the soft availability warning for the selected book.
func (f *Form) Warning() (string, bool) {
	return AvailabilityWarning(f.cache, f.bookID, f.cat)
}

// Request returns the draft as it would be submitted.
func (f *Form) Request() models.LoanRequest {
	return models.LoanRequest{BookID: f.bookID, UserID: f.userID, DueDate: f.dueDate}
}

func (f *Form) Duration() duedate.Duration { return f.duration }
func (f *Form) DueDate() string            { return f.dueDate }
func (f *Form) BookID() int64              { return f.bookID }
func (f *Form) UserID() int64              { return f.userID }
func (f *Form) BookSearch() string         { return f.bookSearch }
func (f *Form) UserSearch() string         { return f.userSearch }

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	return maps.Clone(f.errors)
}

// setErrors replaces the error set; stale errors are never merged in.
func (f *Form) setErrors(errs map[string]string) {
	f.errors = maps.Clone(errs)
}

// resync re-runs exact-ID selection after the directory changed. Picked
// records are left alone: their search text is a title or name.
func (f *Form) resync() {
	if !f.bookPicked {
		f.syncBook()
	}
	if !f.userPicked {
		f.syncUser()
	}
}

func (f *Form) syncBook() {
	if strings.TrimSpace(f.bookSearch) == "" {
		f.bookID = 0
		return
	}
	if b, ok := directory.ExactBook(f.cache.Books(), f.bookSearch); ok {
		f.bookID = b.ID
	}
}

func (f *Form) syncUser() {
	if strings.TrimSpace(f.userSearch) == "" {
		f.userID = 0
		return
	}
	if u, ok := directory.ExactUser(f.cache.Users(), f.userSearch); ok {
		f.userID = u.ID
	}
}
