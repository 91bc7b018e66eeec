package circulation

import (
	"github.com/mmynk/librarian/internal/directory"
	"github.com/mmynk/librarian/internal/models"
)

// Validate checks a draft before it is submitted. It returns nil when the
// draft is complete.
func Validate(req models.LoanRequest, cat *Catalog) map[string]string {
	errs := make(map[string]string)
	if req.BookID == 0 {
		errs[FieldBookID] = cat.Text(MsgSelectBook)
	}
	if req.UserID == 0 {
		errs[FieldUserID] = cat.Text(MsgSelectUser)
	}
	if req.DueDate == "" {
		errs[FieldDueDate] = cat.Text(MsgSelectDueDate)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AvailabilityWarning returns a non-blocking warning when the cached
// directory already knows the book is on loan. The server still has the
// final say.
func AvailabilityWarning(cache *directory.Cache, bookID int64, cat *Catalog) (string, bool) {
	if bookID == 0 {
		return "", false
	}
	book, ok := cache.Book(bookID)
	if !ok || book.IsAvailable {
		return "", false
	}
	return cat.Text(MsgBookUnavailable), true
}
