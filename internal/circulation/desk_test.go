package circulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/librarian/internal/directory"
	"github.com/mmynk/librarian/internal/duedate"
	"github.com/mmynk/librarian/internal/errmap"
	"github.com/mmynk/librarian/internal/models"
)

// fakeBackend is an in-memory persistence boundary.
type fakeBackend struct {
	books  []models.Book
	users  []models.User
	loans  []models.Loan
	nextID int64

	createErr error
	returnErr error
	calls     int
	listCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		books: []models.Book{
			{ID: 1, Title: "Dune", Author: "Herbert", IsAvailable: true},
			{ID: 42, Title: "The Hobbit", Author: "Tolkien", IsAvailable: true},
			{ID: 7, Title: "Emma", Author: "Austen", IsAvailable: false},
		},
		users: []models.User{
			{ID: 1, Name: "Sara", Phone: "0551234567"},
			{ID: 2, Name: "Omar"},
		},
		nextID: 1,
	}
}

func (f *fakeBackend) ListBooks(context.Context) ([]models.Book, error) {
	out := make([]models.Book, len(f.books))
	copy(out, f.books)
	return out, nil
}

func (f *fakeBackend) ListUsers(context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeBackend) ListLoans(context.Context) ([]models.Loan, error) {
	f.listCalls++
	out := make([]models.Loan, len(f.loans))
	copy(out, f.loans)
	return out, nil
}

func (f *fakeBackend) CreateLoan(_ context.Context, req models.LoanRequest) (*models.Loan, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	loan := models.Loan{ID: f.nextID, BookID: req.BookID, UserID: req.UserID, DueDate: req.DueDate, LoanDate: 1}
	f.nextID++
	f.loans = append(f.loans, loan)
	f.setAvailable(req.BookID, false)
	return &loan, nil
}

func (f *fakeBackend) ReturnLoan(_ context.Context, id int64) (*models.Loan, error) {
	f.calls++
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	for i := range f.loans {
		if f.loans[i].ID == id {
			ts := int64(2)
			f.loans[i].ReturnDate = &ts
			f.setAvailable(f.loans[i].BookID, true)
			loan := f.loans[i]
			return &loan, nil
		}
	}
	return nil, &errmap.RemoteError{Message: "Loan not found"}
}

func (f *fakeBackend) setAvailable(id int64, v bool) {
	for i := range f.books {
		if f.books[i].ID == id {
			f.books[i].IsAvailable = v
		}
	}
}

var fixedNow = time.Date(2024, 1, 25, 10, 0, 0, 0, time.UTC)

func newTestDesk(t *testing.T, opts ...Option) (*Desk, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	}, opts...)
	desk := NewDesk(backend, opts...)
	require.NoError(t, desk.Load(context.Background()))
	return desk, backend
}

func TestFormDuration(t *testing.T) {
	desk, _ := newTestDesk(t)
	form := desk.Form()

	assert.Equal(t, duedate.TwoWeeks, form.Duration())
	assert.Equal(t, "2024-02-08", form.DueDate())

	form.EditDueDate("2024-05-01")
	assert.Equal(t, duedate.Custom, form.Duration())
	assert.Equal(t, "2024-05-01", form.DueDate())

	form.SelectDuration(duedate.Custom)
	assert.Equal(t, "2024-05-01", form.DueDate(), "custom keeps the typed date")

	form.SelectDuration(duedate.TwoWeeks)
	assert.Equal(t, "2024-02-08", form.DueDate())

	form.SelectDuration(duedate.OneWeek)
	assert.Equal(t, "2024-02-01", form.DueDate())
}

func TestFormSearch(t *testing.T) {
	desk, _ := newTestDesk(t)
	form := desk.Form()

	t.Run("exact ID auto-selects", func(t *testing.T) {
		form.SetBookSearch("42")
		assert.Equal(t, int64(42), form.BookID())

		form.SetUserSearch("2")
		assert.Equal(t, int64(2), form.UserID())
	})

	t.Run("partial text keeps selection and filters", func(t *testing.T) {
		form.SetBookSearch("hob")
		assert.Equal(t, int64(42), form.BookID())
		require.Len(t, form.BookMatches(), 1)
		assert.Equal(t, "The Hobbit", form.BookMatches()[0].Title)
	})

	t.Run("clearing text clears selection", func(t *testing.T) {
		form.SetBookSearch("")
		assert.Zero(t, form.BookID())
		form.SetUserSearch("  ")
		assert.Zero(t, form.UserID())
	})

	t.Run("unavailable book warns but stays selectable", func(t *testing.T) {
		form.SetBookSearch("7")
		assert.Equal(t, int64(7), form.BookID())
		msg, warn := form.Warning()
		assert.True(t, warn)
		assert.Equal(t, MsgBookUnavailable, msg)

		form.SetBookSearch("1")
		_, warn = form.Warning()
		assert.False(t, warn)
	})
}

func TestFormScan(t *testing.T) {
	desk, backend := newTestDesk(t)
	form := desk.Form()

	_, err := desk.CreateLoan(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, form.Errors(), FieldBookID)

	t.Run("hit selects and clears book error", func(t *testing.T) {
		require.NoError(t, form.ApplyScan("42"))
		assert.Equal(t, int64(42), form.BookID())
		assert.Equal(t, "The Hobbit", form.BookSearch())
		assert.NotContains(t, form.Errors(), FieldBookID)
		assert.Contains(t, form.Errors(), FieldUserID)
	})

	t.Run("miss leaves selection and keeps payload", func(t *testing.T) {
		err := form.ApplyScan(" 999 ")
		var miss *directory.LookupMiss
		require.ErrorAs(t, err, &miss)
		assert.Equal(t, "999", miss.Input)
		assert.Equal(t, int64(42), form.BookID())
		assert.Equal(t, "999", form.BookSearch())
	})

	assert.Equal(t, 0, backend.calls)
}

func TestCreateLoanValidation(t *testing.T) {
	desk, backend := newTestDesk(t)
	form := desk.Form()

	form.SetBookSearch("1")
	_, err := desk.CreateLoan(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.Remote)
	assert.Equal(t, map[string]string{FieldUserID: MsgSelectUser}, verr.Fields)
	assert.Equal(t, verr.Fields, form.Errors())
	assert.Equal(t, 0, backend.calls, "nothing may be sent")

	t.Run("errors are replaced, not merged", func(t *testing.T) {
		form.SetUserSearch("1")
		form.SetBookSearch("")
		_, err := desk.CreateLoan(context.Background())
		require.Error(t, err)
		assert.Equal(t, map[string]string{FieldBookID: MsgSelectBook}, form.Errors())
	})

	t.Run("empty due date", func(t *testing.T) {
		form.SetBookSearch("1")
		form.EditDueDate("")
		_, err := desk.CreateLoan(context.Background())
		require.Error(t, err)
		assert.Equal(t, map[string]string{FieldDueDate: MsgSelectDueDate}, form.Errors())
	})
}

func TestCreateAndReturnLoan(t *testing.T) {
	for _, policy := range []RefreshPolicy{RefreshFull, RefreshDelta} {
		name := map[RefreshPolicy]string{RefreshFull: "full", RefreshDelta: "delta"}[policy]
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			desk, backend := newTestDesk(t, WithRefreshPolicy(policy))
			form := desk.Form()

			form.SetBookSearch("42")
			form.SetUserSearch("1")
			form.EditDueDate("2024-03-01")

			loan, err := desk.CreateLoan(ctx)
			require.NoError(t, err)
			assert.Equal(t, "2024-03-01", loan.DueDate)

			// Form back to defaults.
			assert.Zero(t, form.BookID())
			assert.Zero(t, form.UserID())
			assert.Empty(t, form.BookSearch())
			assert.Equal(t, duedate.TwoWeeks, form.Duration())
			assert.Equal(t, "2024-02-08", form.DueDate())

			book, _ := desk.Directory().Book(42)
			assert.False(t, book.IsAvailable)
			require.Len(t, desk.ActiveLoans(""), 1)

			listCalls := backend.listCalls
			_, err = desk.ReturnLoan(ctx, loan.ID)
			require.NoError(t, err)
			assert.Empty(t, desk.ActiveLoans(""))
			assert.Len(t, desk.Loans(), 1)

			book, _ = desk.Directory().Book(42)
			assert.True(t, book.IsAvailable)

			if policy == RefreshDelta {
				assert.Equal(t, listCalls, backend.listCalls, "delta must not refetch")
			} else {
				assert.Greater(t, backend.listCalls, listCalls)
			}
		})
	}
}

func TestCreateLoanRemoteFailure(t *testing.T) {
	ctx := context.Background()

	fill := func(desk *Desk) {
		desk.Form().SetBookSearch("42")
		desk.Form().SetUserSearch("1")
	}

	t.Run("structured failure maps to fields and keeps draft", func(t *testing.T) {
		desk, backend := newTestDesk(t)
		fill(desk)
		backend.createErr = &errmap.RemoteError{Violations: []errmap.Violation{
			{Loc: []string{"body", "due_date"}, Msg: "invalid date format"},
		}}

		_, err := desk.CreateLoan(ctx)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Remote)
		assert.Equal(t, map[string]string{"due_date": "invalid date format"}, desk.Form().Errors())
		assert.Equal(t, int64(42), desk.Form().BookID())
		assert.Equal(t, int64(1), desk.Form().UserID())
	})

	t.Run("unstructured failure is a notice", func(t *testing.T) {
		desk, backend := newTestDesk(t)
		fill(desk)
		backend.createErr = &errmap.RemoteError{Message: "Book is already loaned"}

		_, err := desk.CreateLoan(ctx)
		var notice *Notice
		require.ErrorAs(t, err, &notice)
		assert.Equal(t, OpCreateLoan, notice.Op)
		assert.Equal(t, "Error: Book is already loaned", notice.Message)
		assert.Empty(t, desk.Form().Errors())
		assert.Equal(t, int64(42), desk.Form().BookID())
	})

	t.Run("transport failure is a generic notice", func(t *testing.T) {
		desk, backend := newTestDesk(t, WithCatalog(NewCatalog("ar")))
		fill(desk)
		cause := errors.New("connection refused")
		backend.createErr = cause

		_, err := desk.CreateLoan(ctx)
		var notice *Notice
		require.ErrorAs(t, err, &notice)
		assert.Equal(t, "حدث خطأ غير متوقع أثناء إنشاء الإعارة", notice.Message)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("field errors from an earlier submit do not survive a notice", func(t *testing.T) {
		desk, backend := newTestDesk(t)
		desk.Form().SetBookSearch("42")

		_, err := desk.CreateLoan(ctx)
		require.Error(t, err)
		require.Equal(t, map[string]string{FieldUserID: MsgSelectUser}, desk.Form().Errors())

		desk.Form().SetUserSearch("1")
		backend.createErr = &errmap.RemoteError{Message: "Book is already loaned"}

		_, err = desk.CreateLoan(ctx)
		var notice *Notice
		require.ErrorAs(t, err, &notice)
		assert.Empty(t, desk.Form().Errors())
	})
}

func TestPickedSelectionSurvivesRefresh(t *testing.T) {
	ctx := context.Background()
	desk, backend := newTestDesk(t)
	backend.books = append(backend.books, models.Book{ID: 9, Title: "42", Author: "Adams", IsAvailable: true})
	backend.users = append(backend.users, models.User{ID: 3, Name: "1"})
	require.NoError(t, desk.Load(ctx))
	form := desk.Form()

	book, ok := desk.Directory().Book(9)
	require.True(t, ok)
	form.SelectBook(book)
	user, ok := desk.Directory().User(3)
	require.True(t, ok)
	form.SelectUser(user)

	require.NoError(t, desk.Load(ctx))
	assert.Equal(t, int64(9), form.BookID(), "a numeric title must not re-select by ID")
	assert.Equal(t, int64(3), form.UserID())

	require.NoError(t, form.ApplyScan("9"))
	require.NoError(t, desk.Load(ctx))
	assert.Equal(t, int64(9), form.BookID())

	t.Run("typing the text again follows the ID", func(t *testing.T) {
		form.SetBookSearch("42")
		assert.Equal(t, int64(42), form.BookID())
	})
}

func TestReturnLoanFailure(t *testing.T) {
	desk, backend := newTestDesk(t)
	backend.loans = []models.Loan{{ID: 5, BookID: 7, UserID: 2, DueDate: "2024-01-01"}}
	require.NoError(t, desk.Load(context.Background()))

	backend.returnErr = errors.New("timeout")
	_, err := desk.ReturnLoan(context.Background(), 5)

	var notice *Notice
	require.ErrorAs(t, err, &notice)
	assert.Equal(t, OpReturnLoan, notice.Op)
	assert.Equal(t, MsgReturnLoanFailed, notice.Message)
	assert.Len(t, desk.ActiveLoans(""), 1)
}

func TestActiveLoans(t *testing.T) {
	desk, backend := newTestDesk(t)
	returned := int64(100)
	backend.loans = []models.Loan{
		{ID: 1, BookID: 1, UserID: 1, DueDate: "2024-02-01"},
		{ID: 2, BookID: 42, UserID: 2, DueDate: "2024-02-01", ReturnDate: &returned},
		{ID: 13, BookID: 7, UserID: 2, DueDate: "2024-02-01"},
	}
	require.NoError(t, desk.Load(context.Background()))

	ids := func(loans []models.Loan) []int64 {
		var out []int64
		for _, l := range loans {
			out = append(out, l.ID)
		}
		return out
	}

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 13}},
		{"DUNE", []int64{1}},
		{"omar", []int64{13}},
		{"1", []int64{1, 13}},
		// Loan 2 matches by title and borrower but is returned.
		{"hobbit", nil},
		{"2", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(desk.ActiveLoans(tt.query)))
		})
	}
}

func TestOverdue(t *testing.T) {
	desk, _ := newTestDesk(t)
	now := fixedNow
	returned := now.Unix()

	yesterday := models.Loan{ID: 1, DueDate: now.AddDate(0, 0, -1).Format(models.DateLayout)}
	assert.True(t, desk.IsOverdue(yesterday, now))

	yesterday.ReturnDate = &returned
	assert.False(t, desk.IsOverdue(yesterday, now))

	tomorrow := models.Loan{ID: 2, DueDate: now.AddDate(0, 0, 1).Format(models.DateLayout)}
	assert.False(t, desk.IsOverdue(tomorrow, now))

	today := models.Loan{ID: 3, DueDate: now.Format(models.DateLayout)}
	assert.True(t, desk.IsOverdue(today, now), "midnight of the due date has passed")
	assert.False(t, desk.IsOverdue(today, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)))

	garbage := models.Loan{ID: 4, DueDate: "soon"}
	assert.False(t, desk.IsOverdue(garbage, now))

	t.Run("due date is midnight in the desk location", func(t *testing.T) {
		riyadh := time.FixedZone("AST", 3*60*60)
		desk, _ := newTestDesk(t, WithLocation(riyadh))
		due := models.Loan{ID: 5, DueDate: "2024-01-26"}

		// 22:00 UTC on the 25th is already 01:00 on the 26th in the desk zone.
		late := time.Date(2024, 1, 25, 22, 0, 0, 0, time.UTC)
		assert.True(t, desk.IsOverdue(due, late))
		assert.Equal(t, due.Overdue(late.In(riyadh)), desk.IsOverdue(due, late))
		assert.False(t, due.Overdue(late), "in UTC the 26th has not started")
	})
}

func TestOverdueLoans(t *testing.T) {
	desk, backend := newTestDesk(t)
	returned := int64(1)
	backend.loans = []models.Loan{
		{ID: 1, BookID: 1, DueDate: "2024-01-20"},
		{ID: 2, BookID: 42, DueDate: "2024-01-10", ReturnDate: &returned},
		{ID: 3, BookID: 7, DueDate: "2024-02-20"},
	}
	require.NoError(t, desk.Load(context.Background()))

	overdue := desk.OverdueLoans(fixedNow)
	require.Len(t, overdue, 1)
	assert.Equal(t, int64(1), overdue[0].ID)
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, "Please select a book", NewCatalog("en").Text(MsgSelectBook))
	assert.Equal(t, "يرجى اختيار كتاب", NewCatalog("ar-SA").Text(MsgSelectBook))
	assert.Equal(t, "Please select a user", NewCatalog("fr").Text(MsgSelectUser))
	assert.Equal(t, "No book found with code: 9", NewCatalog("").Text(MsgBookNotFound, "9"))
	assert.Equal(t, "لم يتم العثور على الكتاب بهذا الرمز: 9", NewCatalog("ar").Text(MsgBookNotFound, "9"))
}
