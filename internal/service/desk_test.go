package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/mmynk/librarian/internal/circulation"
	"github.com/mmynk/librarian/internal/client"
	"github.com/mmynk/librarian/internal/models"
)

// TestDeskEndToEnd drives the circulation desk against a real server.
func TestDeskEndToEnd(t *testing.T) {
	c := setupTestServer(t, time.Now())
	ctx := context.Background()

	bookID := createBook(t, c, "X")
	userID := createUser(t, c, "Y")

	remote := client.New(http.DefaultClient, c.url, 0)
	desk := circulation.NewDesk(remote)
	if err := desk.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	form := desk.Form()
	form.SetBookSearch("1")
	form.SetUserSearch("1")
	form.EditDueDate("2024-03-01")
	if form.BookID() != bookID || form.UserID() != userID {
		t.Fatalf("expected exact IDs to select book %d and user %d, got %d and %d",
			bookID, userID, form.BookID(), form.UserID())
	}

	loan, err := desk.CreateLoan(ctx)
	if err != nil {
		t.Fatalf("CreateLoan failed: %v", err)
	}

	book, ok := desk.Directory().Book(bookID)
	if !ok || book.IsAvailable {
		t.Errorf("expected book to be unavailable in refreshed directory, got %+v", book)
	}
	active := desk.ActiveLoans("")
	if len(active) != 1 || active[0].ID != loan.ID {
		t.Fatalf("expected loan %d in active list, got %+v", loan.ID, active)
	}
	if !desk.IsOverdue(active[0], time.Now()) {
		t.Error("expected a 2024 due date to be overdue")
	}

	t.Run("second loan for the same book is a notice", func(t *testing.T) {
		form.SetBookSearch("1")
		form.SetUserSearch("1")
		_, err := desk.CreateLoan(ctx)
		var notice *circulation.Notice
		if !errors.As(err, &notice) {
			t.Fatalf("expected notice, got %v", err)
		}
		if notice.Message != "Error: Book is already loaned" {
			t.Errorf("unexpected notice %q", notice.Message)
		}
		if form.BookID() != bookID {
			t.Error("expected draft to be kept")
		}
	})

	t.Run("server field errors land on the form", func(t *testing.T) {
		form.EditDueDate("next week")
		_, err := desk.CreateLoan(ctx)
		var verr *circulation.ValidationError
		if !errors.As(err, &verr) || !verr.Remote {
			t.Fatalf("expected remote validation error, got %v", err)
		}
		if _, ok := form.Errors()[circulation.FieldDueDate]; !ok || len(form.Errors()) != 1 {
			t.Errorf("expected only a due_date error, got %v", form.Errors())
		}
	})

	if _, err := desk.ReturnLoan(ctx, loan.ID); err != nil {
		t.Fatalf("ReturnLoan failed: %v", err)
	}
	if active := desk.ActiveLoans(""); len(active) != 0 {
		t.Errorf("expected no active loans after return, got %+v", active)
	}
	if book, _ := desk.Directory().Book(bookID); !book.IsAvailable {
		t.Error("expected book to be available after return")
	}

	t.Run("returning twice is a notice", func(t *testing.T) {
		_, err := desk.ReturnLoan(ctx, loan.ID)
		var notice *circulation.Notice
		if !errors.As(err, &notice) || notice.Op != circulation.OpReturnLoan {
			t.Fatalf("expected return notice, got %v", err)
		}
		if client.Code(err).String() != "failed_precondition" {
			t.Errorf("expected failed_precondition, got %v", client.Code(err))
		}
	})
}

// TestDeskSeesBeyondFirstPage checks that the desk snapshots are the full
// lists, not the server's default page of 100.
func TestDeskSeesBeyondFirstPage(t *testing.T) {
	c := setupTestServer(t, time.Now())
	ctx := context.Background()

	var lastBook int64
	for i := range 101 {
		lastBook = createBook(t, c, "Book "+strconv.Itoa(i+1))
	}
	userID := createUser(t, c, "Reader")

	remote := client.New(http.DefaultClient, c.url, 0)
	for range 100 {
		loan, err := remote.CreateLoan(ctx, models.LoanRequest{BookID: 1, UserID: userID, DueDate: "2030-01-01"})
		if err != nil {
			t.Fatalf("CreateLoan failed: %v", err)
		}
		if _, err := remote.ReturnLoan(ctx, loan.ID); err != nil {
			t.Fatalf("ReturnLoan failed: %v", err)
		}
	}

	desk := circulation.NewDesk(remote)
	if err := desk.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(desk.Directory().Books()); got != 101 {
		t.Fatalf("expected 101 books in the directory, got %d", got)
	}
	if got := len(desk.Loans()); got != 100 {
		t.Fatalf("expected 100 past loans, got %d", got)
	}

	form := desk.Form()
	if err := form.ApplyScan(strconv.FormatInt(lastBook, 10)); err != nil {
		t.Fatalf("scan of book %d failed: %v", lastBook, err)
	}
	form.SetUserSearch(strconv.FormatInt(userID, 10))

	loan, err := desk.CreateLoan(ctx)
	if err != nil {
		t.Fatalf("CreateLoan failed: %v", err)
	}
	active := desk.ActiveLoans("")
	if len(active) != 1 || active[0].ID != loan.ID {
		t.Errorf("expected loan %d to be the only active loan, got %+v", loan.ID, active)
	}

	mine, err := remote.BorrowerLoans(ctx, userID, true)
	if err != nil {
		t.Fatalf("BorrowerLoans failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != loan.ID {
		t.Errorf("expected only loan %d for the borrower, got %+v", loan.ID, mine)
	}
}
