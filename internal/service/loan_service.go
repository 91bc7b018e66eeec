package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/metrics"
	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
	"github.com/mmynk/librarian/pkg/api"
)

const (
	msgLoanNotFound = "Loan not found"
	msgInvalidDate  = "invalid date format, expected YYYY-MM-DD"
)

// LoanService implements the Connect LoanService.
type LoanService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewLoanService creates a new LoanService. m may be nil.
func NewLoanService(store storage.Store, m *metrics.Metrics) *LoanService {
	return &LoanService{store: store, metrics: m}
}

func validateLoanRequest(req *api.CreateLoanRequest) []api.Violation {
	var violations []api.Violation
	violations = positiveID(violations, "book_id", req.BookID)
	violations = positiveID(violations, "user_id", req.UserID)
	if req.DueDate == "" {
		violations = append(violations, api.BodyViolation("due_date", msgFieldRequired))
	} else if _, err := time.Parse(models.DateLayout, req.DueDate); err != nil {
		violations = append(violations, api.BodyViolation("due_date", msgInvalidDate))
	}
	return violations
}

// CreateLoan lends a book to a user.
func (s *LoanService) CreateLoan(ctx context.Context, req *connect.Request[api.CreateLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	slog.Info("CreateLoan request received",
		"book_id", req.Msg.BookID,
		"user_id", req.Msg.UserID,
		"due_date", req.Msg.DueDate,
	)

	if violations := validateLoanRequest(req.Msg); len(violations) > 0 {
		s.metrics.LoanRejected("invalid")
		return nil, api.NewValidationError(violations)
	}

	// Check the book first so an unknown book is not reported as an unknown user.
	book, err := s.store.GetBook(ctx, req.Msg.BookID)
	if err != nil {
		s.metrics.LoanRejected("not_found")
		slog.Warn("CreateLoan failed - book lookup", "book_id", req.Msg.BookID, "error", err)
		return nil, storeError(err, msgBookNotFound, msgBookNotFound)
	}
	if !book.IsAvailable {
		s.metrics.LoanRejected("unavailable")
		return nil, storeError(storage.ErrBookUnavailable, msgBookNotFound, msgBookNotFound)
	}

	loan := &models.Loan{
		BookID:  req.Msg.BookID,
		UserID:  req.Msg.UserID,
		DueDate: req.Msg.DueDate,
	}
	// The store re-checks availability atomically; a concurrent desk may have
	// taken the book since the lookup above.
	if err := s.store.CreateLoan(ctx, loan); err != nil {
		switch {
		case errors.Is(err, storage.ErrBookUnavailable):
			s.metrics.LoanRejected("unavailable")
		case errors.Is(err, storage.ErrNotFound):
			s.metrics.LoanRejected("not_found")
		}
		slog.Error("CreateLoan failed", "error", err)
		return nil, storeError(err, msgUserNotFound, msgBookNotFound)
	}

	s.metrics.LoanIssued()
	slog.Info("Loan created", "loan_id", loan.ID, "book_id", loan.BookID, "user_id", loan.UserID)

	return connect.NewResponse(&api.LoanResponse{Loan: *loan}), nil
}

// GetLoan retrieves a loan by ID.
func (s *LoanService) GetLoan(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.LoanResponse], error) {
	loan, err := s.store.GetLoan(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetLoan failed", "loan_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgLoanNotFound, msgLoanNotFound)
	}

	return connect.NewResponse(&api.LoanResponse{Loan: *loan}), nil
}

// ListLoans retrieves loans, optionally only active ones or one user's.
func (s *LoanService) ListLoans(ctx context.Context, req *connect.Request[api.ListLoansRequest]) (*connect.Response[api.ListLoansResponse], error) {
	slog.Info("ListLoans request received", "active_only", req.Msg.ActiveOnly, "user_id", req.Msg.UserID)

	loans, err := s.store.ListLoans(ctx, storage.LoanFilter{
		ActiveOnly: req.Msg.ActiveOnly,
		UserID:     req.Msg.UserID,
		Page:       storage.Page{Skip: req.Msg.Skip, Limit: req.Msg.Limit},
	})
	if err != nil {
		slog.Error("ListLoans failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListLoans successful", "count", len(loans))

	return connect.NewResponse(&api.ListLoansResponse{Loans: loans}), nil
}

// ReturnLoan closes an active loan.
func (s *LoanService) ReturnLoan(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.LoanResponse], error) {
	slog.Info("ReturnLoan request received", "loan_id", req.Msg.ID)

	loan, err := s.store.ReturnLoan(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("ReturnLoan failed", "loan_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgLoanNotFound, msgLoanNotFound)
	}

	s.metrics.LoanReturned()
	slog.Info("Loan returned", "loan_id", loan.ID, "book_id", loan.BookID)

	return connect.NewResponse(&api.LoanResponse{Loan: *loan}), nil
}
