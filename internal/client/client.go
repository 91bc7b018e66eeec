// Package client talks to the librarian server over Connect. It implements
// the circulation desk's Backend and exposes the catalog operations the
// command-line desk needs.
package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/errmap"
	"github.com/mmynk/librarian/internal/middleware"
	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/pkg/api"
)

// PageSize is the page the full-list calls fetch at a time: the largest
// the server hands out.
const PageSize = 1000

// Client wraps the generated-style service clients.
type Client struct {
	books  api.BookServiceClient
	users  api.UserServiceClient
	admins api.AdminServiceClient
	loans  api.LoanServiceClient
	stats  api.StatsServiceClient

	pageSize int
}

// New creates a client for the server at baseURL. A nil httpClient uses an
// http.Client with the given timeout.
func New(httpClient connect.HTTPClient, baseURL string, timeout time.Duration, opts ...connect.ClientOption) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	opts = append([]connect.ClientOption{
		connect.WithInterceptors(middleware.RequestIDInterceptor()),
	}, opts...)

	return &Client{
		books:  api.NewBookServiceClient(httpClient, baseURL, opts...),
		users:  api.NewUserServiceClient(httpClient, baseURL, opts...),
		admins: api.NewAdminServiceClient(httpClient, baseURL, opts...),
		loans:  api.NewLoanServiceClient(httpClient, baseURL, opts...),
		stats:  api.NewStatsServiceClient(httpClient, baseURL, opts...),

		pageSize: PageSize,
	}
}

// collect pages through a list call until a short page comes back.
func collect[T any](ctx context.Context, size int, fetch func(context.Context, api.PageRequest) ([]T, error)) ([]T, error) {
	all := []T{}
	for skip := 0; ; skip += size {
		items, err := fetch(ctx, api.PageRequest{Skip: skip, Limit: size})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < size {
			return all, nil
		}
	}
}

// remote converts an error the server answered with into an
// *errmap.RemoteError. Transport failures are returned as they are.
func remote(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || !connect.IsWireError(connectErr) {
		return err
	}

	if violations, ok := api.ViolationsFromError(connectErr); ok {
		out := make([]errmap.Violation, len(violations))
		for i, v := range violations {
			out[i] = errmap.Violation{Loc: v.Loc, Msg: v.Msg}
		}
		return &errmap.RemoteError{Violations: out, Message: connectErr.Message(), Err: connectErr}
	}

	return &errmap.RemoteError{Message: connectErr.Message(), Err: connectErr}
}

// Code returns the Connect code behind err, or connect.CodeUnknown.
func Code(err error) connect.Code {
	return connect.CodeOf(err)
}

// Books

// ListBooks returns every book.
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	return collect(ctx, c.pageSize, func(ctx context.Context, page api.PageRequest) ([]models.Book, error) {
		res, err := c.books.ListBooks(ctx, connect.NewRequest(&api.ListBooksRequest{PageRequest: page}))
		if err != nil {
			return nil, remote(err)
		}
		return res.Msg.Books, nil
	})
}

// SearchBooks lists books matching query on the server. A limit of zero
// uses the server default.
func (c *Client) SearchBooks(ctx context.Context, query string, limit int) ([]models.Book, error) {
	res, err := c.books.ListBooks(ctx, connect.NewRequest(&api.ListBooksRequest{
		Query:       query,
		PageRequest: api.PageRequest{Limit: limit},
	}))
	if err != nil {
		return nil, remote(err)
	}
	return res.Msg.Books, nil
}

func (c *Client) CreateBook(ctx context.Context, req api.CreateBookRequest) (*models.Book, error) {
	res, err := c.books.CreateBook(ctx, connect.NewRequest(&req))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.Book, nil
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	_, err := c.books.DeleteBook(ctx, connect.NewRequest(&api.IDRequest{ID: id}))
	return remote(err)
}

// BookCode returns the payload printed on the book's code label.
func (c *Client) BookCode(ctx context.Context, id int64) (string, error) {
	res, err := c.books.GetBookCode(ctx, connect.NewRequest(&api.IDRequest{ID: id}))
	if err != nil {
		return "", remote(err)
	}
	return res.Msg.Payload, nil
}

// Users

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return collect(ctx, c.pageSize, func(ctx context.Context, page api.PageRequest) ([]models.User, error) {
		res, err := c.users.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{PageRequest: page}))
		if err != nil {
			return nil, remote(err)
		}
		return res.Msg.Users, nil
	})
}

func (c *Client) CreateUser(ctx context.Context, req api.CreateUserRequest) (*models.User, error) {
	res, err := c.users.CreateUser(ctx, connect.NewRequest(&req))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.users.DeleteUser(ctx, connect.NewRequest(&api.IDRequest{ID: id}))
	return remote(err)
}

// Admins

func (c *Client) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	res, err := c.admins.ListAdmins(ctx, connect.NewRequest(&api.ListAdminsRequest{}))
	if err != nil {
		return nil, remote(err)
	}
	return res.Msg.Admins, nil
}

func (c *Client) CreateAdmin(ctx context.Context, req api.CreateAdminRequest) (*models.Admin, error) {
	res, err := c.admins.CreateAdmin(ctx, connect.NewRequest(&req))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.Admin, nil
}

// UpdateAdmin updates an admin. An empty password keeps the current one.
func (c *Client) UpdateAdmin(ctx context.Context, req api.UpdateAdminRequest) (*models.Admin, error) {
	res, err := c.admins.UpdateAdmin(ctx, connect.NewRequest(&req))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.Admin, nil
}

func (c *Client) DeleteAdmin(ctx context.Context, id int64) error {
	_, err := c.admins.DeleteAdmin(ctx, connect.NewRequest(&api.IDRequest{ID: id}))
	return remote(err)
}

// Loans

// ListLoans returns every loan, returned ones included.
func (c *Client) ListLoans(ctx context.Context) ([]models.Loan, error) {
	return c.BorrowerLoans(ctx, 0, false)
}

// BorrowerLoans returns the loans of userID, or of everyone when userID is
// zero. activeOnly leaves out returned loans.
func (c *Client) BorrowerLoans(ctx context.Context, userID int64, activeOnly bool) ([]models.Loan, error) {
	return collect(ctx, c.pageSize, func(ctx context.Context, page api.PageRequest) ([]models.Loan, error) {
		res, err := c.loans.ListLoans(ctx, connect.NewRequest(&api.ListLoansRequest{
			ActiveOnly:  activeOnly,
			UserID:      userID,
			PageRequest: page,
		}))
		if err != nil {
			return nil, remote(err)
		}
		return res.Msg.Loans, nil
	})
}

func (c *Client) CreateLoan(ctx context.Context, req models.LoanRequest) (*models.Loan, error) {
	res, err := c.loans.CreateLoan(ctx, connect.NewRequest(&api.CreateLoanRequest{
		BookID:  req.BookID,
		UserID:  req.UserID,
		DueDate: req.DueDate,
	}))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.Loan, nil
}

func (c *Client) ReturnLoan(ctx context.Context, id int64) (*models.Loan, error) {
	res, err := c.loans.ReturnLoan(ctx, connect.NewRequest(&api.IDRequest{ID: id}))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.Loan, nil
}

// Stats

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	res, err := c.stats.GetStats(ctx, connect.NewRequest(&api.Empty{}))
	if err != nil {
		return nil, remote(err)
	}
	return &res.Msg.Stats, nil
}
