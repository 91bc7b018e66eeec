package api

import "github.com/mmynk/librarian/internal/models"

// IDRequest addresses a single record.
type IDRequest struct {
	ID int64 `json:"id"`
}

// Empty is returned by operations with nothing to report.
type Empty struct{}

// PageRequest carries the paging bounds shared by list calls.
type PageRequest struct {
	Skip  int `json:"skip,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Books

type CreateBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Summary       string `json:"summary,omitempty"`
}

type UpdateBookRequest struct {
	ID int64 `json:"id"`
	CreateBookRequest
}

type BookResponse struct {
	Book models.Book `json:"book"`
}

type ListBooksRequest struct {
	Query string `json:"query,omitempty"`
	PageRequest
}

type ListBooksResponse struct {
	Books []models.Book `json:"books"`
}

// BookCodeResponse carries the text encoded in a book's printed code.
type BookCodeResponse struct {
	Payload string `json:"payload"`
}

// Users

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type UpdateUserRequest struct {
	ID int64 `json:"id"`
	CreateUserRequest
}

type UserResponse struct {
	User models.User `json:"user"`
}

type ListUsersRequest struct {
	Query string `json:"query,omitempty"`
	PageRequest
}

type ListUsersResponse struct {
	Users []models.User `json:"users"`
}

// Admins

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateAdminRequest leaves the stored password alone when Password is empty.
type UpdateAdminRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

type AdminResponse struct {
	Admin models.Admin `json:"admin"`
}

type ListAdminsRequest struct {
	PageRequest
}

type ListAdminsResponse struct {
	Admins []models.Admin `json:"admins"`
}

// Loans

type CreateLoanRequest struct {
	BookID  int64  `json:"book_id"`
	UserID  int64  `json:"user_id"`
	DueDate string `json:"due_date"`
}

type LoanResponse struct {
	Loan models.Loan `json:"loan"`
}

type ListLoansRequest struct {
	ActiveOnly bool  `json:"active_only,omitempty"`
	UserID     int64 `json:"user_id,omitempty"`
	PageRequest
}

type ListLoansResponse struct {
	Loans []models.Loan `json:"loans"`
}

// Stats

type StatsResponse struct {
	Stats models.Stats `json:"stats"`
}
