package models

// User represents a borrower.
//
// Borrowers do not log in; they are managed by admins at the front desk.
type User struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id" db:"id"`

	// Name is the borrower's display name. Required.
	Name string `json:"name" db:"name"`

	// Email is optional and unique when present.
	Email string `json:"email,omitempty" db:"email"`

	// Phone is optional and unique when present.
	Phone string `json:"phone,omitempty" db:"phone"`
}
