package models

// Admin represents a library administrator account.
type Admin struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id" db:"id"`

	// Email is the admin's email address (unique).
	Email string `json:"email" db:"email"`

	// Name is the display name.
	Name string `json:"name" db:"name"`

	// PasswordHash is the bcrypt hash of the admin's password.
	// It never leaves the server.
	PasswordHash string `json:"-" db:"password_hash"`

	// IsSuperadmin marks the account created during initial setup.
	IsSuperadmin bool `json:"is_superadmin" db:"is_superadmin"`
}
