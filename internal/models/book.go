package models

import "strconv"

// Book represents a title held by the library.
type Book struct {
	// ID is the store-assigned identifier. Its decimal form is the payload
	// printed on the book's code label.
	ID int64 `json:"id" db:"id"`

	// Title is the book title.
	Title string `json:"title" db:"title"`

	// Author is the book author.
	Author string `json:"author" db:"author"`

	// ISBN is optional. An empty ISBN is stored as NULL so that the unique
	// constraint only applies to real values.
	ISBN string `json:"isbn,omitempty" db:"isbn"`

	// CoverImageURL is an optional link to a cover picture.
	CoverImageURL string `json:"cover_image_url,omitempty" db:"cover_image_url"`

	// Summary is an optional free-text description.
	Summary string `json:"summary,omitempty" db:"summary"`

	// IsAvailable is false while the book is on an active loan.
	IsAvailable bool `json:"is_available" db:"is_available"`
}

// Code returns the scannable payload for the book.
func (b Book) Code() string {
	return strconv.FormatInt(b.ID, 10)
}
