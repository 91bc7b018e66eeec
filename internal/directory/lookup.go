package directory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/librarian/internal/models"
)

// LookupMiss is returned when a scanned or typed identifier matches no
// record. It is never fatal; the caller keeps the raw input for correction.
type LookupMiss struct {
	Kind  string // "book" or "user"
	Input string
}

func (e *LookupMiss) Error() string {
	return fmt.Sprintf("no %s with code %q", e.Kind, e.Input)
}

// MatchBook reports whether query matches the book's title (ignoring case),
// its ISBN or its decimal ID. An empty query matches every book.
func MatchBook(b models.Book, query string) bool {
	if strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) {
		return true
	}
	if b.ISBN != "" && strings.Contains(b.ISBN, query) {
		return true
	}
	return strings.Contains(b.Code(), query)
}

// MatchUser reports whether query matches the user's name (ignoring case)
// or phone.
func MatchUser(u models.User, query string) bool {
	if strings.Contains(strings.ToLower(u.Name), strings.ToLower(query)) {
		return true
	}
	return u.Phone != "" && strings.Contains(u.Phone, query)
}

// FilterBooks returns the books matching query, in directory order.
func FilterBooks(books []models.Book, query string) []models.Book {
	var out []models.Book
	for _, b := range books {
		if MatchBook(b, query) {
			out = append(out, b)
		}
	}
	return out
}

// FilterUsers returns the users matching query, in directory order.
func FilterUsers(users []models.User, query string) []models.User {
	var out []models.User
	for _, u := range users {
		if MatchUser(u, query) {
			out = append(out, u)
		}
	}
	return out
}

// ExactBook returns the book whose decimal ID equals the trimmed input.
func ExactBook(books []models.Book, input string) (models.Book, bool) {
	id, ok := parseID(input)
	if !ok {
		return models.Book{}, false
	}
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return models.Book{}, false
}

// ExactUser returns the user whose decimal ID equals the trimmed input.
func ExactUser(users []models.User, input string) (models.User, bool) {
	id, ok := parseID(input)
	if !ok {
		return models.User{}, false
	}
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// ScanBook resolves a decoded code payload to a book.
func ScanBook(books []models.Book, payload string) (models.Book, error) {
	payload = strings.TrimSpace(payload)
	if b, ok := ExactBook(books, payload); ok {
		return b, nil
	}
	return models.Book{}, &LookupMiss{Kind: "book", Input: payload}
}

// parseID accepts only the canonical decimal form, so "042" or "+42" are not
// treated as an exact match for 42.
func parseID(input string) (int64, bool) {
	input = strings.TrimSpace(input)
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil || strconv.FormatInt(id, 10) != input {
		return 0, false
	}
	return id, true
}
