// Package directory holds the front desk's snapshots of books and users and
// the lookups run against them.
package directory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/librarian/internal/models"
)

// Source fetches full directory listings from the persistence boundary.
type Source interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Cache is the owned book and user snapshot. It has a single writer (the
// desk that refreshes it); reads may come from any goroutine and always
// receive copies.
type Cache struct {
	src Source

	mu    sync.RWMutex
	books []models.Book
	users []models.User
}

// NewCache creates an empty cache backed by src.
func NewCache(src Source) *Cache {
	return &Cache{src: src}
}

// Refresh replaces both snapshots. On error the previous snapshots are kept.
func (c *Cache) Refresh(ctx context.Context) error {
	if err := c.RefreshBooks(ctx); err != nil {
		return err
	}
	return c.RefreshUsers(ctx)
}

// RefreshBooks replaces the book snapshot.
func (c *Cache) RefreshBooks(ctx context.Context) error {
	books, err := c.src.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh books: %w", err)
	}

	c.mu.Lock()
	c.books = books
	c.mu.Unlock()

	return nil
}

// RefreshUsers replaces the user snapshot.
func (c *Cache) RefreshUsers(ctx context.Context) error {
	users, err := c.src.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh users: %w", err)
	}

	c.mu.Lock()
	c.users = users
	c.mu.Unlock()

	return nil
}

// Books returns a copy of the book snapshot.
func (c *Cache) Books() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.books)
}

// Users returns a copy of the user snapshot.
func (c *Cache) Users() []models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.users)
}

// Book returns the cached book with the given ID.
func (c *Cache) Book(id int64) (models.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.books {
		if b.ID == id {
			return b, true
		}
	}
	return models.Book{}, false
}

// User returns the cached user with the given ID.
func (c *Cache) User(id int64) (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// MarkBookLoaned flips the cached book to unavailable. It reports whether
// the book was in the snapshot.
func (c *Cache) MarkBookLoaned(id int64) bool {
	return c.setAvailable(id, false)
}

// MarkBookReturned flips the cached book back to available.
func (c *Cache) MarkBookReturned(id int64) bool {
	return c.setAvailable(id, true)
}

func (c *Cache) setAvailable(id int64, available bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.books {
		if c.books[i].ID == id {
			// Copy on write so slices handed out earlier stay untouched.
			books := slices.Clone(c.books)
			books[i].IsAvailable = available
			c.books = books
			return true
		}
	}
	return false
}
