// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // registers the sqlite3 dialect
	"github.com/jmoiron/sqlx"
	sqlitedriver "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// dialect builds the filtered list queries.
var dialect = goqu.Dialect("sqlite3")

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection pragma, so set it in the DSN.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers; loan creation relies on it
	// together with the conditional availability update.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// sqlx only needs the bind style; "sqlite3" selects '?' placeholders.
	return &SQLiteStore{db: sqlx.NewDb(db, "sqlite3")}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Stats counts the dashboard figures.
func (s *SQLiteStore) Stats(ctx context.Context, today string) (*models.Stats, error) {
	stats := &models.Stats{}
	err := s.db.QueryRowxContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM loans WHERE return_date IS NULL),
			(SELECT COUNT(*) FROM loans WHERE return_date IS NULL AND due_date <= ?)`,
		today,
	).Scan(&stats.TotalBooks, &stats.TotalUsers, &stats.ActiveLoans, &stats.OverdueLoans)
	if err != nil {
		return nil, fmt.Errorf("failed to count stats: %w", err)
	}
	return stats, nil
}

// selectPage applies the paging bounds with the store defaults.
func selectPage(ds *goqu.SelectDataset, page storage.Page) *goqu.SelectDataset {
	limit := page.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	ds = ds.Limit(uint(limit))
	if page.Skip > 0 {
		ds = ds.Offset(uint(page.Skip))
	}
	return ds
}

// selectAll renders ds and scans every row into dest.
func (s *SQLiteStore) selectAll(ctx context.Context, dest interface{}, ds *goqu.SelectDataset) error {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.SelectContext(ctx, dest, query, args...)
}

// nullable stores empty optional strings as NULL.
func nullable(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}

// likePattern wraps a search query for a substring LIKE match.
func likePattern(q string) string {
	return "%" + q + "%"
}

// translateErr maps constraint violations onto the storage sentinels.
func translateErr(err error) error {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %v", storage.ErrNotFound, err)
	case sqlite3.SQLITE_CONSTRAINT:
		// Primary code only; fall back to the message.
		switch msg := sqliteErr.Error(); {
		case strings.Contains(msg, "UNIQUE"):
			return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
		case strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %v", storage.ErrNotFound, err)
		}
	}
	return err
}

// requireAffected turns a zero-row update or delete into ErrNotFound.
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, storage.ErrNotFound)
	}
	return nil
}
