package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
)

var userColumns = []interface{}{
	"id", "name",
	goqu.COALESCE(goqu.C("email"), "").As("email"),
	goqu.COALESCE(goqu.C("phone"), "").As("phone"),
}

// CreateUser inserts a new borrower.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, phone) VALUES (?, ?, ?)",
		user.Name, nullable(user.Email), nullable(user.Phone),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translateErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUser retrieves a borrower by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := dialect.From("users").Select(userColumns...).
		Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user := &models.User{}
	err = s.db.GetContext(ctx, user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// ListUsers returns borrowers in ID order, optionally filtered by a substring
// of name, email or phone.
func (s *SQLiteStore) ListUsers(ctx context.Context, filter storage.UserFilter) ([]models.User, error) {
	ds := dialect.From("users").Select(userColumns...).Order(goqu.I("id").Asc())
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		ds = ds.Where(goqu.Or(
			goqu.C("name").Like(pattern),
			goqu.C("email").Like(pattern),
			goqu.C("phone").Like(pattern),
		))
	}
	ds = selectPage(ds, filter.Page)

	users := []models.User{}
	if err := s.selectAll(ctx, &users, ds); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateUser replaces a borrower's fields.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, phone = ? WHERE id = ?",
		user.Name, nullable(user.Email), nullable(user.Phone), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translateErr(err))
	}

	return requireAffected(res, "user", user.ID)
}

// DeleteUser removes a borrower and their loan history.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return requireAffected(res, "user", id)
}
