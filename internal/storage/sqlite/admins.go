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

const adminColumns = "id, email, name, password_hash, is_superadmin"

// CreateAdmin inserts a new admin. The password must already be hashed.
func (s *SQLiteStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO admins (email, name, password_hash, is_superadmin) VALUES (?, ?, ?, ?)",
		admin.Email, admin.Name, admin.PasswordHash, admin.IsSuperadmin,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", translateErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read admin id: %w", err)
	}
	admin.ID = id

	return nil
}

// GetAdmin retrieves an admin by ID.
func (s *SQLiteStore) GetAdmin(ctx context.Context, id int64) (*models.Admin, error) {
	admin := &models.Admin{}
	err := s.db.GetContext(ctx, admin, "SELECT "+adminColumns+" FROM admins WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("admin %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by ID: %w", err)
	}

	return admin, nil
}

// GetAdminByEmail retrieves an admin by their email address.
func (s *SQLiteStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := s.db.GetContext(ctx, admin, "SELECT "+adminColumns+" FROM admins WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("admin %q: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}

// ListAdmins returns admins in ID order.
func (s *SQLiteStore) ListAdmins(ctx context.Context, page storage.Page) ([]models.Admin, error) {
	ds := selectPage(dialect.From("admins").
		Select("id", "email", "name", "password_hash", "is_superadmin").
		Order(goqu.I("id").Asc()), page)

	admins := []models.Admin{}
	if err := s.selectAll(ctx, &admins, ds); err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return admins, nil
}

// UpdateAdmin writes the admin's profile, and the password hash only when set.
func (s *SQLiteStore) UpdateAdmin(ctx context.Context, admin *models.Admin) error {
	var (
		res sql.Result
		err error
	)
	if admin.PasswordHash == "" {
		res, err = s.db.ExecContext(ctx,
			"UPDATE admins SET email = ?, name = ?, is_superadmin = ? WHERE id = ?",
			admin.Email, admin.Name, admin.IsSuperadmin, admin.ID,
		)
	} else {
		res, err = s.db.ExecContext(ctx,
			"UPDATE admins SET email = ?, name = ?, is_superadmin = ?, password_hash = ? WHERE id = ?",
			admin.Email, admin.Name, admin.IsSuperadmin, admin.PasswordHash, admin.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", translateErr(err))
	}

	return requireAffected(res, "admin", admin.ID)
}

// DeleteAdmin removes an admin by ID.
func (s *SQLiteStore) DeleteAdmin(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM admins WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	return requireAffected(res, "admin", id)
}
