package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/credential"
	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
	"github.com/mmynk/librarian/pkg/api"
)

const (
	msgAdminNotFound  = "Admin not found"
	msgEmailDuplicate = "Email already registered"
)

// AdminService implements the Connect AdminService.
type AdminService struct {
	store storage.Store
}

// NewAdminService creates a new AdminService with the given storage backend.
func NewAdminService(store storage.Store) *AdminService {
	return &AdminService{store: store}
}

// hashPassword turns a weak password into a field violation.
func hashPassword(password string) (string, *connect.Error) {
	hash, err := credential.Hash(password)
	if errors.Is(err, credential.ErrWeakPassword) {
		return "", api.NewValidationError([]api.Violation{api.BodyViolation("password", err.Error())})
	}
	if err != nil {
		return "", connect.NewError(connect.CodeInternal, err)
	}
	return hash, nil
}

// CreateAdmin adds an administrator account. The first admin ever created
// becomes the superadmin.
func (s *AdminService) CreateAdmin(ctx context.Context, req *connect.Request[api.CreateAdminRequest]) (*connect.Response[api.AdminResponse], error) {
	slog.Info("CreateAdmin request received", "email", req.Msg.Email)

	violations := required(nil,
		[2]string{"email", req.Msg.Email},
		[2]string{"name", req.Msg.Name},
		[2]string{"password", req.Msg.Password},
	)
	if len(violations) > 0 {
		return nil, api.NewValidationError(violations)
	}

	// Check if email already exists
	if _, err := s.store.GetAdminByEmail(ctx, req.Msg.Email); err == nil {
		return nil, connect.NewError(connect.CodeAlreadyExists, errors.New(msgEmailDuplicate))
	} else if !errors.Is(err, storage.ErrNotFound) {
		slog.Error("CreateAdmin lookup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	hash, cerr := hashPassword(req.Msg.Password)
	if cerr != nil {
		return nil, cerr
	}

	existing, err := s.store.ListAdmins(ctx, storage.Page{Limit: 1})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	admin := &models.Admin{
		Email:        req.Msg.Email,
		Name:         req.Msg.Name,
		PasswordHash: hash,
		IsSuperadmin: len(existing) == 0,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		slog.Error("CreateAdmin failed", "error", err)
		return nil, storeError(err, msgAdminNotFound, msgEmailDuplicate)
	}

	slog.Info("Admin created", "admin_id", admin.ID, "superadmin", admin.IsSuperadmin)

	return connect.NewResponse(&api.AdminResponse{Admin: *admin}), nil
}

// GetAdmin retrieves an admin by ID.
func (s *AdminService) GetAdmin(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.AdminResponse], error) {
	admin, err := s.store.GetAdmin(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetAdmin failed", "admin_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgAdminNotFound, msgEmailDuplicate)
	}

	return connect.NewResponse(&api.AdminResponse{Admin: *admin}), nil
}

// ListAdmins retrieves all admins.
func (s *AdminService) ListAdmins(ctx context.Context, req *connect.Request[api.ListAdminsRequest]) (*connect.Response[api.ListAdminsResponse], error) {
	admins, err := s.store.ListAdmins(ctx, storage.Page{Skip: req.Msg.Skip, Limit: req.Msg.Limit})
	if err != nil {
		slog.Error("ListAdmins failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListAdmins successful", "count", len(admins))

	return connect.NewResponse(&api.ListAdminsResponse{Admins: admins}), nil
}

// UpdateAdmin changes an admin's profile. An empty password keeps the
// current one.
func (s *AdminService) UpdateAdmin(ctx context.Context, req *connect.Request[api.UpdateAdminRequest]) (*connect.Response[api.AdminResponse], error) {
	slog.Info("UpdateAdmin request received", "admin_id", req.Msg.ID, "password_changed", req.Msg.Password != "")

	violations := required(nil,
		[2]string{"email", req.Msg.Email},
		[2]string{"name", req.Msg.Name},
	)
	if len(violations) > 0 {
		return nil, api.NewValidationError(violations)
	}

	current, err := s.store.GetAdmin(ctx, req.Msg.ID)
	if err != nil {
		return nil, storeError(err, msgAdminNotFound, msgEmailDuplicate)
	}

	admin := &models.Admin{
		ID:           req.Msg.ID,
		Email:        req.Msg.Email,
		Name:         req.Msg.Name,
		IsSuperadmin: current.IsSuperadmin,
	}
	if req.Msg.Password != "" {
		hash, cerr := hashPassword(req.Msg.Password)
		if cerr != nil {
			return nil, cerr
		}
		admin.PasswordHash = hash
	}

	if err := s.store.UpdateAdmin(ctx, admin); err != nil {
		slog.Error("UpdateAdmin failed", "admin_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgAdminNotFound, msgEmailDuplicate)
	}

	slog.Info("Admin updated", "admin_id", admin.ID)

	return connect.NewResponse(&api.AdminResponse{Admin: *admin}), nil
}

// DeleteAdmin removes an admin by ID.
func (s *AdminService) DeleteAdmin(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteAdmin request received", "admin_id", req.Msg.ID)

	if err := s.store.DeleteAdmin(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteAdmin failed", "error", err)
		return nil, storeError(err, msgAdminNotFound, msgEmailDuplicate)
	}

	slog.Info("Admin deleted", "admin_id", req.Msg.ID)

	return connect.NewResponse(&api.Empty{}), nil
}
