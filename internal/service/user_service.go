package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
	"github.com/mmynk/librarian/pkg/api"
)

const (
	msgUserNotFound  = "User not found"
	msgUserDuplicate = "Email or phone already registered"
)

// UserService implements the Connect UserService for borrowers.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new borrower.
func (s *UserService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.UserResponse], error) {
	slog.Info("CreateUser request received", "name", req.Msg.Name)

	if violations := required(nil, [2]string{"name", req.Msg.Name}); len(violations) > 0 {
		return nil, api.NewValidationError(violations)
	}

	user := &models.User{Name: req.Msg.Name, Email: req.Msg.Email, Phone: req.Msg.Phone}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "error", err)
		return nil, storeError(err, msgUserNotFound, msgUserDuplicate)
	}

	slog.Info("User created", "user_id", user.ID)

	return connect.NewResponse(&api.UserResponse{User: *user}), nil
}

// GetUser retrieves a borrower by ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.UserResponse], error) {
	user, err := s.store.GetUser(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetUser failed", "user_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgUserNotFound, msgUserDuplicate)
	}

	return connect.NewResponse(&api.UserResponse{User: *user}), nil
}

// ListUsers retrieves borrowers, optionally filtered by a search query.
func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	slog.Info("ListUsers request received", "query", req.Msg.Query)

	users, err := s.store.ListUsers(ctx, storage.UserFilter{
		Query: req.Msg.Query,
		Page:  storage.Page{Skip: req.Msg.Skip, Limit: req.Msg.Limit},
	})
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListUsers successful", "count", len(users))

	return connect.NewResponse(&api.ListUsersResponse{Users: users}), nil
}

// UpdateUser replaces a borrower's details.
func (s *UserService) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UserResponse], error) {
	slog.Info("UpdateUser request received", "user_id", req.Msg.ID)

	if violations := required(nil, [2]string{"name", req.Msg.Name}); len(violations) > 0 {
		return nil, api.NewValidationError(violations)
	}

	user := &models.User{ID: req.Msg.ID, Name: req.Msg.Name, Email: req.Msg.Email, Phone: req.Msg.Phone}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("UpdateUser failed", "user_id", req.Msg.ID, "error", err)
		return nil, storeError(err, msgUserNotFound, msgUserDuplicate)
	}

	slog.Info("User updated", "user_id", user.ID)

	return connect.NewResponse(&api.UserResponse{User: *user}), nil
}

// DeleteUser removes a borrower and their loan history.
func (s *UserService) DeleteUser(ctx context.Context, req *connect.Request[api.IDRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteUser request received", "user_id", req.Msg.ID)

	if err := s.store.DeleteUser(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteUser failed", "error", err)
		return nil, storeError(err, msgUserNotFound, msgUserDuplicate)
	}

	slog.Info("User deleted", "user_id", req.Msg.ID)

	return connect.NewResponse(&api.Empty{}), nil
}
