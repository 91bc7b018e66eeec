package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// UserServiceName is the fully-qualified name of the UserService.
const UserServiceName = packageName + "UserService"

var (
	UserServiceCreateUserProcedure = procedure(UserServiceName, "CreateUser")
	UserServiceGetUserProcedure    = procedure(UserServiceName, "GetUser")
	UserServiceListUsersProcedure  = procedure(UserServiceName, "ListUsers")
	UserServiceUpdateUserProcedure = procedure(UserServiceName, "UpdateUser")
	UserServiceDeleteUserProcedure = procedure(UserServiceName, "DeleteUser")
)

// UserServiceHandler is implemented by the server side of the UserService.
type UserServiceHandler interface {
	CreateUser(context.Context, *connect.Request[CreateUserRequest]) (*connect.Response[UserResponse], error)
	GetUser(context.Context, *connect.Request[IDRequest]) (*connect.Response[UserResponse], error)
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error)
	UpdateUser(context.Context, *connect.Request[UpdateUserRequest]) (*connect.Response[UserResponse], error)
	DeleteUser(context.Context, *connect.Request[IDRequest]) (*connect.Response[Empty], error)
}

// UserServiceClient is the client side of the UserService.
type UserServiceClient interface {
	UserServiceHandler
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, UserServiceCreateUserProcedure, svc.CreateUser, opts)
	handle(mux, UserServiceGetUserProcedure, svc.GetUser, opts)
	handle(mux, UserServiceListUsersProcedure, svc.ListUsers, opts)
	handle(mux, UserServiceUpdateUserProcedure, svc.UpdateUser, opts)
	handle(mux, UserServiceDeleteUserProcedure, svc.DeleteUser, opts)
	return "/" + UserServiceName + "/", mux
}

type userServiceClient struct {
	createUser *connect.Client[CreateUserRequest, UserResponse]
	getUser    *connect.Client[IDRequest, UserResponse]
	listUsers  *connect.Client[ListUsersRequest, ListUsersResponse]
	updateUser *connect.Client[UpdateUserRequest, UserResponse]
	deleteUser *connect.Client[IDRequest, Empty]
}

// NewUserServiceClient constructs a client for the UserService at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	opts = clientOptions(opts)
	return &userServiceClient{
		createUser: newClient[CreateUserRequest, UserResponse](httpClient, baseURL, UserServiceCreateUserProcedure, opts),
		getUser:    newClient[IDRequest, UserResponse](httpClient, baseURL, UserServiceGetUserProcedure, opts),
		listUsers:  newClient[ListUsersRequest, ListUsersResponse](httpClient, baseURL, UserServiceListUsersProcedure, opts),
		updateUser: newClient[UpdateUserRequest, UserResponse](httpClient, baseURL, UserServiceUpdateUserProcedure, opts),
		deleteUser: newClient[IDRequest, Empty](httpClient, baseURL, UserServiceDeleteUserProcedure, opts),
	}
}

func (c *userServiceClient) CreateUser(ctx context.Context, req *connect.Request[CreateUserRequest]) (*connect.Response[UserResponse], error) {
	return c.createUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUser(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[UserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *userServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *userServiceClient) UpdateUser(ctx context.Context, req *connect.Request[UpdateUserRequest]) (*connect.Response[UserResponse], error) {
	return c.updateUser.CallUnary(ctx, req)
}

func (c *userServiceClient) DeleteUser(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[Empty], error) {
	return c.deleteUser.CallUnary(ctx, req)
}
