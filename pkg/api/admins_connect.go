package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AdminServiceName is the fully-qualified name of the AdminService.
const AdminServiceName = packageName + "AdminService"

var (
	AdminServiceCreateAdminProcedure = procedure(AdminServiceName, "CreateAdmin")
	AdminServiceGetAdminProcedure    = procedure(AdminServiceName, "GetAdmin")
	AdminServiceListAdminsProcedure  = procedure(AdminServiceName, "ListAdmins")
	AdminServiceUpdateAdminProcedure = procedure(AdminServiceName, "UpdateAdmin")
	AdminServiceDeleteAdminProcedure = procedure(AdminServiceName, "DeleteAdmin")
)

// AdminServiceHandler is implemented by the server side of the AdminService.
type AdminServiceHandler interface {
	CreateAdmin(context.Context, *connect.Request[CreateAdminRequest]) (*connect.Response[AdminResponse], error)
	GetAdmin(context.Context, *connect.Request[IDRequest]) (*connect.Response[AdminResponse], error)
	ListAdmins(context.Context, *connect.Request[ListAdminsRequest]) (*connect.Response[ListAdminsResponse], error)
	UpdateAdmin(context.Context, *connect.Request[UpdateAdminRequest]) (*connect.Response[AdminResponse], error)
	DeleteAdmin(context.Context, *connect.Request[IDRequest]) (*connect.Response[Empty], error)
}

// AdminServiceClient is the client side of the AdminService.
type AdminServiceClient interface {
	AdminServiceHandler
}

// NewAdminServiceHandler builds an HTTP handler from the service implementation.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AdminServiceCreateAdminProcedure, svc.CreateAdmin, opts)
	handle(mux, AdminServiceGetAdminProcedure, svc.GetAdmin, opts)
	handle(mux, AdminServiceListAdminsProcedure, svc.ListAdmins, opts)
	handle(mux, AdminServiceUpdateAdminProcedure, svc.UpdateAdmin, opts)
	handle(mux, AdminServiceDeleteAdminProcedure, svc.DeleteAdmin, opts)
	return "/" + AdminServiceName + "/", mux
}

type adminServiceClient struct {
	createAdmin *connect.Client[CreateAdminRequest, AdminResponse]
	getAdmin    *connect.Client[IDRequest, AdminResponse]
	listAdmins  *connect.Client[ListAdminsRequest, ListAdminsResponse]
	updateAdmin *connect.Client[UpdateAdminRequest, AdminResponse]
	deleteAdmin *connect.Client[IDRequest, Empty]
}

// NewAdminServiceClient constructs a client for the AdminService at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	opts = clientOptions(opts)
	return &adminServiceClient{
		createAdmin: newClient[CreateAdminRequest, AdminResponse](httpClient, baseURL, AdminServiceCreateAdminProcedure, opts),
		getAdmin:    newClient[IDRequest, AdminResponse](httpClient, baseURL, AdminServiceGetAdminProcedure, opts),
		listAdmins:  newClient[ListAdminsRequest, ListAdminsResponse](httpClient, baseURL, AdminServiceListAdminsProcedure, opts),
		updateAdmin: newClient[UpdateAdminRequest, AdminResponse](httpClient, baseURL, AdminServiceUpdateAdminProcedure, opts),
		deleteAdmin: newClient[IDRequest, Empty](httpClient, baseURL, AdminServiceDeleteAdminProcedure, opts),
	}
}

func (c *adminServiceClient) CreateAdmin(ctx context.Context, req *connect.Request[CreateAdminRequest]) (*connect.Response[AdminResponse], error) {
	return c.createAdmin.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetAdmin(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[AdminResponse], error) {
	return c.getAdmin.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListAdmins(ctx context.Context, req *connect.Request[ListAdminsRequest]) (*connect.Response[ListAdminsResponse], error) {
	return c.listAdmins.CallUnary(ctx, req)
}

func (c *adminServiceClient) UpdateAdmin(ctx context.Context, req *connect.Request[UpdateAdminRequest]) (*connect.Response[AdminResponse], error) {
	return c.updateAdmin.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteAdmin(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[Empty], error) {
	return c.deleteAdmin.CallUnary(ctx, req)
}
