package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// LoanServiceName is the fully-qualified name of the LoanService.
const LoanServiceName = packageName + "LoanService"

var (
	LoanServiceCreateLoanProcedure = procedure(LoanServiceName, "CreateLoan")
	LoanServiceGetLoanProcedure    = procedure(LoanServiceName, "GetLoan")
	LoanServiceListLoansProcedure  = procedure(LoanServiceName, "ListLoans")
	LoanServiceReturnLoanProcedure = procedure(LoanServiceName, "ReturnLoan")
)

// LoanServiceHandler is implemented by the server side of the LoanService.
type LoanServiceHandler interface {
	CreateLoan(context.Context, *connect.Request[CreateLoanRequest]) (*connect.Response[LoanResponse], error)
	GetLoan(context.Context, *connect.Request[IDRequest]) (*connect.Response[LoanResponse], error)
	ListLoans(context.Context, *connect.Request[ListLoansRequest]) (*connect.Response[ListLoansResponse], error)
	ReturnLoan(context.Context, *connect.Request[IDRequest]) (*connect.Response[LoanResponse], error)
}

// LoanServiceClient is the client side of the LoanService.
type LoanServiceClient interface {
	LoanServiceHandler
}

// NewLoanServiceHandler builds an HTTP handler from the service implementation.
func NewLoanServiceHandler(svc LoanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, LoanServiceCreateLoanProcedure, svc.CreateLoan, opts)
	handle(mux, LoanServiceGetLoanProcedure, svc.GetLoan, opts)
	handle(mux, LoanServiceListLoansProcedure, svc.ListLoans, opts)
	handle(mux, LoanServiceReturnLoanProcedure, svc.ReturnLoan, opts)
	return "/" + LoanServiceName + "/", mux
}

type loanServiceClient struct {
	createLoan *connect.Client[CreateLoanRequest, LoanResponse]
	getLoan    *connect.Client[IDRequest, LoanResponse]
	listLoans  *connect.Client[ListLoansRequest, ListLoansResponse]
	returnLoan *connect.Client[IDRequest, LoanResponse]
}

// NewLoanServiceClient constructs a client for the LoanService at baseURL.
func NewLoanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LoanServiceClient {
	opts = clientOptions(opts)
	return &loanServiceClient{
		createLoan: newClient[CreateLoanRequest, LoanResponse](httpClient, baseURL, LoanServiceCreateLoanProcedure, opts),
		getLoan:    newClient[IDRequest, LoanResponse](httpClient, baseURL, LoanServiceGetLoanProcedure, opts),
		listLoans:  newClient[ListLoansRequest, ListLoansResponse](httpClient, baseURL, LoanServiceListLoansProcedure, opts),
		returnLoan: newClient[IDRequest, LoanResponse](httpClient, baseURL, LoanServiceReturnLoanProcedure, opts),
	}
}

func (c *loanServiceClient) CreateLoan(ctx context.Context, req *connect.Request[CreateLoanRequest]) (*connect.Response[LoanResponse], error) {
	return c.createLoan.CallUnary(ctx, req)
}

func (c *loanServiceClient) GetLoan(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[LoanResponse], error) {
	return c.getLoan.CallUnary(ctx, req)
}

func (c *loanServiceClient) ListLoans(ctx context.Context, req *connect.Request[ListLoansRequest]) (*connect.Response[ListLoansResponse], error) {
	return c.listLoans.CallUnary(ctx, req)
}

func (c *loanServiceClient) ReturnLoan(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[LoanResponse], error) {
	return c.returnLoan.CallUnary(ctx, req)
}
