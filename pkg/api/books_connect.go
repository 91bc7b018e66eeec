package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// BookServiceName is the fully-qualified name of the BookService.
const BookServiceName = packageName + "BookService"

var (
	BookServiceCreateBookProcedure  = procedure(BookServiceName, "CreateBook")
	BookServiceGetBookProcedure     = procedure(BookServiceName, "GetBook")
	BookServiceListBooksProcedure   = procedure(BookServiceName, "ListBooks")
	BookServiceUpdateBookProcedure  = procedure(BookServiceName, "UpdateBook")
	BookServiceDeleteBookProcedure  = procedure(BookServiceName, "DeleteBook")
	BookServiceGetBookCodeProcedure = procedure(BookServiceName, "GetBookCode")
)

// BookServiceHandler is implemented by the server side of the BookService.
type BookServiceHandler interface {
	CreateBook(context.Context, *connect.Request[CreateBookRequest]) (*connect.Response[BookResponse], error)
	GetBook(context.Context, *connect.Request[IDRequest]) (*connect.Response[BookResponse], error)
	ListBooks(context.Context, *connect.Request[ListBooksRequest]) (*connect.Response[ListBooksResponse], error)
	UpdateBook(context.Context, *connect.Request[UpdateBookRequest]) (*connect.Response[BookResponse], error)
	DeleteBook(context.Context, *connect.Request[IDRequest]) (*connect.Response[Empty], error)
	GetBookCode(context.Context, *connect.Request[IDRequest]) (*connect.Response[BookCodeResponse], error)
}

// BookServiceClient is the client side of the BookService. It has the same
// method set as BookServiceHandler.
type BookServiceClient interface {
	BookServiceHandler
}

// NewBookServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBookServiceHandler(svc BookServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, BookServiceCreateBookProcedure, svc.CreateBook, opts)
	handle(mux, BookServiceGetBookProcedure, svc.GetBook, opts)
	handle(mux, BookServiceListBooksProcedure, svc.ListBooks, opts)
	handle(mux, BookServiceUpdateBookProcedure, svc.UpdateBook, opts)
	handle(mux, BookServiceDeleteBookProcedure, svc.DeleteBook, opts)
	handle(mux, BookServiceGetBookCodeProcedure, svc.GetBookCode, opts)
	return "/" + BookServiceName + "/", mux
}

type bookServiceClient struct {
	createBook  *connect.Client[CreateBookRequest, BookResponse]
	getBook     *connect.Client[IDRequest, BookResponse]
	listBooks   *connect.Client[ListBooksRequest, ListBooksResponse]
	updateBook  *connect.Client[UpdateBookRequest, BookResponse]
	deleteBook  *connect.Client[IDRequest, Empty]
	getBookCode *connect.Client[IDRequest, BookCodeResponse]
}

// NewBookServiceClient constructs a client for the BookService at baseURL.
func NewBookServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BookServiceClient {
	opts = clientOptions(opts)
	return &bookServiceClient{
		createBook:  newClient[CreateBookRequest, BookResponse](httpClient, baseURL, BookServiceCreateBookProcedure, opts),
		getBook:     newClient[IDRequest, BookResponse](httpClient, baseURL, BookServiceGetBookProcedure, opts),
		listBooks:   newClient[ListBooksRequest, ListBooksResponse](httpClient, baseURL, BookServiceListBooksProcedure, opts),
		updateBook:  newClient[UpdateBookRequest, BookResponse](httpClient, baseURL, BookServiceUpdateBookProcedure, opts),
		deleteBook:  newClient[IDRequest, Empty](httpClient, baseURL, BookServiceDeleteBookProcedure, opts),
		getBookCode: newClient[IDRequest, BookCodeResponse](httpClient, baseURL, BookServiceGetBookCodeProcedure, opts),
	}
}

func (c *bookServiceClient) CreateBook(ctx context.Context, req *connect.Request[CreateBookRequest]) (*connect.Response[BookResponse], error) {
	return c.createBook.CallUnary(ctx, req)
}

func (c *bookServiceClient) GetBook(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[BookResponse], error) {
	return c.getBook.CallUnary(ctx, req)
}

func (c *bookServiceClient) ListBooks(ctx context.Context, req *connect.Request[ListBooksRequest]) (*connect.Response[ListBooksResponse], error) {
	return c.listBooks.CallUnary(ctx, req)
}

func (c *bookServiceClient) UpdateBook(ctx context.Context, req *connect.Request[UpdateBookRequest]) (*connect.Response[BookResponse], error) {
	return c.updateBook.CallUnary(ctx, req)
}

func (c *bookServiceClient) DeleteBook(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[Empty], error) {
	return c.deleteBook.CallUnary(ctx, req)
}

func (c *bookServiceClient) GetBookCode(ctx context.Context, req *connect.Request[IDRequest]) (*connect.Response[BookCodeResponse], error) {
	return c.getBookCode.CallUnary(ctx, req)
}
