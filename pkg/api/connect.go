package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// packageName prefixes every service name.
const packageName = "librarian.v1."

func procedure(service, method string) string {
	return "/" + service + "/" + method
}

// handle registers one unary procedure on mux.
func handle[Req, Res any](
	mux *http.ServeMux,
	proc string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(proc, connect.NewUnaryHandler(proc, fn, opts...))
}

// newClient builds the client for one unary procedure.
func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, proc string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+proc, opts...)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{codecOption}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{codecOption}, opts...)
}
