package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// StatsServiceName is the fully-qualified name of the StatsService.
const StatsServiceName = packageName + "StatsService"

var StatsServiceGetStatsProcedure = procedure(StatsServiceName, "GetStats")

// StatsServiceHandler is implemented by the server side of the StatsService.
type StatsServiceHandler interface {
	GetStats(context.Context, *connect.Request[Empty]) (*connect.Response[StatsResponse], error)
}

// StatsServiceClient is the client side of the StatsService.
type StatsServiceClient interface {
	StatsServiceHandler
}

// NewStatsServiceHandler builds an HTTP handler from the service implementation.
func NewStatsServiceHandler(svc StatsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, StatsServiceGetStatsProcedure, svc.GetStats, opts)
	return "/" + StatsServiceName + "/", mux
}

type statsServiceClient struct {
	getStats *connect.Client[Empty, StatsResponse]
}

// NewStatsServiceClient constructs a client for the StatsService at baseURL.
func NewStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) StatsServiceClient {
	return &statsServiceClient{
		getStats: newClient[Empty, StatsResponse](httpClient, baseURL, StatsServiceGetStatsProcedure, clientOptions(opts)),
	}
}

func (c *statsServiceClient) GetStats(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[StatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}
