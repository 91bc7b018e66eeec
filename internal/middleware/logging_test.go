package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
)

func TestLoggingInterceptorRequestID(t *testing.T) {
	var seen string
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetRequestID(ctx)
		return connect.NewResponse(&struct{}{}), nil
	}

	t.Run("propagates incoming ID", func(t *testing.T) {
		req := connect.NewRequest(&struct{}{})
		req.Header().Set(RequestIDHeader, "abc-123")

		resp, err := LoggingInterceptor()(next)(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen != "abc-123" {
			t.Errorf("context ID: expected abc-123, got %q", seen)
		}
		if got := resp.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("response header: expected abc-123, got %q", got)
		}
	})

	t.Run("generates missing ID", func(t *testing.T) {
		_, err := LoggingInterceptor()(next)(context.Background(), connect.NewRequest(&struct{}{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen == "" {
			t.Error("expected a generated request ID")
		}
	})

	t.Run("stamps error metadata", func(t *testing.T) {
		failing := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("Loan not found"))
		}
		req := connect.NewRequest(&struct{}{})
		req.Header().Set(RequestIDHeader, "req-9")

		_, err := LoggingInterceptor()(failing)(context.Background(), req)
		var connectErr *connect.Error
		if !errors.As(err, &connectErr) {
			t.Fatalf("expected connect error, got %v", err)
		}
		if got := connectErr.Meta().Get(RequestIDHeader); got != "req-9" {
			t.Errorf("error metadata: expected req-9, got %q", got)
		}
	})
}
