package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/models"
	"github.com/mmynk/librarian/internal/storage"
	"github.com/mmynk/librarian/pkg/api"
)

// StatsService implements the Connect StatsService for the dashboard.
type StatsService struct {
	store storage.Store
	now   func() time.Time
}

// NewStatsService creates a new StatsService. Overdue loans are counted
// against the server's local date.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// GetStats returns collection and circulation counts.
func (s *StatsService) GetStats(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.StatsResponse], error) {
	stats, err := s.store.Stats(ctx, s.now().Format(models.DateLayout))
	if err != nil {
		slog.Error("GetStats failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("GetStats successful",
		"books", stats.TotalBooks,
		"users", stats.TotalUsers,
		"active_loans", stats.ActiveLoans,
		"overdue_loans", stats.OverdueLoans,
	)

	return connect.NewResponse(&api.StatsResponse{Stats: *stats}), nil
}
