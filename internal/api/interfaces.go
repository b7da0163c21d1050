package api

import (
	"context"

	"github.com/neexbeast/trip-planner/internal/source"
	"github.com/neexbeast/trip-planner/internal/storage"
)

// ServiceResolver hands out the configured data source.
// *source.Factory satisfies this interface.
type ServiceResolver interface {
	Default() (source.Service, error)
}

// HistoryRepo defines the history store operations needed by handlers.
type HistoryRepo interface {
	ListHistory(ctx context.Context, f storage.HistoryFilter) ([]storage.HistoryEntry, error)
	GetHistory(ctx context.Context, id string) (*storage.HistoryEntry, error)
}

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}
