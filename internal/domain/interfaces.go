// Package domain defines the canonical service interfaces shared across
// layers. Consumers should depend on these interfaces rather than
// re-declaring equivalent ones.
package domain

import (
	"context"
	"time"

	"github.com/kitworks/kittrack/internal/models"
)

// KitService defines kit CRUD operations. UpdateKit is the versioned
// writer: the only path by which a kit's fields change after creation.
type KitService interface {
	ListKits(ctx context.Context) ([]models.Kit, error)
	GetKit(ctx context.Context, kitID int64) (*models.Kit, error)
	CreateKit(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error)
	UpdateKit(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error)
	DeleteKit(ctx context.Context, kitID int64) error
}

// TemporalService defines point-in-time reconstruction operations.
type TemporalService interface {
	GetKitAt(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error)
	ListKitsAt(ctx context.Context, t time.Time) ([]models.Kit, error)
}

// HistoryService defines change history operations for a single kit.
type HistoryService interface {
	GetHistory(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error)
	LatestVersion(ctx context.Context, kitID int64) (int, error)
}

// ChangeFeedService defines the flat cross-kit audit feed.
type ChangeFeedService interface {
	QueryRange(ctx context.Context, start, end time.Time) ([]models.ChangeFeedItem, error)
}

// UserService defines actor identity lookups.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}
