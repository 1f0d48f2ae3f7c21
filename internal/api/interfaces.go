package api

import (
	"context"
	"time"

	"github.com/kitworks/kittrack/internal/models"
)

// KitRepository defines kit operations used by KitHandler.
type KitRepository interface {
	ListKits(ctx context.Context) ([]models.Kit, error)
	GetKit(ctx context.Context, kitID int64) (*models.Kit, error)
	CreateKit(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error)
	UpdateKit(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error)
	DeleteKit(ctx context.Context, kitID int64) error
}

// TemporalRepository defines point-in-time operations used by KitHandler.
type TemporalRepository interface {
	GetKitAt(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error)
	ListKitsAt(ctx context.Context, t time.Time) ([]models.Kit, error)
}

// HistoryRepository defines history operations used by HistoryHandler.
type HistoryRepository interface {
	GetHistory(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error)
	LatestVersion(ctx context.Context, kitID int64) (int, error)
}

// ChangeFeedRepository defines feed operations used by ChangeFeedHandler.
type ChangeFeedRepository interface {
	QueryRange(ctx context.Context, start, end time.Time) ([]models.ChangeFeedItem, error)
}

// UserRepository defines user operations used by UserHandler.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}
