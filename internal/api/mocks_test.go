package api_test

import (
	"context"
	"time"

	"github.com/kitworks/kittrack/internal/models"
)

// mockKitRepo implements api.KitRepository for testing.
type mockKitRepo struct {
	listFn   func(ctx context.Context) ([]models.Kit, error)
	getFn    func(ctx context.Context, kitID int64) (*models.Kit, error)
	createFn func(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error)
	updateFn func(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error)
	deleteFn func(ctx context.Context, kitID int64) error
}

func (m *mockKitRepo) ListKits(ctx context.Context) ([]models.Kit, error) {
	return m.listFn(ctx)
}

func (m *mockKitRepo) GetKit(ctx context.Context, kitID int64) (*models.Kit, error) {
	return m.getFn(ctx, kitID)
}

func (m *mockKitRepo) CreateKit(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error) {
	return m.createFn(ctx, req)
}

func (m *mockKitRepo) UpdateKit(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error) {
	return m.updateFn(ctx, kitID, req)
}

func (m *mockKitRepo) DeleteKit(ctx context.Context, kitID int64) error {
	return m.deleteFn(ctx, kitID)
}

// mockTemporalRepo implements api.TemporalRepository for testing.
type mockTemporalRepo struct {
	getAtFn  func(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error)
	listAtFn func(ctx context.Context, t time.Time) ([]models.Kit, error)
}

func (m *mockTemporalRepo) GetKitAt(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error) {
	return m.getAtFn(ctx, kitID, t)
}

func (m *mockTemporalRepo) ListKitsAt(ctx context.Context, t time.Time) ([]models.Kit, error) {
	return m.listAtFn(ctx, t)
}

// mockHistoryRepo implements api.HistoryRepository for testing.
type mockHistoryRepo struct {
	historyFn func(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error)
	versionFn func(ctx context.Context, kitID int64) (int, error)
}

func (m *mockHistoryRepo) GetHistory(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error) {
	return m.historyFn(ctx, kitID, before)
}

func (m *mockHistoryRepo) LatestVersion(ctx context.Context, kitID int64) (int, error) {
	return m.versionFn(ctx, kitID)
}

// mockChangeFeedRepo implements api.ChangeFeedRepository for testing.
type mockChangeFeedRepo struct {
	queryFn func(ctx context.Context, start, end time.Time) ([]models.ChangeFeedItem, error)
}

func (m *mockChangeFeedRepo) QueryRange(ctx context.Context, start, end time.Time) ([]models.ChangeFeedItem, error) {
	return m.queryFn(ctx, start, end)
}

// mockUserRepo implements api.UserRepository for testing.
type mockUserRepo struct {
	listFn func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}
