package service

import (
	"context"
	"sync"
	"time"

	"github.com/kitworks/kittrack/internal/models"
)

// mockKitStore records calls and returns configured responses.
type mockKitStore struct {
	mu    sync.Mutex
	calls []string

	listKits  func(ctx context.Context) ([]models.Kit, error)
	getKit    func(ctx context.Context, kitID int64) (*models.Kit, error)
	createKit func(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error)
	updateKit func(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error)
	deleteKit func(ctx context.Context, kitID int64) error
}

func (m *mockKitStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockKitStore) ListKits(ctx context.Context) ([]models.Kit, error) {
	m.record("ListKits")
	return m.listKits(ctx)
}

func (m *mockKitStore) GetKit(ctx context.Context, kitID int64) (*models.Kit, error) {
	m.record("GetKit")
	return m.getKit(ctx, kitID)
}

func (m *mockKitStore) CreateKit(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error) {
	m.record("CreateKit")
	return m.createKit(ctx, req)
}

func (m *mockKitStore) UpdateKit(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error) {
	m.record("UpdateKit")
	return m.updateKit(ctx, kitID, req)
}

func (m *mockKitStore) DeleteKit(ctx context.Context, kitID int64) error {
	m.record("DeleteKit")
	return m.deleteKit(ctx, kitID)
}

// mockTemporalStore returns configured point-in-time responses.
type mockTemporalStore struct {
	getKitAt   func(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error)
	listKitsAt func(ctx context.Context, t time.Time) ([]models.Kit, error)
}

func (m *mockTemporalStore) GetKitAt(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error) {
	return m.getKitAt(ctx, kitID, t)
}

func (m *mockTemporalStore) ListKitsAt(ctx context.Context, t time.Time) ([]models.Kit, error) {
	return m.listKitsAt(ctx, t)
}

// mockHistoryStore returns configured history responses.
type mockHistoryStore struct {
	getHistory    func(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error)
	latestVersion func(ctx context.Context, kitID int64) (int, error)
}

func (m *mockHistoryStore) GetHistory(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error) {
	return m.getHistory(ctx, kitID, before)
}

func (m *mockHistoryStore) LatestVersion(ctx context.Context, kitID int64) (int, error) {
	return m.latestVersion(ctx, kitID)
}
