package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/domain"
	"github.com/kitworks/kittrack/internal/models"
)

// HistoryStore is the data-access interface HistoryService depends on.
// It reuses domain.HistoryService since the method sets are identical, avoiding duplication.
type HistoryStore = domain.HistoryService

// Compile-time check: *HistoryService must satisfy domain.HistoryService.
var _ domain.HistoryService = (*HistoryService)(nil)

// HistoryService wraps HistoryStore with context-aware logging.
type HistoryService struct {
	store HistoryStore
	log   *logrus.Logger
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(store HistoryStore, log *logrus.Logger) *HistoryService {
	return &HistoryService{store: store, log: log}
}

// GetHistory returns a kit's change history, newest first.
func (s *HistoryService) GetHistory(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error) {
	s.log.WithFields(logrus.Fields{
		"kit_id": kitID,
		"before": before,
	}).Debug("history.get")

	return s.store.GetHistory(ctx, kitID, before)
}

// LatestVersion returns the highest committed change-log version for a kit.
func (s *HistoryService) LatestVersion(ctx context.Context, kitID int64) (int, error) {
	return s.store.LatestVersion(ctx, kitID)
}
