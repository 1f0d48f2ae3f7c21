package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/domain"
	"github.com/kitworks/kittrack/internal/models"
)

// ChangeFeedStore is the data-access interface ChangeFeedService depends on.
// It reuses domain.ChangeFeedService since the method sets are identical, avoiding duplication.
type ChangeFeedStore = domain.ChangeFeedService

// Compile-time check: *ChangeFeedService must satisfy domain.ChangeFeedService.
var _ domain.ChangeFeedService = (*ChangeFeedService)(nil)

// ChangeFeedService wraps ChangeFeedStore with context-aware logging.
type ChangeFeedService struct {
	store ChangeFeedStore
	log   *logrus.Logger
}

// NewChangeFeedService creates a ChangeFeedService.
func NewChangeFeedService(store ChangeFeedStore, log *logrus.Logger) *ChangeFeedService {
	return &ChangeFeedService{store: store, log: log}
}

// QueryRange returns the change feed for an inclusive time window, newest first.
func (s *ChangeFeedService) QueryRange(ctx context.Context, start, end time.Time) ([]models.ChangeFeedItem, error) {
	items, err := s.store.QueryRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"start": start,
		"end":   end,
		"count": len(items),
	}).Debug("changes.query_range")

	return items, nil
}
