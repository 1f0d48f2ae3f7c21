package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/domain"
	"github.com/kitworks/kittrack/internal/metrics"
	"github.com/kitworks/kittrack/internal/models"
)

// TemporalStore is the data-access interface TemporalService depends on.
// It reuses domain.TemporalService since the method sets are identical, avoiding duplication.
type TemporalStore = domain.TemporalService

// Compile-time check: *TemporalService must satisfy domain.TemporalService.
var _ domain.TemporalService = (*TemporalService)(nil)

// TemporalService wraps TemporalStore with logging and reconstruction metrics.
type TemporalService struct {
	store TemporalStore
	log   *logrus.Logger
}

// NewTemporalService creates a TemporalService.
func NewTemporalService(store TemporalStore, log *logrus.Logger) *TemporalService {
	return &TemporalService{store: store, log: log}
}

// GetKitAt returns the state of a kit at instant t.
func (s *TemporalService) GetKitAt(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error) {
	kit, err := s.store.GetKitAt(ctx, kitID, t)
	if err != nil {
		return nil, err
	}

	metrics.Reconstructions.WithLabelValues("kit").Inc()

	s.log.WithFields(logrus.Fields{
		"kit_id":  kitID,
		"at":      t,
		"version": kit.Version,
	}).Debug("temporal.get_kit_at")

	return kit, nil
}

// ListKitsAt returns every kit rewound to its state at instant t.
func (s *TemporalService) ListKitsAt(ctx context.Context, t time.Time) ([]models.Kit, error) {
	kits, err := s.store.ListKitsAt(ctx, t)
	if err != nil {
		return nil, err
	}

	metrics.Reconstructions.WithLabelValues("set").Inc()

	s.log.WithFields(logrus.Fields{
		"at":    t,
		"count": len(kits),
	}).Debug("temporal.list_kits_at")

	return kits, nil
}
