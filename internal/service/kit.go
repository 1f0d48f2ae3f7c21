// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/domain"
	"github.com/kitworks/kittrack/internal/metrics"
	"github.com/kitworks/kittrack/internal/models"
)

// KitStore is the data-access interface KitService depends on.
// It reuses domain.KitService since the method sets are identical, avoiding duplication.
type KitStore = domain.KitService

// Compile-time check: *KitService must satisfy domain.KitService.
var _ domain.KitService = (*KitService)(nil)

// KitService wraps KitStore with context-aware logging and change metrics.
type KitService struct {
	store KitStore
	log   *logrus.Logger
}

// NewKitService creates a KitService.
func NewKitService(store KitStore, log *logrus.Logger) *KitService {
	return &KitService{store: store, log: log}
}

// ListKits returns all kits (pass-through).
func (s *KitService) ListKits(ctx context.Context) ([]models.Kit, error) {
	return s.store.ListKits(ctx)
}

// GetKit returns a single kit by id (pass-through).
func (s *KitService) GetKit(ctx context.Context, kitID int64) (*models.Kit, error) {
	return s.store.GetKit(ctx, kitID)
}

// CreateKit creates a kit at version 1.
func (s *KitService) CreateKit(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error) {
	kit, err := s.store.CreateKit(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"kit_id":      kit.ID,
		"part_number": kit.PartNumber,
	}).Info("kit.create")

	return kit, nil
}

// UpdateKit runs the versioned writer and counts the committed change.
func (s *KitService) UpdateKit(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error) {
	kit, err := s.store.UpdateKit(ctx, kitID, req)
	if err != nil {
		return nil, err
	}

	metrics.ChangesRecorded.Inc()

	s.log.WithFields(logrus.Fields{
		"kit_id":  kitID,
		"version": kit.Version,
		"fields":  len(req.Changes),
		"user_id": req.UserID,
	}).Info("kit.update")

	return kit, nil
}

// DeleteKit removes a kit and its change history.
func (s *KitService) DeleteKit(ctx context.Context, kitID int64) error {
	err := s.store.DeleteKit(ctx, kitID)
	if err == nil {
		s.log.WithField("kit_id", kitID).Info("kit.delete")
	}

	return err
}
