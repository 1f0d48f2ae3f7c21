package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/domain"
	"github.com/kitworks/kittrack/internal/models"
)

// UserStore is the data-access interface UserService depends on.
type UserStore = domain.UserService

// Compile-time check: *UserService must satisfy domain.UserService.
var _ domain.UserService = (*UserService)(nil)

// UserService wraps UserStore (pass-through, kept for layering symmetry).
type UserService struct {
	store UserStore
	log   *logrus.Logger
}

// NewUserService creates a UserService.
func NewUserService(store UserStore, log *logrus.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// ListUsers returns all known actors.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}
