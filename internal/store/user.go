package store

import (
	"context"
	"fmt"

	"github.com/kitworks/kittrack/internal/models"
)

// UserStore serves actor identities for pick-lists and attribution.
type UserStore struct {
	Base
}

// NewUserStore creates a new UserStore.
func NewUserStore(base Base) *UserStore {
	return &UserStore{Base: base}
}

// ListUsers returns all users ordered by id.
func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, "SELECT id, name, email FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}
