package store

import (
	"context"
	"fmt"
	"time"

	"github.com/kitworks/kittrack/internal/models"
)

// ChangeFeedStore serves the flat cross-kit audit feed. It reports raw
// diffs for a time window and never reconstructs state.
type ChangeFeedStore struct {
	Base
}

// NewChangeFeedStore creates a new ChangeFeedStore.
func NewChangeFeedStore(base Base) *ChangeFeedStore {
	return &ChangeFeedStore{Base: base}
}

// QueryRange returns every change-detail row committed in [start, end],
// joined with its kit and actor identity, newest first. Both bounds are
// inclusive; day-granularity expansion (00:00:00 / 23:59:59) is done by
// the caller. An inverted window is rejected.
func (s *ChangeFeedStore) QueryRange(ctx context.Context, start, end time.Time) ([]models.ChangeFeedItem, error) {
	if end.Before(start) {
		return nil, models.ErrInvalidDateRange
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT
			cl.id, cl.kit_id, k.kit_name, k.part_number,
			cd.field, cd.old_value, cd.new_value, cl.changed_at, u.name
		FROM change_logs cl
		JOIN change_details cd ON cl.id = cd.change_log_id
		JOIN kits k ON cl.kit_id = k.id
		LEFT JOIN users u ON cl.user_id = u.id
		WHERE cl.changed_at >= $1 AND cl.changed_at <= $2
		ORDER BY cl.changed_at DESC, cd.id DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying change feed: %w", err)
	}
	defer rows.Close()

	items := make([]models.ChangeFeedItem, 0, 16)

	for rows.Next() {
		var it models.ChangeFeedItem
		var userName *string

		if err := rows.Scan(
			&it.ID, &it.KitID, &it.KitName, &it.PartNumber,
			&it.Field, &it.OldValue, &it.NewValue, &it.ChangedAt, &userName,
		); err != nil {
			return nil, fmt.Errorf("scanning change feed row: %w", err)
		}

		if userName != nil {
			it.ChangedBy = *userName
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change feed rows: %w", err)
	}

	return items, nil
}
