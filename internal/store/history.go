package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kitworks/kittrack/internal/models"
)

// HistoryStore handles change-log read operations.
type HistoryStore struct {
	Base
}

// NewHistoryStore creates a new HistoryStore.
func NewHistoryStore(base Base) *HistoryStore {
	return &HistoryStore{Base: base}
}

// appendChangeLog inserts one change-log entry stamped with version and a
// detail row per diff. Package-level so KitStore.UpdateKit can call it
// within its transaction. An empty diff list is rejected: a change-log
// entry without details would be an untraceable version bump.
func appendChangeLog(
	ctx context.Context,
	tx pgx.Tx,
	kitID, userID int64,
	version int,
	changes []models.FieldDiff,
) error {
	if len(changes) == 0 {
		return models.ErrNoChanges
	}

	var changeLogID int64

	err := tx.QueryRow(ctx,
		`INSERT INTO change_logs (kit_id, user_id, version) VALUES ($1, $2, $3) RETURNING id`,
		kitID, nullableID(userID), version,
	).Scan(&changeLogID)
	if err != nil {
		return fmt.Errorf("inserting change log: %w", err)
	}

	valueParts := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)*4)

	for i, c := range changes {
		base := i*4 + 1
		valueParts = append(valueParts, fmt.Sprintf(
			"($%d, $%d, $%d, $%d)", base, base+1, base+2, base+3,
		))
		args = append(args, changeLogID, c.Field, c.OldValue, c.NewValue)
	}

	sql := `INSERT INTO change_details (change_log_id, field, old_value, new_value)
		VALUES ` + strings.Join(valueParts, ", ")

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("inserting change details: %w", err)
	}

	return nil
}

// historyRow is one joined change_logs x change_details row.
type historyRow struct {
	entry  models.ChangeLogEntry
	change models.FieldChange
}

// queryHistoryRows runs a joined history query and groups the flat rows
// into change-log entries with nested changes, preserving row order.
func queryHistoryRows(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, sql string, args ...any,
) ([]models.ChangeLogEntry, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying change history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ChangeLogEntry, 0, 16)
	index := make(map[int64]int)

	for rows.Next() {
		var r historyRow
		var userID *int64
		var userName *string

		if err := rows.Scan(
			&r.entry.ID, &r.entry.KitID, &userID, &r.entry.Version, &r.entry.ChangedAt,
			&r.change.Field, &r.change.OldValue, &r.change.NewValue, &userName,
		); err != nil {
			return nil, fmt.Errorf("scanning change history row: %w", err)
		}

		i, seen := index[r.entry.ID]
		if !seen {
			if userID != nil {
				r.entry.UserID = *userID
			}

			if userName != nil {
				r.entry.ChangedBy = *userName
			}

			r.entry.Changes = make([]models.FieldChange, 0, 4)
			entries = append(entries, r.entry)
			i = len(entries) - 1
			index[r.entry.ID] = i
		}

		entries[i].Changes = append(entries[i].Changes, r.change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change history rows: %w", err)
	}

	return entries, nil
}

const historySelect = `SELECT cl.id, cl.kit_id, cl.user_id, cl.version, cl.changed_at,
	cd.field, cd.old_value, cd.new_value, u.name
	FROM change_logs cl
	JOIN change_details cd ON cl.id = cd.change_log_id
	LEFT JOIN users u ON cl.user_id = u.id`

// GetHistory returns the change history for a kit, newest first, with
// nested field changes. When before is non-nil only entries at or before
// that instant are returned. An unknown kit yields ErrKitNotFound rather
// than an empty history.
func (s *HistoryStore) GetHistory(ctx context.Context, kitID int64, before *time.Time) ([]models.ChangeLogEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting change history: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM kits WHERE id = $1)", kitID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking kit exists: %w", err)
	}

	if !exists {
		return nil, models.ErrKitNotFound
	}

	query := historySelect + " WHERE cl.kit_id = $1"
	args := []any{kitID}

	if before != nil {
		query += " AND cl.changed_at <= $2"
		args = append(args, *before)
	}

	query += " ORDER BY cl.changed_at DESC, cl.id DESC"

	entries, err := queryHistoryRows(ctx, tx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing history query: %w", err)
	}

	return entries, nil
}

// LatestVersion returns the highest change-log version recorded for a kit,
// or 1 when the kit has no history yet.
func (s *HistoryStore) LatestVersion(ctx context.Context, kitID int64) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var version int

	err := s.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(cl.version), 1)
		FROM kits k
		LEFT JOIN change_logs cl ON cl.kit_id = k.id
		WHERE k.id = $1
		GROUP BY k.id`, kitID).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrKitNotFound
		}

		return 0, fmt.Errorf("querying latest version: %w", err)
	}

	return version, nil
}
