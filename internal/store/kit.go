package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kitworks/kittrack/internal/models"
)

// KitStore handles kit CRUD operations. It is the only store that mutates
// the kits table, and UpdateKit is the only path by which a kit's fields
// change after creation: every update commits the new state, the version
// bump, and the change-log entry in one transaction.
type KitStore struct {
	Base
}

// NewKitStore creates a new KitStore.
func NewKitStore(base Base) *KitStore {
	return &KitStore{Base: base}
}

// fetchKit loads a single kit with the owner name joined, within a transaction.
func fetchKit(ctx context.Context, tx pgx.Tx, kitID int64) (*models.Kit, error) {
	row := tx.QueryRow(ctx, `SELECT `+kitColumns+`
		FROM kits k
		LEFT JOIN users u ON k.user_id = u.id
		WHERE k.id = $1`, kitID)

	k, err := scanKit(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrKitNotFound
		}

		return nil, fmt.Errorf("scanning kit: %w", err)
	}

	return k, nil
}

// ListKits returns all kits ordered by id.
func (s *KitStore) ListKits(ctx context.Context) ([]models.Kit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT `+kitColumns+`
		FROM kits k
		LEFT JOIN users u ON k.user_id = u.id
		ORDER BY k.id`)
	if err != nil {
		return nil, fmt.Errorf("querying kits: %w", err)
	}
	defer rows.Close()

	return collectKits(rows)
}

// GetKit returns a single kit by id.
func (s *KitStore) GetKit(ctx context.Context, kitID int64) (*models.Kit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+kitColumns+`
		FROM kits k
		LEFT JOIN users u ON k.user_id = u.id
		WHERE k.id = $1`, kitID)

	k, err := scanKit(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrKitNotFound
		}

		return nil, fmt.Errorf("scanning kit: %w", err)
	}

	return k, nil
}

// CreateKit inserts a new kit at version 1 and returns the created record.
func (s *KitStore) CreateKit(ctx context.Context, req models.CreateKitRequest) (*models.Kit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating kit: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var kitID int64

	err = tx.QueryRow(ctx, `INSERT INTO kits (
			part_number, noun, kit_name, state_status, current_status,
			remarks, manufacturer, form48_number, user_id,
			die_required, die_number, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		RETURNING id`,
		req.PartNumber, req.Noun, req.KitName, req.StateStatus, req.CurrentStatus,
		req.Remarks, req.Manufacturer, req.Form48Number, nullableID(req.UserID),
		req.DieRequired, req.DieNumber,
	).Scan(&kitID)
	if err != nil {
		return nil, fmt.Errorf("inserting kit: %w", err)
	}

	k, err := fetchKit(ctx, tx, kitID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create kit: %w", err)
	}

	return k, nil
}

// UpdateKit applies a versioned update: it locks the kit row, bumps the
// version by exactly one, overwrites the fields with the proposed state,
// and appends one change-log entry with a detail row per supplied diff.
// All steps commit or none do. The row lock serializes concurrent updates
// to the same kit so two writers can never compute the same new version.
func (s *KitStore) UpdateKit(ctx context.Context, kitID int64, req models.UpdateKitRequest) (*models.Kit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating kit: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var currentVersion int

	err = tx.QueryRow(ctx, "SELECT version FROM kits WHERE id = $1 FOR UPDATE", kitID).Scan(&currentVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrKitNotFound
		}

		return nil, fmt.Errorf("locking kit row: %w", err)
	}

	if req.ExpectedVersion != 0 && req.ExpectedVersion != currentVersion {
		return nil, models.ErrVersionConflict
	}

	newVersion := currentVersion + 1
	f := req.Fields

	_, err = tx.Exec(ctx, `UPDATE kits SET
			part_number = $1, noun = $2, kit_name = $3, state_status = $4,
			current_status = $5, remarks = $6, manufacturer = $7,
			form48_number = $8, user_id = $9, die_required = $10,
			die_number = $11, version = $12, updated_at = now()
		WHERE id = $13`,
		f.PartNumber, f.Noun, f.KitName, f.StateStatus, f.CurrentStatus,
		f.Remarks, f.Manufacturer, f.Form48Number, nullableID(req.UserID),
		f.DieRequired, f.DieNumber, newVersion, kitID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating kit fields: %w", err)
	}

	if err := appendChangeLog(ctx, tx, kitID, req.UserID, newVersion, req.Changes); err != nil {
		return nil, err
	}

	k, err := fetchKit(ctx, tx, kitID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update kit: %w", err)
	}

	return k, nil
}

// DeleteKit removes a kit and cascades to its change history within the
// same transaction. Deletion invalidates all historical reconstruction
// for the kit.
func (s *KitStore) DeleteKit(ctx context.Context, kitID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting kit: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	_, err = tx.Exec(ctx, `DELETE FROM change_details
		WHERE change_log_id IN (SELECT id FROM change_logs WHERE kit_id = $1)`, kitID)
	if err != nil {
		return fmt.Errorf("deleting change details for kit: %w", err)
	}

	_, err = tx.Exec(ctx, "DELETE FROM change_logs WHERE kit_id = $1", kitID)
	if err != nil {
		return fmt.Errorf("deleting change logs for kit: %w", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM kits WHERE id = $1", kitID)
	if err != nil {
		return fmt.Errorf("executing kit delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrKitNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete kit: %w", err)
	}

	return nil
}

// nullableID maps a zero id to SQL NULL so optional owner references stay null.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}

	return &id
}
