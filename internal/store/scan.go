package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kitworks/kittrack/internal/models"
)

// kitColumns lists the columns selected for kit queries, with the owning
// user's name joined in. Queries using it must alias kits as k and join
// users as u.
const kitColumns = `k.id, k.part_number, k.noun, k.kit_name, k.state_status,
	k.current_status, k.remarks, k.manufacturer, k.form48_number, k.user_id,
	k.die_required, k.die_number, k.version, k.created_at, k.updated_at, u.name`

// scanKit scans a single joined row into a models.Kit.
func scanKit(scan func(dest ...any) error) (*models.Kit, error) {
	var k models.Kit
	var userID *int64
	var userName *string

	err := scan(
		&k.ID,
		&k.PartNumber,
		&k.Noun,
		&k.KitName,
		&k.StateStatus,
		&k.CurrentStatus,
		&k.Remarks,
		&k.Manufacturer,
		&k.Form48Number,
		&userID,
		&k.DieRequired,
		&k.DieNumber,
		&k.Version,
		&k.CreatedAt,
		&k.UpdatedAt,
		&userName,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		k.UserID = *userID
	}

	if userName != nil {
		k.UserName = *userName
	}

	return &k, nil
}

// collectKits scans all rows into a kit slice.
func collectKits(rows pgx.Rows) ([]models.Kit, error) {
	kits := make([]models.Kit, 0, 16)

	for rows.Next() {
		k, err := scanKit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning kit row: %w", err)
		}

		kits = append(kits, *k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kit rows: %w", err)
	}

	return kits, nil
}
