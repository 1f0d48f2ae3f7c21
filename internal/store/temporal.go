package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kitworks/kittrack/internal/models"
)

// TemporalStore answers point-in-time queries: the state of one kit, or
// the whole kit set, as it existed at an arbitrary past instant. It is
// read-only; reconstruction is a pure function of the stored history
// (models.Rewind), so repeated calls with no intervening writes return
// identical results.
type TemporalStore struct {
	Base
}

// NewTemporalStore creates a new TemporalStore.
func NewTemporalStore(base Base) *TemporalStore {
	return &TemporalStore{Base: base}
}

// GetKitAt returns the state of a kit as it existed at instant t.
// A kit created after t did not exist then and yields ErrKitNotFound.
func (s *TemporalStore) GetKitAt(ctx context.Context, kitID int64, t time.Time) (*models.Kit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconstructing kit: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	kit, err := fetchKit(ctx, tx, kitID)
	if err != nil {
		return nil, err
	}

	if kit.CreatedAt.After(t) {
		return nil, models.ErrKitNotFound
	}

	entries, err := queryHistoryRows(ctx, tx,
		historySelect+" WHERE cl.kit_id = $1 ORDER BY cl.changed_at ASC, cl.version ASC", kitID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing reconstruction query: %w", err)
	}

	at, err := models.Rewind(*kit, entries, t)
	if err != nil {
		return nil, fmt.Errorf("replaying kit %d history: %w", kitID, err)
	}

	return &at, nil
}

// ListKitsAt returns every kit that existed at instant t, each rewound to
// its state at t, ordered by part number. The kit rows and the change
// history must come from a single snapshot: a writer committing between
// the two reads would pair a post-commit row with a pre-commit history,
// a state no serial execution produces. Both queries therefore run inside
// one repeatable-read transaction; only the rewind itself, a pure
// function per kit, fans out across goroutines.
func (s *TemporalStore) ListKitsAt(ctx context.Context, t time.Time) ([]models.Kit, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconstructing kit set: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	rows, err := tx.Query(ctx, `SELECT `+kitColumns+`
		FROM kits k
		LEFT JOIN users u ON k.user_id = u.id
		WHERE k.created_at <= $1
		ORDER BY k.part_number, k.id`, t)
	if err != nil {
		return nil, fmt.Errorf("querying kits at date: %w", err)
	}
	defer rows.Close()

	kits, err := collectKits(rows)
	if err != nil {
		return nil, err
	}

	entries, err := queryHistoryRows(ctx, tx,
		historySelect+" ORDER BY cl.changed_at ASC, cl.version ASC")
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing kit set query: %w", err)
	}

	byKit := make(map[int64][]models.ChangeLogEntry, len(kits))
	for _, e := range entries {
		byKit[e.KitID] = append(byKit[e.KitID], e)
	}

	out := make([]models.Kit, len(kits))

	var g errgroup.Group

	for i, kit := range kits {
		i, kit := i, kit
		g.Go(func() error {
			at, rErr := models.Rewind(kit, byKit[kit.ID], t)
			if rErr != nil {
				return fmt.Errorf("replaying kit %d history: %w", kit.ID, rErr)
			}

			out[i] = at

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PartNumber != out[j].PartNumber {
			return out[i].PartNumber < out[j].PartNumber
		}

		return out[i].ID < out[j].ID
	})

	return out, nil
}
