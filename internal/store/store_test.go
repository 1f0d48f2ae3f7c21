package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/dbpool"
	"github.com/kitworks/kittrack/internal/models"
	"github.com/kitworks/kittrack/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase creates a Base with a fresh test user, cleaned up after the test.
// All kits created through the returned user ID are removed with it.
func setupTestBase(t *testing.T) (_ store.Base, userID int64) {
	t.Helper()

	env := getTestEnv(t)
	ctx := context.Background()

	tag := uuid.New().String()[:8]

	err := env.pool.QueryRow(ctx,
		"INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id",
		fmt.Sprintf("test-user-%s", tag), fmt.Sprintf("test-%s@example.com", tag),
	).Scan(&userID)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		// Delete in dependency order: details, logs, kits, user.
		env.pool.Exec(cleanCtx, "DELETE FROM change_details WHERE change_log_id IN (SELECT id FROM change_logs WHERE kit_id IN (SELECT id FROM kits WHERE user_id = $1))", userID) //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM change_logs WHERE kit_id IN (SELECT id FROM kits WHERE user_id = $1)", userID)                                                        //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM kits WHERE user_id = $1", userID)                                                                                                    //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM users WHERE id = $1", userID)                                                                                                        //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}, userID
}

// createTestKit inserts a kit through the store and fails the test on error.
func createTestKit(t *testing.T, ks *store.KitStore, userID int64, partNumber string) *models.Kit {
	t.Helper()

	kit, err := ks.CreateKit(context.Background(), models.CreateKitRequest{
		KitFields: models.KitFields{
			PartNumber:   partNumber,
			Noun:         "BRACKET",
			KitName:      "TEST FITTING KIT",
			StateStatus:  "Ordered",
			Manufacturer: "TEST MFG",
		},
		UserID: userID,
	})
	if err != nil {
		t.Fatalf("CreateKit: %v", err)
	}

	return kit
}

// applyUpdate runs one field change through the versioned writer.
func applyUpdate(t *testing.T, ks *store.KitStore, kit *models.Kit, userID int64, field, oldVal, newVal string) *models.Kit {
	t.Helper()

	fields := kit.KitFields
	if err := fields.ApplyField(field, json.RawMessage(newVal)); err != nil {
		t.Fatalf("ApplyField: %v", err)
	}

	updated, err := ks.UpdateKit(context.Background(), kit.ID, models.UpdateKitRequest{
		Fields: fields,
		Changes: []models.FieldDiff{
			{Field: field, OldValue: json.RawMessage(oldVal), NewValue: json.RawMessage(newVal)},
		},
		UserID: userID,
	})
	if err != nil {
		t.Fatalf("UpdateKit: %v", err)
	}

	return updated
}
