package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kitworks/kittrack/internal/models"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

// history: created day 1 as Ordered/Pending, day 3 stateStatus -> Received,
// day 5 currentStatus Pending -> "MCL Submitted" and remarks set,
// day 7 stateStatus Received -> Issued.
func sampleKit() (models.Kit, []models.ChangeLogEntry) {
	kit := models.Kit{
		ID: 7,
		KitFields: models.KitFields{
			PartNumber:    "65B81724-11",
			Noun:          "BRACKET",
			KitName:       "FWD FITTING KIT",
			StateStatus:   "Issued",
			CurrentStatus: ptrTo("MCL Submitted"),
			Remarks:       "stored in cage 4",
			Manufacturer:  "ACME AEROSPACE",
		},
		Version:   4,
		CreatedAt: day(1),
		UpdatedAt: day(7),
	}

	entries := []models.ChangeLogEntry{
		{
			ID: 10, KitID: 7, Version: 2, ChangedAt: day(3), ChangedBy: "jsmith",
			Changes: []models.FieldChange{
				{Field: models.FieldStateStatus, OldValue: raw(`"Ordered"`), NewValue: raw(`"Received"`)},
			},
		},
		{
			ID: 11, KitID: 7, Version: 3, ChangedAt: day(5), ChangedBy: "jsmith",
			Changes: []models.FieldChange{
				{Field: models.FieldCurrentStatus, OldValue: raw(`"Pending"`), NewValue: raw(`"MCL Submitted"`)},
				{Field: models.FieldRemarks, OldValue: raw(`""`), NewValue: raw(`"stored in cage 4"`)},
			},
		},
		{
			ID: 12, KitID: 7, Version: 4, ChangedAt: day(7), ChangedBy: "mlee",
			Changes: []models.FieldChange{
				{Field: models.FieldStateStatus, OldValue: raw(`"Received"`), NewValue: raw(`"Issued"`)},
			},
		},
	}

	return kit, entries
}

func ptrTo[T any](v T) *T { return &v }

func TestRewind_AtOrAfterLatestChangeIsCurrentState(t *testing.T) {
	kit, entries := sampleKit()

	for _, at := range []time.Time{day(7), day(9)} {
		got, err := models.Rewind(kit, entries, at)
		assertNoError(t, err)

		if got.StateStatus != "Issued" || got.Version != 4 {
			t.Errorf("at %v: expected Issued v4, got %s v%d", at, got.StateStatus, got.Version)
		}
	}
}

func TestRewind_BetweenChanges(t *testing.T) {
	kit, entries := sampleKit()

	got, err := models.Rewind(kit, entries, day(4))
	assertNoError(t, err)

	if got.Version != 2 {
		t.Errorf("expected version 2, got %d", got.Version)
	}

	if got.StateStatus != "Received" {
		t.Errorf("expected Received, got %q", got.StateStatus)
	}

	if got.CurrentStatus == nil || *got.CurrentStatus != "Pending" {
		t.Errorf("expected currentStatus Pending, got %v", got.CurrentStatus)
	}

	if got.Remarks != "" {
		t.Errorf("expected empty remarks, got %q", got.Remarks)
	}
}

func TestRewind_BeforeAnyChangeIsCreationState(t *testing.T) {
	kit, entries := sampleKit()

	got, err := models.Rewind(kit, entries, day(2))
	assertNoError(t, err)

	if got.Version != 1 {
		t.Errorf("expected version 1, got %d", got.Version)
	}

	if got.StateStatus != "Ordered" {
		t.Errorf("expected Ordered, got %q", got.StateStatus)
	}

	// Untouched fields pass through unchanged.
	if got.PartNumber != kit.PartNumber || got.Noun != kit.Noun {
		t.Error("unchanged fields must survive the rewind")
	}
}

func TestRewind_NonMonotonicHistory(t *testing.T) {
	// stateStatus goes Ordered -> Received -> Ordered -> Issued; a forward
	// fold of new values would reconstruct the middle states wrongly.
	kit := models.Kit{
		ID:        3,
		KitFields: models.KitFields{StateStatus: "Issued", PartNumber: "P-1", Noun: "N", KitName: "K", Manufacturer: "M"},
		Version:   4,
		CreatedAt: day(1),
	}
	entries := []models.ChangeLogEntry{
		{ID: 1, KitID: 3, Version: 2, ChangedAt: day(2), Changes: []models.FieldChange{
			{Field: models.FieldStateStatus, OldValue: raw(`"Ordered"`), NewValue: raw(`"Received"`)},
		}},
		{ID: 2, KitID: 3, Version: 3, ChangedAt: day(4), Changes: []models.FieldChange{
			{Field: models.FieldStateStatus, OldValue: raw(`"Received"`), NewValue: raw(`"Ordered"`)},
		}},
		{ID: 3, KitID: 3, Version: 4, ChangedAt: day(6), Changes: []models.FieldChange{
			{Field: models.FieldStateStatus, OldValue: raw(`"Ordered"`), NewValue: raw(`"Issued"`)},
		}},
	}

	for _, tc := range []struct {
		at      time.Time
		status  string
		version int
	}{
		{day(1), "Ordered", 1},
		{day(3), "Received", 2},
		{day(5), "Ordered", 3},
		{day(6), "Issued", 4},
	} {
		got, err := models.Rewind(kit, entries, tc.at)
		assertNoError(t, err)

		if got.StateStatus != tc.status || got.Version != tc.version {
			t.Errorf("at %v: expected %s v%d, got %s v%d",
				tc.at, tc.status, tc.version, got.StateStatus, got.Version)
		}
	}
}

func TestRewind_SameTimestampUsesVersionOrder(t *testing.T) {
	kit := models.Kit{
		KitFields: models.KitFields{Remarks: "c"},
		Version:   3,
		CreatedAt: day(1),
	}
	at := day(2)
	entries := []models.ChangeLogEntry{
		{Version: 2, ChangedAt: at, Changes: []models.FieldChange{
			{Field: models.FieldRemarks, OldValue: raw(`"a"`), NewValue: raw(`"b"`)},
		}},
		{Version: 3, ChangedAt: at, Changes: []models.FieldChange{
			{Field: models.FieldRemarks, OldValue: raw(`"b"`), NewValue: raw(`"c"`)},
		}},
	}

	got, err := models.Rewind(kit, entries, day(1))
	assertNoError(t, err)

	if got.Remarks != "a" {
		t.Errorf("expected remarks a, got %q", got.Remarks)
	}
}

func TestRewind_IsPure(t *testing.T) {
	kit, entries := sampleKit()

	first, err := models.Rewind(kit, entries, day(4))
	assertNoError(t, err)

	second, err := models.Rewind(kit, entries, day(4))
	assertNoError(t, err)

	if first.StateStatus != second.StateStatus || first.Version != second.Version {
		t.Error("repeated rewinds with identical inputs must agree")
	}

	// Input kit is untouched.
	if kit.StateStatus != "Issued" || kit.Version != 4 {
		t.Error("rewind must not mutate its input")
	}
}

func TestRewind_CorruptDetailSurfacesError(t *testing.T) {
	kit, _ := sampleKit()
	entries := []models.ChangeLogEntry{
		{Version: 2, ChangedAt: day(3), Changes: []models.FieldChange{
			{Field: "bogusField", OldValue: raw(`"x"`)},
		}},
	}

	_, err := models.Rewind(kit, entries, day(1))
	assertErrorContains(t, err, "unknown kit field")
}
