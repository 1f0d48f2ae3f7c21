package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kitworks/kittrack/internal/models"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func assertErrorContains(t *testing.T, err error, want string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}

	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected error containing %q, got %q", want, err.Error())
	}
}

func validCreate() models.CreateKitRequest {
	return models.CreateKitRequest{
		KitFields: models.KitFields{
			PartNumber:   "65B81724-11",
			Noun:         "BRACKET",
			KitName:      "FWD FITTING KIT",
			StateStatus:  "Ordered",
			Manufacturer: "ACME AEROSPACE",
		},
		UserID: 1,
	}
}

func TestCreateKitRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CreateKitRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*models.CreateKitRequest) {}},
		{name: "missing part number", mutate: func(r *models.CreateKitRequest) { r.PartNumber = "" }, wantErr: "partNumber is required"},
		{name: "missing noun", mutate: func(r *models.CreateKitRequest) { r.Noun = "" }, wantErr: "noun is required"},
		{name: "missing kit name", mutate: func(r *models.CreateKitRequest) { r.KitName = "" }, wantErr: "kitName is required"},
		{name: "missing state status", mutate: func(r *models.CreateKitRequest) { r.StateStatus = "" }, wantErr: "stateStatus is required"},
		{name: "missing manufacturer", mutate: func(r *models.CreateKitRequest) { r.Manufacturer = "" }, wantErr: "manufacturer is required"},
		{name: "part number too long", mutate: func(r *models.CreateKitRequest) { r.PartNumber = strings.Repeat("x", 256) }, wantErr: "exceeds maximum length"},
		{name: "die number too long", mutate: func(r *models.CreateKitRequest) { r.DieNumber = strings.Repeat("x", 256) }, wantErr: "exceeds maximum length"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			err := req.Validate()
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestUpdateKitRequest_Validate(t *testing.T) {
	t.Run("empty diff set is ErrNoChanges", func(t *testing.T) {
		req := models.UpdateKitRequest{UserID: 1}
		if err := req.Validate(); err != models.ErrNoChanges {
			t.Errorf("expected ErrNoChanges, got %v", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := models.UpdateKitRequest{
			Changes: []models.FieldDiff{
				{Field: models.FieldRemarks, NewValue: json.RawMessage(`"ok"`)},
				{Field: "serialNumber", NewValue: json.RawMessage(`"bad"`)},
			},
		}
		assertErrorContains(t, req.Validate(), "unknown kit field")
	})

	t.Run("known fields pass", func(t *testing.T) {
		req := models.UpdateKitRequest{
			Changes: []models.FieldDiff{
				{Field: models.FieldStateStatus, OldValue: json.RawMessage(`"Ordered"`), NewValue: json.RawMessage(`"Received"`)},
				{Field: models.FieldDieRequired, OldValue: json.RawMessage(`false`), NewValue: json.RawMessage(`true`)},
			},
		}
		assertNoError(t, req.Validate())
	})
}

func TestKitFields_ApplyField(t *testing.T) {
	t.Run("string field", func(t *testing.T) {
		var f models.KitFields
		assertNoError(t, f.ApplyField(models.FieldNoun, json.RawMessage(`"VALVE"`)))

		if f.Noun != "VALVE" {
			t.Errorf("expected VALVE, got %q", f.Noun)
		}
	})

	t.Run("bool field", func(t *testing.T) {
		var f models.KitFields
		assertNoError(t, f.ApplyField(models.FieldDieRequired, json.RawMessage(`true`)))

		if !f.DieRequired {
			t.Error("expected dieRequired true")
		}
	})

	t.Run("nullable field set and cleared", func(t *testing.T) {
		var f models.KitFields
		assertNoError(t, f.ApplyField(models.FieldCurrentStatus, json.RawMessage(`"MCL Submitted"`)))

		if f.CurrentStatus == nil || *f.CurrentStatus != "MCL Submitted" {
			t.Fatalf("expected MCL Submitted, got %v", f.CurrentStatus)
		}

		assertNoError(t, f.ApplyField(models.FieldCurrentStatus, json.RawMessage(`null`)))

		if f.CurrentStatus != nil {
			t.Errorf("expected nil, got %v", *f.CurrentStatus)
		}
	})

	t.Run("empty raw value treated as null", func(t *testing.T) {
		status := "Pending"
		f := models.KitFields{CurrentStatus: &status}
		assertNoError(t, f.ApplyField(models.FieldCurrentStatus, nil))

		if f.CurrentStatus != nil {
			t.Errorf("expected nil, got %v", *f.CurrentStatus)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		var f models.KitFields
		assertErrorContains(t, f.ApplyField("serialNumber", json.RawMessage(`"x"`)), "unknown kit field")
	})

	t.Run("type mismatch", func(t *testing.T) {
		var f models.KitFields
		assertErrorContains(t, f.ApplyField(models.FieldDieRequired, json.RawMessage(`"yes"`)), "decoding value")
	})
}

func TestKit_JSONFieldNamesAreCamelCase(t *testing.T) {
	raw, err := json.Marshal(models.Kit{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"createdAt", "updatedAt", "partNumber", "stateStatus"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in kit JSON, got %v", key, m)
		}
	}

	if strings.ContainsAny(string(raw), "_") {
		t.Errorf("kit JSON must not contain snake_case keys: %s", raw)
	}
}

func TestKnownField(t *testing.T) {
	for _, name := range []string{
		models.FieldPartNumber, models.FieldNoun, models.FieldKitName,
		models.FieldStateStatus, models.FieldCurrentStatus, models.FieldRemarks,
		models.FieldManufacturer, models.FieldForm48Number,
		models.FieldDieRequired, models.FieldDieNumber,
	} {
		if !models.KnownField(name) {
			t.Errorf("expected %q to be known", name)
		}
	}

	for _, name := range []string{"", "id", "version", "PartNumber", "part_number"} {
		if models.KnownField(name) {
			t.Errorf("expected %q to be unknown", name)
		}
	}
}
