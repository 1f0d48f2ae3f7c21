// Package models defines data types for the kit tracker.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Canonical field names used in change details. These match the JSON names
// of KitFields so that diffs recorded by the grid UI round-trip unchanged.
const (
	FieldPartNumber    = "partNumber"
	FieldNoun          = "noun"
	FieldKitName       = "kitName"
	FieldStateStatus   = "stateStatus"
	FieldCurrentStatus = "currentStatus"
	FieldRemarks       = "remarks"
	FieldManufacturer  = "manufacturer"
	FieldForm48Number  = "form48Number"
	FieldDieRequired   = "dieRequired"
	FieldDieNumber     = "dieNumber"
)

// KitFields holds the mutable attributes of a kit. Every change detail
// references exactly one of these fields by its JSON name.
type KitFields struct {
	PartNumber    string  `json:"partNumber"`
	Noun          string  `json:"noun"`
	KitName       string  `json:"kitName"`
	StateStatus   string  `json:"stateStatus"`
	CurrentStatus *string `json:"currentStatus"`
	Remarks       string  `json:"remarks"`
	Manufacturer  string  `json:"manufacturer"`
	Form48Number  string  `json:"form48Number"`
	DieRequired   bool    `json:"dieRequired"`
	DieNumber     string  `json:"dieNumber"`
}

// Kit represents the current state of one tracked kit record.
type Kit struct {
	ID int64 `json:"id"`
	KitFields
	UserID    int64     `json:"userId"`
	UserName  string    `json:"user,omitempty"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ApplyField sets the named field on f from its JSON-serialized value.
// Unknown field names are rejected rather than assigned blindly, so a
// corrupted change detail surfaces as an error instead of silently
// producing a wrong reconstruction.
func (f *KitFields) ApplyField(field string, raw json.RawMessage) error {
	switch field {
	case FieldPartNumber:
		return unmarshalField(field, raw, &f.PartNumber)
	case FieldNoun:
		return unmarshalField(field, raw, &f.Noun)
	case FieldKitName:
		return unmarshalField(field, raw, &f.KitName)
	case FieldStateStatus:
		return unmarshalField(field, raw, &f.StateStatus)
	case FieldCurrentStatus:
		return unmarshalField(field, raw, &f.CurrentStatus)
	case FieldRemarks:
		return unmarshalField(field, raw, &f.Remarks)
	case FieldManufacturer:
		return unmarshalField(field, raw, &f.Manufacturer)
	case FieldForm48Number:
		return unmarshalField(field, raw, &f.Form48Number)
	case FieldDieRequired:
		return unmarshalField(field, raw, &f.DieRequired)
	case FieldDieNumber:
		return unmarshalField(field, raw, &f.DieNumber)
	default:
		return ErrUnknownField(field)
	}
}

func unmarshalField(field string, raw json.RawMessage, dest any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding value for field %s: %w", field, err)
	}

	return nil
}

// KnownField reports whether name is a recognised kit field name.
func KnownField(name string) bool {
	switch name {
	case FieldPartNumber, FieldNoun, FieldKitName, FieldStateStatus,
		FieldCurrentStatus, FieldRemarks, FieldManufacturer,
		FieldForm48Number, FieldDieRequired, FieldDieNumber:
		return true
	default:
		return false
	}
}

// CreateKitRequest is the payload for creating a new kit.
type CreateKitRequest struct {
	KitFields
	UserID int64 `json:"userId"`
}

// maxFieldLen caps free-text field lengths.
const maxFieldLen = 255

// Validate checks that required fields are present and within limits.
func (r *CreateKitRequest) Validate() error {
	if r.PartNumber == "" {
		return ErrMissingPartNumber
	}

	if r.Noun == "" {
		return ErrMissingNoun
	}

	if r.KitName == "" {
		return ErrMissingKitName
	}

	if r.StateStatus == "" {
		return ErrMissingStateStatus
	}

	if r.Manufacturer == "" {
		return ErrMissingManufacturer
	}

	for name, v := range map[string]string{
		FieldPartNumber:   r.PartNumber,
		FieldNoun:         r.Noun,
		FieldKitName:      r.KitName,
		FieldStateStatus:  r.StateStatus,
		FieldManufacturer: r.Manufacturer,
		FieldForm48Number: r.Form48Number,
		FieldDieNumber:    r.DieNumber,
	} {
		if len(v) > maxFieldLen {
			return ErrFieldTooLong(name, maxFieldLen)
		}
	}

	return nil
}

// UpdateKitRequest is the payload for updating a kit through the versioned
// writer. Fields carries the full proposed state; Changes carries the
// field-level diffs the caller detected. The writer stores the diffs
// verbatim and does not recompute them.
type UpdateKitRequest struct {
	Fields  KitFields   `json:"kit"`
	Changes []FieldDiff `json:"changes"`
	UserID  int64       `json:"userId"`

	// ExpectedVersion, when non-zero, enables optimistic concurrency:
	// the update is rejected if the kit's current version differs.
	ExpectedVersion int `json:"expectedVersion,omitempty"`
}

// FieldDiff is one caller-supplied field-level change.
type FieldDiff struct {
	Field    string          `json:"field"`
	OldValue json.RawMessage `json:"oldValue"`
	NewValue json.RawMessage `json:"newValue"`
}

// Validate checks the diff list: a save with zero detected diffs is a
// no-op (ErrNoChanges), and every diff must reference a known field.
func (r *UpdateKitRequest) Validate() error {
	if len(r.Changes) == 0 {
		return ErrNoChanges
	}

	for _, c := range r.Changes {
		if !KnownField(c.Field) {
			return ErrUnknownField(c.Field)
		}
	}

	return nil
}
