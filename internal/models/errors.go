package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingPartNumber   = errors.New("partNumber is required")
	ErrMissingNoun         = errors.New("noun is required")
	ErrMissingKitName      = errors.New("kitName is required")
	ErrMissingStateStatus  = errors.New("stateStatus is required")
	ErrMissingManufacturer = errors.New("manufacturer is required")
)

// Sentinel errors for entity lookups.
var (
	ErrKitNotFound  = errors.New("kit not found")
	ErrUserNotFound = errors.New("user not found")
)

// ErrNoChanges indicates a save with an empty diff set. It is a "nothing
// to do" signal rather than a fault: no version bump, no history entry.
var ErrNoChanges = errors.New("no changes to save")

// ErrVersionConflict indicates an optimistic concurrency failure: the kit
// was updated by someone else since the caller read it (maps to HTTP 409).
var ErrVersionConflict = errors.New("kit version conflict")

// ErrInvalidDateRange indicates a malformed or inverted date-range query.
var ErrInvalidDateRange = errors.New("invalid date range")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// ErrUnknownField returns an error indicating a change references a field
// name outside the kit schema.
func ErrUnknownField(field string) error {
	return fmt.Errorf("unknown kit field %q", field)
}
