package models

import (
	"encoding/json"
	"time"
)

// ChangeLogEntry represents one committed update transaction for a kit.
// Version is the kit's version after the change was applied; for a given
// kit the versions form a contiguous sequence starting at 2 (version 1 is
// the creation state and has no entry).
type ChangeLogEntry struct {
	ID        int64         `json:"id"`
	KitID     int64         `json:"kitId"`
	UserID    int64         `json:"-"`
	Version   int           `json:"version"`
	ChangedAt time.Time     `json:"changedAt"`
	ChangedBy string        `json:"changedBy"`
	Changes   []FieldChange `json:"changes"`
}

// FieldChange is one field-level old/new value pair within a ChangeLogEntry.
// Values are stored serialized since kit fields may be string, bool, or null.
type FieldChange struct {
	Field    string          `json:"field"`
	OldValue json.RawMessage `json:"oldValue"`
	NewValue json.RawMessage `json:"newValue"`
}

// ChangeFeedItem is one change-detail row joined with its kit and actor
// identity, for the flat cross-record audit feed.
type ChangeFeedItem struct {
	ID         int64           `json:"id"`
	KitID      int64           `json:"kitId"`
	KitName    string          `json:"kitName"`
	PartNumber string          `json:"partNumber"`
	Field      string          `json:"field"`
	OldValue   json.RawMessage `json:"oldValue"`
	NewValue   json.RawMessage `json:"newValue"`
	ChangedAt  time.Time       `json:"changedAt"`
	ChangedBy  string          `json:"username"`
}

// User is the actor identity attributed to changes.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
