package models

import "time"

// Reminder rows are keyed by the client-generated UUID, which enforces the
// per-record uniqueness invariant at the engine level.
type Reminder struct {
	ID          string
	ContactID   int64
	RemindAt    time.Time
	Message     string
	IsCompleted bool
	CreatedAt   time.Time
}
