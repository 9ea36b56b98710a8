package models

import "time"

// BackupSnapshot records one ciphertext-only snapshot written to object
// storage; restore always picks the newest row for the user.
type BackupSnapshot struct {
	ID         int64
	UserID     int64
	StorageKey string
	CreatedAt  time.Time
}
