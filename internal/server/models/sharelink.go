package models

import "time"

// ShareLink grants time-limited read access to a single contact. The token
// resolves to the record with its phone still in ciphertext form.
type ShareLink struct {
	ID        int64
	Token     string
	ContactID int64
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
