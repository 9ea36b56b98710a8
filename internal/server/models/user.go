// Package models defines the server-side row types persisted by the
// repositories.
package models

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
