package models

import (
	"strings"
	"time"
)

// Contact is the persisted contact row. The phone number is stored only as
// the client-produced ciphertext blob; the server never sees plaintext.
// Tags travel as a []string at the model boundary but rest comma-joined in a
// single column.
type Contact struct {
	ID              int64
	UserID          int64
	Name            string
	PhoneCipher     string
	Tags            []string
	LastInteraction *time.Time
	Birthday        string // YYYY-MM-DD, empty when unset
	Frequency       string
	PreferredTime   string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ContactPatch carries a partial update; nil fields are left untouched.
type ContactPatch struct {
	Name            *string
	PhoneCipher     *string
	Tags            *[]string
	LastInteraction *time.Time
	Birthday        *string
	Frequency       *string
	PreferredTime   *string
	Notes           *string
}

// JoinTags converts a tag list to its single-column storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags reverses JoinTags. An empty column yields a nil slice, not
// []string{""}.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
