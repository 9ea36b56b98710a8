// Package contact defines the contact record model shared by client and
// server, together with the pure validation and formatting rules for its
// fields. The phone number only ever appears here in ciphertext form;
// validation of the plaintext happens before encryption on the client.
package contact

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phonesaver/phonesaver/internal/common"
)

// Frequency says how often the user intends to contact this person.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// DefaultFrequency applies when a record is created without one.
const DefaultFrequency = FrequencyWeekly

// ParseFrequency validates a frequency value. The empty string maps to the
// default.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return DefaultFrequency, nil
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: frequency: unknown value %q", common.ErrValidation, s)
	}
}

// PreferredTime is the optional time of day the contact prefers to be reached.
type PreferredTime string

const (
	PreferredMorning   PreferredTime = "morning"
	PreferredAfternoon PreferredTime = "afternoon"
	PreferredEvening   PreferredTime = "evening"
	PreferredNight     PreferredTime = "night"
)

// ParsePreferredTime validates a preferred-time value. The empty string is
// allowed and means "no preference".
func ParsePreferredTime(s string) (PreferredTime, error) {
	switch p := PreferredTime(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PreferredMorning, PreferredAfternoon, PreferredEvening, PreferredNight:
		return p, nil
	default:
		return "", fmt.Errorf("%w: preferred_time: unknown value %q", common.ErrValidation, s)
	}
}

// BirthdayLayout is the only accepted calendar-date format.
const BirthdayLayout = "2006-01-02"

// Reminder is a user-scheduled prompt attached to a record. IsCompleted is
// toggled by the user only, never by the system.
type Reminder struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Message     string    `json:"message"`
	IsCompleted bool      `json:"is_completed"`
}

// NewReminder creates a reminder with a fresh UUID.
func NewReminder(date time.Time, message string) (Reminder, error) {
	if strings.TrimSpace(message) == "" {
		return Reminder{}, fmt.Errorf("%w: reminder message must not be empty", common.ErrValidation)
	}
	return Reminder{ID: uuid.NewString(), Date: date, Message: message}, nil
}

// Record is the contact record as it crosses the client/server boundary and
// rests in the client cache. The phone number exists only as PhoneCipher, an
// opaque base64 AEAD blob.
type Record struct {
	ID              int64         `json:"id"`
	OwnerID         int64         `json:"-"`
	Name            string        `json:"name"`
	PhoneCipher     string        `json:"phone_cipher"`
	Tags            []string      `json:"tags,omitempty"`
	LastInteraction *time.Time    `json:"last_interaction,omitempty"`
	Birthday        string        `json:"birthday,omitempty"`
	Frequency       Frequency     `json:"frequency"`
	PreferredTime   PreferredTime `json:"preferred_time,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Reminders       []Reminder    `json:"reminders,omitempty"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// ValidPhone reports whether s is a well-formed phone number: 10 to 15
// digits with an optional leading plus.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidBirthday reports whether s parses as a real calendar date in
// YYYY-MM-DD form. Impossible dates such as 1990-02-30 are rejected.
func ValidBirthday(s string) bool {
	_, err := time.Parse(BirthdayLayout, s)
	return err == nil
}

// FormatPhone renders a plaintext phone for display, grouping digits as
// 3-3-rest: "5551234567" becomes "555-123-4567". The stored record never
// holds this form; it is a presentation derivation only.
func FormatPhone(s string) string {
	var prefix string
	if strings.HasPrefix(s, "+") {
		prefix = "+"
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)

	switch {
	case len(digits) > 6:
		return prefix + digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) > 3:
		return prefix + digits[:3] + "-" + digits[3:]
	default:
		return prefix + digits
	}
}

// NormalizeTags trims whitespace, drops empty entries, and removes
// duplicates while preserving the order tags were entered in. A comma inside
// an entry acts as a separator: tags rest comma-joined in storage, so no
// single tag may contain one.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, entry := range tags {
		for _, t := range strings.Split(entry, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// SameRecord reports whether a and b are the same entity. Identity is
// defined solely by ID; field differences do not matter, which is what the
// merge logic after a restore relies on.
func SameRecord(a, b Record) bool {
	return a.ID != 0 && a.ID == b.ID
}

// Validate checks the record invariants. phone is the decrypted plaintext
// phone; callers that cannot decrypt must surface that error instead of
// calling Validate with a placeholder.
func (r *Record) Validate(phone string) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	if !ValidPhone(phone) {
		return fmt.Errorf("%w: phone: must be 10-15 digits with optional leading +", common.ErrValidation)
	}
	if r.Birthday != "" && !ValidBirthday(r.Birthday) {
		return fmt.Errorf("%w: birthday: must be a valid YYYY-MM-DD date", common.ErrValidation)
	}
	if _, err := ParseFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if _, err := ParsePreferredTime(string(r.PreferredTime)); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(r.Reminders))
	for _, rem := range r.Reminders {
		if strings.TrimSpace(rem.Message) == "" {
			return fmt.Errorf("%w: reminder message must not be empty", common.ErrValidation)
		}
		if _, ok := seen[rem.ID]; ok {
			return fmt.Errorf("%w: duplicate reminder id %q", common.ErrValidation, rem.ID)
		}
		seen[rem.ID] = struct{}{}
	}
	return nil
}
