package httpapi

import (
	"time"

	"github.com/phonesaver/phonesaver/internal/server/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type contactRequest struct {
	Name            string     `json:"name" binding:"required"`
	PhoneCipher     string     `json:"phone_cipher" binding:"required"`
	Tags            []string   `json:"tags"`
	LastInteraction *time.Time `json:"last_interaction"`
	Birthday        string     `json:"birthday"`
	Frequency       string     `json:"frequency"`
	PreferredTime   string     `json:"preferred_time"`
	Notes           string     `json:"notes"`
}

func (r *contactRequest) toModel(userID int64) *models.Contact {
	return &models.Contact{
		UserID:          userID,
		Name:            r.Name,
		PhoneCipher:     r.PhoneCipher,
		Tags:            r.Tags,
		LastInteraction: r.LastInteraction,
		Birthday:        r.Birthday,
		Frequency:       r.Frequency,
		PreferredTime:   r.PreferredTime,
		Notes:           r.Notes,
	}
}

type bulkCreateRequest struct {
	Contacts []contactRequest `json:"contacts" binding:"required"`
}

type bulkCreateResponse struct {
	IDs []int64 `json:"ids"`
}

// contactUpdateRequest mirrors contactRequest but with every field optional;
// absent fields are left untouched.
type contactUpdateRequest struct {
	Name            *string    `json:"name"`
	PhoneCipher     *string    `json:"phone_cipher"`
	Tags            *[]string  `json:"tags"`
	LastInteraction *time.Time `json:"last_interaction"`
	Birthday        *string    `json:"birthday"`
	Frequency       *string    `json:"frequency"`
	PreferredTime   *string    `json:"preferred_time"`
	Notes           *string    `json:"notes"`
}

func (r *contactUpdateRequest) toPatch() models.ContactPatch {
	return models.ContactPatch{
		Name:            r.Name,
		PhoneCipher:     r.PhoneCipher,
		Tags:            r.Tags,
		LastInteraction: r.LastInteraction,
		Birthday:        r.Birthday,
		Frequency:       r.Frequency,
		PreferredTime:   r.PreferredTime,
		Notes:           r.Notes,
	}
}

type contactResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	PhoneCipher     string     `json:"phone_cipher"`
	Tags            []string   `json:"tags,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Birthday        string     `json:"birthday,omitempty"`
	Frequency       string     `json:"frequency"`
	PreferredTime   string     `json:"preferred_time,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toContactResponse(c *models.Contact) contactResponse {
	return contactResponse{
		ID:              c.ID,
		Name:            c.Name,
		PhoneCipher:     c.PhoneCipher,
		Tags:            c.Tags,
		LastInteraction: c.LastInteraction,
		Birthday:        c.Birthday,
		Frequency:       c.Frequency,
		PreferredTime:   c.PreferredTime,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type tagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type lastInteractionRequest struct {
	LastInteraction time.Time `json:"last_interaction" binding:"required"`
}

type birthdayRequest struct {
	Birthday string `json:"birthday" binding:"required"`
}

type frequencyRequest struct {
	Frequency string `json:"frequency" binding:"required"`
}

type preferredTimeRequest struct {
	PreferredTime string `json:"preferred_time"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type reminderRequest struct {
	Date    time.Time `json:"date" binding:"required"`
	Message string    `json:"message" binding:"required"`
}

type reminderResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Message     string    `json:"message"`
	IsCompleted bool      `json:"is_completed"`
}

func toReminderResponse(r *models.Reminder) reminderResponse {
	return reminderResponse{
		ID:          r.ID,
		Date:        r.RemindAt,
		Message:     r.Message,
		IsCompleted: r.IsCompleted,
	}
}

type shareResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// sharedContactResponse is the public view behind a share token: just the
// name and the phone ciphertext, nothing else about the record or owner.
type sharedContactResponse struct {
	Name        string `json:"name"`
	PhoneCipher string `json:"phone_cipher"`
}

type backupResponse struct {
	StorageKey string `json:"storage_key"`
}

type restoreResponse struct {
	Restored int `json:"restored"`
}
