// Package api is the HTTP client for the PhoneSaver server. It speaks the
// JSON surface under /api and translates status codes back into the shared
// sentinel errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/phonesaver/phonesaver/internal/common"
	"github.com/phonesaver/phonesaver/internal/contact"
)

type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAccessToken installs the bearer token used on protected calls.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisteredUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type Reminder struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Message     string    `json:"message"`
	IsCompleted bool      `json:"is_completed"`
}

type ShareLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SharedContact struct {
	Name        string `json:"name"`
	PhoneCipher string `json:"phone_cipher"`
}

type Insights struct {
	TotalContacts int64            `json:"total_contacts"`
	TagCounts     map[string]int64 `json:"tag_counts"`
}

type errorBody struct {
	Error string `json:"error"`
}

// do issues one JSON request. A non-nil out is decoded from a 2xx body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrValidation, eb.Error)
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limited, try again later", common.ErrorInternal)
	default:
		return fmt.Errorf("%w: server returned %d", common.ErrorInternal, resp.StatusCode)
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*RegisteredUser, error) {
	var out RegisteredUser
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var out TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var out TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh",
		refreshRequest{RefreshToken: refreshToken}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContact(ctx context.Context, rec *contact.Record) (*contact.Record, error) {
	var out contact.Record
	if err := c.do(ctx, http.MethodPost, "/api/contacts", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ListOptions struct {
	Query string
	Tag   string
	Sort  string
	Desc  bool
}

func (c *Client) ListContacts(ctx context.Context, opts ListOptions) ([]contact.Record, error) {
	q := url.Values{}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Desc {
		q.Set("order", "desc")
	}
	path := "/api/contacts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []contact.Record
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetContact(ctx context.Context, id int64) (*contact.Record, error) {
	var out contact.Record
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/contacts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ContactPatch mirrors the server's partial-update request; nil fields are
// left untouched.
type ContactPatch struct {
	Name            *string    `json:"name,omitempty"`
	PhoneCipher     *string    `json:"phone_cipher,omitempty"`
	Tags            *[]string  `json:"tags,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Birthday        *string    `json:"birthday,omitempty"`
	Frequency       *string    `json:"frequency,omitempty"`
	PreferredTime   *string    `json:"preferred_time,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

func (c *Client) UpdateContact(ctx context.Context, id int64, patch ContactPatch) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/contacts/%d", id), patch, nil)
}

func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", id), nil, nil)
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

func (c *Client) UpdateTags(ctx context.Context, id int64, tags []string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/contacts/%d/tags", id),
		tagsRequest{Tags: tags}, nil)
}

type lastInteractionRequest struct {
	LastInteraction time.Time `json:"last_interaction"`
}

func (c *Client) UpdateLastInteraction(ctx context.Context, id int64, at time.Time) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/contacts/%d/last-interaction", id),
		lastInteractionRequest{LastInteraction: at}, nil)
}

type birthdayRequest struct {
	Birthday string `json:"birthday"`
}

func (c *Client) UpdateBirthday(ctx context.Context, id int64, birthday string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/contacts/%d/birthday", id),
		birthdayRequest{Birthday: birthday}, nil)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (c *Client) UpdateNotes(ctx context.Context, id int64, notes string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/contacts/%d/notes", id),
		notesRequest{Notes: notes}, nil)
}

type reminderRequest struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

func (c *Client) AddReminder(ctx context.Context, contactID int64, date time.Time, message string) (*Reminder, error) {
	var out Reminder
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/contacts/%d/reminders", contactID),
		reminderRequest{Date: date, Message: message}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListReminders(ctx context.Context, contactID int64) ([]Reminder, error) {
	var out []Reminder
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/contacts/%d/reminders", contactID), nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CompleteReminder(ctx context.Context, contactID int64, reminderID string) error {
	return c.do(ctx, http.MethodPut,
		fmt.Sprintf("/api/contacts/%d/reminders/%s/complete", contactID, reminderID), nil, nil)
}

func (c *Client) DeleteReminder(ctx context.Context, contactID int64, reminderID string) error {
	return c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/api/contacts/%d/reminders/%s", contactID, reminderID), nil, nil)
}

func (c *Client) ShareContact(ctx context.Context, contactID int64) (*ShareLink, error) {
	var out ShareLink
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/contacts/%d/share", contactID), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveShare(ctx context.Context, token string) (*SharedContact, error) {
	var out SharedContact
	if err := c.do(ctx, http.MethodGet, "/api/share/"+token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Backup(ctx context.Context) (string, error) {
	var out struct {
		StorageKey string `json:"storage_key"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/backup", nil, &out); err != nil {
		return "", err
	}
	return out.StorageKey, nil
}

func (c *Client) Restore(ctx context.Context) (int, error) {
	var out struct {
		Restored int `json:"restored"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/restore", nil, &out); err != nil {
		return 0, err
	}
	return out.Restored, nil
}

func (c *Client) GetInsights(ctx context.Context) (*Insights, error) {
	var out Insights
	if err := c.do(ctx, http.MethodGet, "/api/insights", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
