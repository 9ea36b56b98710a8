package services

import (
	"context"
	"fmt"

	"github.com/phonesaver/phonesaver/internal/client/repositories/metadata"
)

// Metadata keys for the persisted session.
const (
	metaAccessToken  = "access_token"
	metaRefreshToken = "refresh_token"
	metaEmail        = "email"
)

// AuthService manages the session: registration, login, token refresh, and
// persisting the session in the client cache so it survives restarts.
type AuthService struct {
	api      apiClient
	metadata metadata.Repository
}

func NewAuthService(api apiClient, md metadata.Repository) *AuthService {
	return &AuthService{api: api, metadata: md}
}

func (s *AuthService) Register(ctx context.Context, email, password string) error {
	if _, err := s.api.Register(ctx, email, password); err != nil {
		return err
	}
	return nil
}

// Login authenticates against the server and persists the token pair. The
// access token is installed on the API client for subsequent calls.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.storeSession(ctx, email, pair.AccessToken, pair.RefreshToken)
}

// RestoreSession re-installs a previously persisted access token, returning
// the signed-in email. It returns ("", nil) when no session is stored.
func (s *AuthService) RestoreSession(ctx context.Context) (string, error) {
	token, err := s.metadata.Get(ctx, metaAccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if token == nil {
		return "", nil
	}
	email, err := s.metadata.Get(ctx, metaEmail)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	s.api.SetAccessToken(string(token))
	return string(email), nil
}

// Refresh rotates the token pair using the stored refresh token.
func (s *AuthService) Refresh(ctx context.Context) error {
	refresh, err := s.metadata.Get(ctx, metaRefreshToken)
	if err != nil {
		return fmt.Errorf("failed to read refresh token: %w", err)
	}
	if refresh == nil {
		return fmt.Errorf("no stored session")
	}

	pair, err := s.api.Refresh(ctx, string(refresh))
	if err != nil {
		return err
	}

	email, err := s.metadata.Get(ctx, metaEmail)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	return s.storeSession(ctx, string(email), pair.AccessToken, pair.RefreshToken)
}

// Logout drops the stored session and the cached data with it.
func (s *AuthService) Logout(ctx context.Context) error {
	s.api.SetAccessToken("")
	if err := s.metadata.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *AuthService) storeSession(ctx context.Context, email, access, refresh string) error {
	if err := s.metadata.Set(ctx, metaAccessToken, []byte(access)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if err := s.metadata.Set(ctx, metaRefreshToken, []byte(refresh)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if err := s.metadata.Set(ctx, metaEmail, []byte(email)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	s.api.SetAccessToken(access)
	return nil
}
