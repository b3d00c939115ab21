package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/security"
	"github.com/rs/zerolog/log"
)

// AuthService keeps a browser's authentication state in its storage area
type AuthService struct {
	client    *backend.Client
	inspector *security.TokenInspector
}

// NewAuthService creates a new auth service. With a nil inspector only token
// presence counts as authenticated.
func NewAuthService(client *backend.Client, inspector *security.TokenInspector) *AuthService {
	return &AuthService{
		client:    client,
		inspector: inspector,
	}
}

// Login exchanges credentials for a token, stores it and caches the profile.
// A failed profile fetch does not fail the login.
func (s *AuthService) Login(ctx context.Context, ls domain.LocalStorage, username, password string) (*domain.Token, error) {
	if err := validate.Struct(domain.LoginRequest{Username: username, Password: password}); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token domain.Token
	if err := s.client.PostForm(ctx, "/auth/token", form, &token); err != nil {
		return nil, err
	}

	if err := ls.SetItem(ctx, domain.StorageKeyToken, token.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	if _, err := s.GetCurrentUser(ctx, ls); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to fetch profile after login")
	}

	return &token, nil
}

// Register creates a new account on the backend
func (s *AuthService) Register(ctx context.Context, input domain.RegisterRequest) (*domain.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var user domain.User
	if err := s.client.Post(ctx, "/auth/register", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentUser fetches the profile of the stored token and caches it
func (s *AuthService) GetCurrentUser(ctx context.Context, ls domain.LocalStorage) (*domain.User, error) {
	if token := s.Token(ctx, ls); token != "" {
		ctx = backend.WithToken(ctx, token)
	}

	var user domain.User
	if err := s.client.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := ls.SetItem(ctx, domain.StorageKeyCurrentUser, string(data)); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	return &user, nil
}

// CurrentUser returns the cached profile, or nil when none is stored
func (s *AuthService) CurrentUser(ctx context.Context, ls domain.LocalStorage) (*domain.User, error) {
	raw, err := ls.GetItem(ctx, domain.StorageKeyCurrentUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// Logout forgets the token and the cached profile
func (s *AuthService) Logout(ctx context.Context, ls domain.LocalStorage) error {
	return errors.Join(
		ls.RemoveItem(ctx, domain.StorageKeyToken),
		ls.RemoveItem(ctx, domain.StorageKeyCurrentUser),
	)
}

// IsAuthenticated reports whether a token is stored. Expiry is only
// considered when the service was built with an inspector.
func (s *AuthService) IsAuthenticated(ctx context.Context, ls domain.LocalStorage) bool {
	token := s.Token(ctx, ls)
	if token == "" {
		return false
	}
	if s.inspector != nil && s.inspector.Expired(token) {
		return false
	}
	return true
}

// Token returns the stored access token or an empty string
func (s *AuthService) Token(ctx context.Context, ls domain.LocalStorage) string {
	token, err := ls.GetItem(ctx, domain.StorageKeyToken)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Msg("Failed to read token")
		}
		return ""
	}
	return token
}
