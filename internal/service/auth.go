// Package service holds the typed facades the view layer calls. Each facade
// maps 1:1 onto the backend's REST endpoints through the shared API client;
// none of them retries, caches, or recovers beyond the documented soft
// failures.
package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/stockwatch/stockwatch-go/internal/api"
	"github.com/stockwatch/stockwatch-go/internal/model"
	"github.com/stockwatch/stockwatch-go/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRegistrationFailed = errors.New("registration failed")
)

// AuthService handles login, registration, and local session bookkeeping.
type AuthService struct {
	client *api.Client
	store  session.Store
}

// NewAuthService creates a new AuthService.
func NewAuthService(client *api.Client, store session.Store) *AuthService {
	return &AuthService{client: client, store: store}
}

// Login authenticates against the backend. On success the session is saved
// into the store before Login returns, so any follow-up authenticated call
// already sees the new token.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.AuthResponse, error) {
	req := model.LoginRequest{Username: username, Password: password}

	var resp model.AuthResponse
	err := s.client.Do(ctx, http.MethodPost, "/auth/login", nil, req, &resp)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if err := s.store.Save(session.Session{Token: resp.Token, User: resp.User()}); err != nil {
		return model.AuthResponse{}, err
	}

	return resp, nil
}

// Register creates a new account. The success contract matches Login: the
// backend returns a token immediately and the session is saved before Register
// returns.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.AuthResponse, error) {
	req := model.RegisterRequest{Username: username, Email: email, Password: password}

	var resp model.AuthResponse
	err := s.client.Do(ctx, http.MethodPost, "/auth/register", nil, req, &resp)
	if err != nil {
		var se *api.StatusError
		switch {
		case errors.Is(err, api.ErrConflict), errors.As(err, &se):
			// Duplicate username/email or a validation rejection.
			return model.AuthResponse{}, errors.Join(ErrRegistrationFailed, err)
		default:
			return model.AuthResponse{}, err
		}
	}

	if err := s.store.Save(session.Session{Token: resp.Token, User: resp.User()}); err != nil {
		return model.AuthResponse{}, err
	}

	return resp, nil
}

// Logout discards the local session. Purely local, no network call: the
// backend's tokens are stateless and simply expire.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// IsAuthenticated reports whether a session token is stored.
func (s *AuthService) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// CurrentUser returns the cached user profile, if a session exists.
func (s *AuthService) CurrentUser() (model.User, bool) {
	sess, ok := s.store.Load()
	if !ok {
		return model.User{}, false
	}
	return sess.User, true
}
