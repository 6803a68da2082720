package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/session"
	"github.com/ujjiboni/dashboard/internal/validation"
	customError "github.com/ujjiboni/dashboard/pkg/errors"
)

type AuthService struct {
	api       backend.API
	store     *session.Store
	cache     cache.QueryCache
	guard     guard.Guard
	validator *validation.Validator
}

func NewAuthService(
	api backend.API,
	store *session.Store,
	queryCache cache.QueryCache,
	submissions guard.Guard,
	validator *validation.Validator,
) *AuthService {
	return &AuthService{
		api:       api,
		store:     store,
		cache:     queryCache,
		guard:     submissions,
		validator: validator,
	}
}

// Login exchanges credentials for a token and starts a fresh session.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*session.Grant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	token, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: login returned no token", customError.ErrUnexpectedResponse)
	}

	sessionID, err := s.startSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return &session.Grant{SessionID: sessionID, State: s.store.Snapshot()}, nil
}

// Logout ends the session and forgets every cached query.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Logout(ctx); err != nil {
		return err
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return err
	}
	return nil
}

// HandleUnauthorized is the backend's 401 hook: the session is over.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	if s.store.Token() == "" {
		return
	}
	log.Println("Backend rejected the session token, logging out")
	if err := s.Logout(ctx); err != nil {
		log.Printf("Error logging out after 401: %v", err)
	}
}

// Profile returns the signed-in user and records it in the session.
func (s *AuthService) Profile(ctx context.Context) (*domain.User, error) {
	user, err := cache.Fetch(ctx, s.cache, cache.NewKey(cache.Profile), func(ctx context.Context) (*domain.User, error) {
		return s.api.Profile(ctx)
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// RevalidateProfile re-fetches the profile bypassing the cache. A rejected
// token logs the session out through the backend's 401 hook.
func (s *AuthService) RevalidateProfile(ctx context.Context) error {
	if s.store.Token() == "" {
		return nil
	}
	if err := s.cache.Invalidate(ctx, cache.Profile); err != nil {
		return err
	}
	_, err := s.Profile(ctx)
	if errors.Is(err, customError.ErrUnauthorized) {
		// Make sure the session ends even if no hook is registered.
		s.HandleUnauthorized(ctx)
	}
	return err
}

func (s *AuthService) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}

	release, err := s.guard.Acquire(ctx, "change-password")
	if err != nil {
		return "", err
	}
	defer release()

	return s.api.ChangePassword(ctx, req)
}

// SetupPassword completes a first login with the emailed OTP. A returned
// token signs the member in.
func (s *AuthService) SetupPassword(ctx context.Context, req domain.SetupPasswordRequest) (*domain.SetupPasswordResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	release, err := s.guard.Acquire(ctx, guard.Key("setup-password", req.Email))
	if err != nil {
		return nil, err
	}
	defer release()

	resp, err := s.api.SetupPassword(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		resp.SessionID, err = s.startSession(ctx, resp.Token)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// Session returns the current session state.
func (s *AuthService) Session() session.State {
	return s.store.Snapshot()
}

func (s *AuthService) ToggleTheme(ctx context.Context) (session.Theme, error) {
	return s.store.ToggleTheme(ctx)
}

func (s *AuthService) startSession(ctx context.Context, token string) (string, error) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return "", err
	}
	return s.store.Login(ctx, token)
}
