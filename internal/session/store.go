package session

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/repository"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/google/uuid"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// TokenKey is where the credentials are persisted, apart from the state document.
const TokenKey = "token"

// credentials pairs the backend bearer token with the opaque id handed to
// the browser that signed in. They are always written together.
type credentials struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}

// State is the persisted dashboard state.
type State struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Theme           Theme         `json:"theme"`
	User            *domain.User  `json:"user"`
	Members         []domain.User `json:"members"`
}

// Grant is what a successful sign-in hands back to the caller. SessionID
// must accompany every later request as a bearer credential.
type Grant struct {
	SessionID string `json:"sessionId"`
	State
}

func defaultState() State {
	return State{Theme: ThemeDark, Members: []domain.User{}}
}

// Store owns the dashboard state. All mutation goes through its methods and
// is written through to the repository before the method returns.
type Store struct {
	mu        sync.RWMutex
	repo      repository.StateRepository
	namespace string
	state     State
	creds     credentials
}

// NewStore loads any previously persisted state under namespace.
func NewStore(ctx context.Context, repo repository.StateRepository, namespace string) (*Store, error) {
	s := &Store{repo: repo, namespace: namespace, state: defaultState()}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh reloads state and token from the repository, picking up changes
// made by other processes sharing it.
func (s *Store) Refresh(ctx context.Context) error {
	state := defaultState()
	data, err := s.repo.Get(ctx, s.namespace)
	switch {
	case errors.Is(err, customError.ErrNotFound):
	case err != nil:
		return customError.WrapStateError(err)
	default:
		if err := json.Unmarshal(data, &state); err != nil {
			return customError.WrapStateError(fmt.Errorf("decode %s: %w", s.namespace, err))
		}
		if state.Theme != ThemeLight {
			state.Theme = ThemeDark
		}
		if state.Members == nil {
			state.Members = []domain.User{}
		}
	}

	var creds credentials
	data, err = s.repo.Get(ctx, TokenKey)
	switch {
	case errors.Is(err, customError.ErrNotFound):
	case err != nil:
		return customError.WrapStateError(err)
	default:
		if err := json.Unmarshal(data, &creds); err != nil {
			return customError.WrapStateError(fmt.Errorf("decode token: %w", err))
		}
	}

	// The state document is written before the credentials on login and
	// after them on logout, so a reader between the two writes must not
	// report a session it cannot authorize.
	if creds.Token == "" || creds.SessionID == "" {
		creds = credentials{}
		state.IsAuthenticated = false
	}

	s.mu.Lock()
	s.state = state
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Token returns the bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// Authorize reports whether sessionID is the id issued by the current login.
func (s *Store) Authorize(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sessionID == "" || s.creds.Token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sessionID), []byte(s.creds.SessionID)) == 1
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	snap.Members = append([]domain.User{}, s.state.Members...)
	return snap
}

// Login stores token, marks the session authenticated and returns a new
// session id. Any id issued by an earlier login stops authorizing.
func (s *Store) Login(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasAuthenticated := s.state.IsAuthenticated
	s.state.IsAuthenticated = true
	if err := s.persist(ctx); err != nil {
		s.state.IsAuthenticated = wasAuthenticated
		return "", err
	}

	s.creds = credentials{Token: token, SessionID: uuid.NewString()}
	if err := s.persistCredentials(ctx); err != nil {
		s.creds = credentials{}
		s.state.IsAuthenticated = false
		return "", err
	}
	return s.creds.SessionID, nil
}

// Logout clears the user and the credentials. Theme and members survive.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = false
	s.state.User = nil
	s.creds = credentials{}
	if err := s.repo.Delete(ctx, TokenKey); err != nil {
		return customError.WrapStateError(err)
	}
	return s.persist(ctx)
}

func (s *Store) SetIsAuthenticated(ctx context.Context, authenticated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = authenticated
	return s.persist(ctx)
}

// ToggleTheme flips between dark and light and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Theme == ThemeDark {
		s.state.Theme = ThemeLight
	} else {
		s.state.Theme = ThemeDark
	}
	return s.state.Theme, s.persist(ctx)
}

func (s *Store) SetUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = &user
	return s.persist(ctx)
}

func (s *Store) SetMembers(ctx context.Context, members []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Members = append([]domain.User{}, members...)
	return s.persist(ctx)
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return customError.WrapStateError(err)
	}
	if err := s.repo.Set(ctx, s.namespace, data); err != nil {
		return customError.WrapStateError(err)
	}
	return nil
}

func (s *Store) persistCredentials(ctx context.Context) error {
	data, err := json.Marshal(s.creds)
	if err != nil {
		return customError.WrapStateError(err)
	}
	if err := s.repo.Set(ctx, TokenKey, data); err != nil {
		return customError.WrapStateError(err)
	}
	return nil
}
