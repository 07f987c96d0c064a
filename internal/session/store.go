// Package session holds the authenticated identity and bearer token for the
// lifetime of a console run, persisting both so a restart resumes the same
// session. The store is an explicit dependency of the API client rather than
// ambient global state.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	keyAccessToken = "access_token"
	keyAuthUser    = "auth_user"
)

// Store keeps the current user identity and bearer token in memory and
// mirrors them to a durable Repository. All accessors are safe for use from
// the dashboard watcher goroutine.
type Store struct {
	mu      sync.RWMutex
	repo    Repository
	user    *models.User
	token   string
	loading bool
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Hydrate loads any persisted session from the repository. Absent state
// yields an unauthenticated session. A stored user that no longer parses is
// treated as absent and both keys are wiped.
func (s *Store) Hydrate(ctx context.Context) error {
	token, err := s.repo.Get(ctx, keyAccessToken)
	if err != nil {
		return err
	}
	rawUser, err := s.repo.Get(ctx, keyAuthUser)
	if err != nil {
		return err
	}

	if len(token) == 0 || len(rawUser) == 0 {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return s.repo.Clear(ctx)
	}

	s.mu.Lock()
	s.user = &user
	s.token = string(token)
	s.mu.Unlock()
	return nil
}

// SetAuth persists the token and user and updates in-memory state.
// Subsequent API calls include the token.
func (s *Store) SetAuth(ctx context.Context, user models.User, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = s.repo.SetAll(ctx, map[string][]byte{
		keyAccessToken: []byte(token),
		keyAuthUser:    rawUser,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.loading = false
	s.mu.Unlock()
	return nil
}

// ClearAuth removes persisted and in-memory state. Clearing an already empty
// session is a no-op, so forced-logout paths can call it unconditionally.
func (s *Store) ClearAuth(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.loading = false
	s.mu.Unlock()
	return nil
}

// SetLoading sets the advisory in-flight-login flag consulted by guards to
// avoid bouncing the user to a login prompt mid-login.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns a copy of the current identity, or nil when unauthenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// TokenExpiry decodes the bearer token's exp claim without verifying the
// signature (the server remains the authority; this only powers a friendly
// re-login prompt). Returns the zero time if there is no token or no claim.
func (s *Store) TokenExpiry() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
