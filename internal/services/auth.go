// Package services contains the application services behind the CloudPix
// consoles. Each service composes API calls with the local session and the
// query cache; all authoritative checks stay server-side.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
	"github.com/dbelyaev-dev/cloudpix/internal/session"
)

// AuthAPI is the slice of the API client the auth service needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.Token, error)
	Register(ctx context.Context, req api.RegisterRequest) (models.User, error)
	Me(ctx context.Context) (models.User, error)
	MeAs(ctx context.Context, token string) (models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// AuthService signs users in and out and changes passwords.
//
// Contract:
//   - Login: authenticate, resolve the identity, persist the session.
//   - Logout: clear the persisted session.
//   - ChangePassword: validate locally, then submit; no request is issued
//     when validation fails.
type AuthService struct {
	api  AuthAPI
	sess *session.Store
}

func NewAuthService(apiClient AuthAPI, sess *session.Store) *AuthService {
	return &AuthService{api: apiClient, sess: sess}
}

// Login runs the credentials → token → identity sequence and persists the
// resulting session. The loading flag is held for the whole sequence so
// guards do not bounce the user mid-login.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	s.sess.SetLoading(true)
	defer s.sess.SetLoading(false)

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}

	user, err := s.api.MeAs(ctx, token.AccessToken)
	if err != nil {
		return models.User{}, fmt.Errorf("identity lookup error: %w", err)
	}

	if err := s.sess.SetAuth(ctx, user, token.AccessToken); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

// Register creates a new account. It does not sign the user in; the portal
// prompts for a login afterwards.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	switch {
	case email == "" || password == "":
		return models.User{}, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	case len(password) < 6:
		return models.User{}, fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}
	return s.api.Register(ctx, api.RegisterRequest{Email: email, Password: password})
}

// ValidateSession confirms a restored session is still accepted by the
// backend and refreshes the stored identity. A rejected token clears the
// session, so the caller falls through to the login prompt.
func (s *AuthService) ValidateSession(ctx context.Context) error {
	if !s.sess.Authenticated() {
		return nil
	}

	user, err := s.api.Me(ctx)
	if errors.Is(err, common.ErrUnauthorized) {
		if clearErr := s.sess.ClearAuth(ctx); clearErr != nil {
			return clearErr
		}
		return common.ErrSessionExpired
	}
	if err != nil {
		return fmt.Errorf("session check error: %w", err)
	}

	return s.sess.SetAuth(ctx, user, s.sess.Token())
}

// Logout clears the persisted session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sess.ClearAuth(ctx)
}

// ChangePassword validates the form locally and submits the change. Every
// validation failure wraps common.ErrValidation and is raised before any
// network call.
func (s *AuthService) ChangePassword(ctx context.Context, current, next, confirm string) error {
	switch {
	case current == "" || next == "" || confirm == "":
		return fmt.Errorf("%w: all fields are required", common.ErrValidation)
	case len(next) < 6:
		return fmt.Errorf("%w: new password must be at least 6 characters", common.ErrValidation)
	case next != confirm:
		return fmt.Errorf("%w: new passwords do not match", common.ErrValidation)
	case current == next:
		return fmt.Errorf("%w: new password must be different from current password", common.ErrValidation)
	}

	return s.api.ChangePassword(ctx, current, next)
}
