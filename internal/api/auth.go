package api

import (
	"context"
	"net/url"

	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

// Token is the OAuth2-style bearer-token response from the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The backend expects
// form-url-encoded credentials with the email in the username field.
// A 401 here means bad credentials, not an expired session, so the stored
// session is left alone.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token Token
	err := c.post(ctx, "/api/auth/login").Form(form).keepSessionOn401().Do(&token)
	return token, err
}

// RegisterRequest creates a new end-user account, optionally bound to a
// tenant.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID *int   `json:"tenant_id,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	var user models.User
	err := c.post(ctx, "/api/auth/register").JSON(req).Do(&user)
	return user, err
}

// Me returns the identity behind the current bearer token. A 401 is
// reported to the caller instead of forcing a logout: the login flow probes
// this endpoint while the session is still being established.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.get(ctx, "/api/auth/me").keepSessionOn401().Do(&user)
	return user, err
}

// MeAs is Me with an explicit token, for the window between a successful
// login and the session being persisted.
func (c *Client) MeAs(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := c.get(ctx, "/api/auth/me").Auth(token).keepSessionOn401().Do(&user)
	return user, err
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	return c.post(ctx, "/api/auth/change-password").JSON(req).Do(nil)
}
