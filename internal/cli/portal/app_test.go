package portal

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user@tenant.example",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, &fakePhotos{}, "")
	user := models.User{ID: 3, Email: "user@tenant.example"}

	require.Equal(t, "", app.getStatus())

	app.sess.SetLoading(true)
	require.Equal(t, "(signing in)", app.getStatus())
	app.sess.SetLoading(false)

	require.NoError(t, app.sess.SetAuth(ctx, user, signedToken(t, time.Now().Add(time.Hour))))
	require.Equal(t, "(user@tenant.example)", app.getStatus())

	require.NoError(t, app.sess.SetAuth(ctx, user, signedToken(t, time.Now().Add(time.Minute))))
	require.Equal(t, "(user@tenant.example, session expiring)", app.getStatus())

	// opaque tokens carry no expiry and never trigger the nudge
	require.NoError(t, app.sess.SetAuth(ctx, user, "not-a-jwt"))
	require.Equal(t, "(user@tenant.example)", app.getStatus())
}
