package session

import (
	"context"
	"testing"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for store tests.
type fakeRepo struct {
	data map[string][]byte
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{data: make(map[string][]byte)}
}

func (f *fakeRepo) Get(_ context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeRepo) Set(_ context.Context, key string, value []byte) error {
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeRepo) SetAll(_ context.Context, values map[string][]byte) error {
	for key, value := range values {
		f.data[key] = append([]byte(nil), value...)
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeRepo) Clear(_ context.Context) error {
	f.data = make(map[string][]byte)
	return nil
}

func TestStore_HydrateEmptyYieldsUnauthenticated(t *testing.T) {
	s := NewStore(newFakeRepo())
	require.NoError(t, s.Hydrate(context.Background()))
	require.False(t, s.Authenticated())
	require.Nil(t, s.User())
	require.Empty(t, s.Token())
}

func TestStore_SetAuthPersistsAndHydratesBack(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	s := NewStore(repo)
	user := models.User{ID: 7, Email: "owner@tenant.example", IsTenantAdmin: true}
	require.NoError(t, s.SetAuth(ctx, user, "tok-abc"))
	require.True(t, s.Authenticated())

	// a fresh store over the same repo resumes the session
	resumed := NewStore(repo)
	require.NoError(t, resumed.Hydrate(ctx))
	require.True(t, resumed.Authenticated())
	require.Equal(t, "tok-abc", resumed.Token())
	require.Equal(t, "owner@tenant.example", resumed.User().Email)
}

func TestStore_HydrateCorruptUserClearsSession(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "access_token", []byte("tok")))
	require.NoError(t, repo.Set(ctx, "auth_user", []byte("{not json")))

	s := NewStore(repo)
	require.NoError(t, s.Hydrate(ctx))
	require.False(t, s.Authenticated())
	require.Empty(t, repo.data)
}

func TestStore_ClearAuthWipesEverything(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	s := NewStore(repo)
	require.NoError(t, s.SetAuth(ctx, models.User{ID: 1, Email: "a@b.c"}, "tok"))
	require.NoError(t, s.ClearAuth(ctx))

	require.False(t, s.Authenticated())
	require.Nil(t, s.User())
	require.Empty(t, repo.data)

	// clearing twice is fine
	require.NoError(t, s.ClearAuth(ctx))
}

func TestStore_LoadingFlag(t *testing.T) {
	s := NewStore(newFakeRepo())
	require.False(t, s.Loading())
	s.SetLoading(true)
	require.True(t, s.Loading())

	// a completed login resets the flag
	require.NoError(t, s.SetAuth(context.Background(), models.User{ID: 1}, "tok"))
	require.False(t, s.Loading())
}

func TestStore_TokenExpiry(t *testing.T) {
	s := NewStore(newFakeRepo())
	require.True(t, s.TokenExpiry().IsZero())

	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user@tenant.example",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	require.NoError(t, s.SetAuth(context.Background(), models.User{ID: 1}, raw))
	require.Equal(t, exp.UTC(), s.TokenExpiry().UTC())

	// opaque tokens simply report no expiry
	require.NoError(t, s.SetAuth(context.Background(), models.User{ID: 1}, "not-a-jwt"))
	require.True(t, s.TokenExpiry().IsZero())
}
