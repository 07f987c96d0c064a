package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetOr_CachesUntilStale(t *testing.T) {
	q := New(time.Minute)
	now := time.Unix(1000, 0)
	q.now = func() time.Time { return now }

	calls := 0
	fetch := func() (any, error) {
		calls++
		return calls, nil
	}

	v, err := q.GetOr("photos", fetch)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	// fresh: served from cache
	v, err = q.GetOr("photos", fetch)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, 1, calls)

	// stale: refetched
	now = now.Add(2 * time.Minute)
	v, err = q.GetOr("photos", fetch)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestGetOr_FailedFetchCachesNothing(t *testing.T) {
	q := New(time.Minute)

	boom := errors.New("boom")
	_, err := q.GetOr("storage", func() (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	v, err := q.GetOr("storage", func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	q := New(time.Hour)

	calls := 0
	fetch := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := q.GetOr("photos", fetch)
	require.NoError(t, err)
	_, err = q.GetOr("storage", fetch)
	require.NoError(t, err)

	q.Invalidate("photos", "storage")

	v, err := q.GetOr("photos", fetch)
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestPeek_DoesNotFetch(t *testing.T) {
	q := New(time.Minute)
	now := time.Unix(1000, 0)
	q.now = func() time.Time { return now }

	_, ok := q.Peek("storage")
	require.False(t, ok)

	q.Put("storage", "snapshot")
	v, ok := q.Peek("storage")
	require.True(t, ok)
	require.Equal(t, "snapshot", v)

	// stale entries are not returned
	now = now.Add(2 * time.Minute)
	_, ok = q.Peek("storage")
	require.False(t, ok)
}

func TestPut_Overwrites(t *testing.T) {
	q := New(time.Hour)
	q.Put("stats", "first")
	q.Put("stats", "second")

	v, err := q.GetOr("stats", func() (any, error) { return "fetched", nil })
	require.NoError(t, err)
	require.Equal(t, "second", v)
}
