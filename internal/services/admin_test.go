package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/cache"
	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

type fakeAdminAPI struct {
	createCalls  int
	statsCalls   int
	healthCalls  int
	testCalls    map[int]int
	defaultTests int

	createErr  error
	testErr    error
	defaultErr error

	createdTenant models.Tenant
	stats         models.SystemStats
	health        models.HealthReport
	testStatus    models.ConnectionStatus

	// blockTest, when non-nil, holds the test call until released so the
	// in-flight tracker state can be observed.
	blockTest chan struct{}
	started   chan struct{}
}

func newFakeAdminAPI() *fakeAdminAPI {
	return &fakeAdminAPI{testCalls: make(map[int]int)}
}

func (f *fakeAdminAPI) CreateTenant(ctx context.Context, req api.TenantCreateRequest) (models.Tenant, error) {
	f.createCalls++
	if f.createErr != nil {
		return models.Tenant{}, f.createErr
	}
	return f.createdTenant, nil
}

func (f *fakeAdminAPI) ListTenants(ctx context.Context, skip, limit int) ([]models.Tenant, error) {
	return nil, nil
}

func (f *fakeAdminAPI) GetTenantStats(ctx context.Context, tenantID int) (models.TenantStats, error) {
	return models.TenantStats{TenantID: tenantID}, nil
}

func (f *fakeAdminAPI) GetTenantDetails(ctx context.Context, tenantID int) (models.TenantDetails, error) {
	return models.TenantDetails{}, nil
}

func (f *fakeAdminAPI) UpdateTenant(ctx context.Context, tenantID int, req api.TenantUpdateRequest) (models.Tenant, error) {
	return models.Tenant{ID: tenantID}, nil
}

func (f *fakeAdminAPI) UpdateTenantStorageLimit(ctx context.Context, tenantID, storageLimitMB int, expiresAt *time.Time) (models.Tenant, error) {
	return models.Tenant{ID: tenantID, StorageLimitMB: storageLimitMB}, nil
}

func (f *fakeAdminAPI) DeleteTenant(ctx context.Context, tenantID int) error { return nil }

func (f *fakeAdminAPI) SystemStats(ctx context.Context) (models.SystemStats, error) {
	f.statsCalls++
	return f.stats, nil
}

func (f *fakeAdminAPI) SystemHealth(ctx context.Context) (models.HealthReport, error) {
	f.healthCalls++
	return f.health, nil
}

func (f *fakeAdminAPI) ListStorageCredentials(ctx context.Context) ([]models.StorageCredential, error) {
	return nil, nil
}

func (f *fakeAdminAPI) TestDefaultCredential(ctx context.Context) (models.ConnectionStatus, error) {
	f.defaultTests++
	if f.defaultErr != nil {
		return models.ConnectionStatus{}, f.defaultErr
	}
	return f.testStatus, nil
}

func (f *fakeAdminAPI) TestCredential(ctx context.Context, credentialID int) (models.ConnectionStatus, error) {
	f.testCalls[credentialID]++
	if f.blockTest != nil {
		close(f.started)
		<-f.blockTest
	}
	if f.testErr != nil {
		return models.ConnectionStatus{}, f.testErr
	}
	return f.testStatus, nil
}

func (f *fakeAdminAPI) GetStorageConfig(ctx context.Context) (models.StorageConfig, error) {
	return models.StorageConfig{}, nil
}

func (f *fakeAdminAPI) UpdateStorageConfig(ctx context.Context, cfg models.StorageConfig) error {
	return nil
}

func (f *fakeAdminAPI) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return nil, nil
}

func (f *fakeAdminAPI) ListAPILogs(ctx context.Context, skip, limit int, filter api.APILogFilter) ([]models.APILogEntry, error) {
	return nil, nil
}

func newAdminService(fake *fakeAdminAPI) *AdminService {
	return NewAdminService(fake, cache.New(time.Minute))
}

func TestAdminServiceCreateTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("missing required fields issue no request", func(t *testing.T) {
		fake := newFakeAdminAPI()
		svc := newAdminService(fake)

		_, err := svc.CreateTenant(ctx, api.TenantCreateRequest{Name: "Acme"})
		require.ErrorIs(t, err, common.ErrValidation)
		require.Equal(t, 0, fake.createCalls)
	})

	t.Run("created tenant carries the one-time password", func(t *testing.T) {
		fake := newFakeAdminAPI()
		fake.createdTenant = models.Tenant{ID: 3, Subdomain: "acme", Password: "generated-pw"}
		svc := newAdminService(fake)

		tenant, err := svc.CreateTenant(ctx, api.TenantCreateRequest{
			Name: "Acme", Email: "owner@acme.test", Subdomain: "acme",
		})
		require.NoError(t, err)
		require.Equal(t, "generated-pw", tenant.Password)
	})
}

func TestAdminServiceDashboardCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAdminAPI()
	fake.stats = models.SystemStats{TotalTenants: 4}
	fake.health = models.HealthReport{"database": {Status: "healthy"}}
	svc := newAdminService(fake)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalTenants)

	// second read within the stale window is served from cache
	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, fake.statsCalls)

	// the watcher's refresh bypasses staleness and overwrites
	fake.stats = models.SystemStats{TotalTenants: 5}
	require.NoError(t, svc.RefreshDashboard(ctx))
	require.Equal(t, 2, fake.statsCalls)
	require.Equal(t, 1, fake.healthCalls)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalTenants)
	require.Equal(t, 2, fake.statsCalls)

	health, err := svc.Health(ctx)
	require.NoError(t, err)
	require.Equal(t, "healthy", health["database"].Status)
	require.Equal(t, 1, fake.healthCalls)
}

func TestAdminServiceConnectionTests(t *testing.T) {
	ctx := context.Background()

	t.Run("partial result keeps both diagnostic flags", func(t *testing.T) {
		fake := newFakeAdminAPI()
		rt := 41.5
		fake.testStatus = models.ConnectionStatus{
			Status:           models.StatusPartial,
			Message:          "Bucket accessible but file listing failed",
			BucketAccessible: true,
			ListAccessible:   false,
			ResponseTimeMs:   &rt,
		}
		svc := newAdminService(fake)

		status, err := svc.TestCredential(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, models.StatusPartial, status.Status)
		require.True(t, status.BucketAccessible)
		require.False(t, status.ListAccessible)

		tracked, ok := svc.TestResult(2)
		require.True(t, ok)
		require.Equal(t, models.StatusPartial, tracked.Status)
		require.True(t, tracked.BucketAccessible)
		require.False(t, tracked.ListAccessible)
	})

	t.Run("in-flight test is tracked as testing", func(t *testing.T) {
		fake := newFakeAdminAPI()
		fake.testStatus = models.ConnectionStatus{Status: models.StatusConnected}
		fake.blockTest = make(chan struct{})
		fake.started = make(chan struct{})
		svc := newAdminService(fake)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = svc.TestCredential(ctx, 1)
		}()

		<-fake.started
		tracked, ok := svc.TestResult(1)
		require.True(t, ok)
		require.Equal(t, models.StatusTesting, tracked.Status)

		close(fake.blockTest)
		<-done
		tracked, ok = svc.TestResult(1)
		require.True(t, ok)
		require.Equal(t, models.StatusConnected, tracked.Status)
	})

	t.Run("transport failure is tracked as error", func(t *testing.T) {
		fake := newFakeAdminAPI()
		fake.testErr = errors.New("service unavailable")
		svc := newAdminService(fake)

		status, err := svc.TestCredential(ctx, 3)
		require.Error(t, err)
		require.Equal(t, models.StatusError, status.Status)
		require.Contains(t, status.Message, "service unavailable")

		tracked, ok := svc.TestResult(3)
		require.True(t, ok)
		require.Equal(t, models.StatusError, tracked.Status)
	})

	t.Run("results are tracked per credential", func(t *testing.T) {
		fake := newFakeAdminAPI()
		fake.testStatus = models.ConnectionStatus{Status: models.StatusConnected}
		svc := newAdminService(fake)

		_, err := svc.TestCredential(ctx, 1)
		require.NoError(t, err)

		fake.testErr = errors.New("boom")
		_, err = svc.TestCredential(ctx, 2)
		require.Error(t, err)

		first, ok := svc.TestResult(1)
		require.True(t, ok)
		require.Equal(t, models.StatusConnected, first.Status)
		second, ok := svc.TestResult(2)
		require.True(t, ok)
		require.Equal(t, models.StatusError, second.Status)

		_, ok = svc.TestResult(99)
		require.False(t, ok)
	})

	t.Run("default configuration test uses the reserved key", func(t *testing.T) {
		fake := newFakeAdminAPI()
		fake.testStatus = models.ConnectionStatus{Status: models.StatusConnected, Bucket: "cloudpix-prod"}
		svc := newAdminService(fake)

		status, err := svc.TestCredential(ctx, DefaultCredentialID)
		require.NoError(t, err)
		require.Equal(t, models.StatusConnected, status.Status)
		require.Equal(t, 1, fake.defaultTests)
		require.Empty(t, fake.testCalls)

		tracked, ok := svc.TestResult(DefaultCredentialID)
		require.True(t, ok)
		require.Equal(t, "cloudpix-prod", tracked.Bucket)
	})
}

func TestAdminServiceStorageLimit(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAdminAPI()
	svc := newAdminService(fake)

	_, err := svc.UpdateStorageLimit(ctx, 1, 0, nil)
	require.ErrorIs(t, err, common.ErrValidation)

	tenant, err := svc.UpdateStorageLimit(ctx, 1, 2048, nil)
	require.NoError(t, err)
	require.Equal(t, 2048, tenant.StorageLimitMB)
}
