package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/cache"
	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

// DefaultCredentialID is the reserved tracker key for tests of the system
// default storage configuration (which has no credential row of its own).
const DefaultCredentialID = 0

// Query keys for the admin dashboard's read side.
const (
	queryStats  = "stats"
	queryHealth = "health"
)

// AdminAPI is the slice of the API client the admin service needs.
type AdminAPI interface {
	CreateTenant(ctx context.Context, req api.TenantCreateRequest) (models.Tenant, error)
	ListTenants(ctx context.Context, skip, limit int) ([]models.Tenant, error)
	GetTenantStats(ctx context.Context, tenantID int) (models.TenantStats, error)
	GetTenantDetails(ctx context.Context, tenantID int) (models.TenantDetails, error)
	UpdateTenant(ctx context.Context, tenantID int, req api.TenantUpdateRequest) (models.Tenant, error)
	UpdateTenantStorageLimit(ctx context.Context, tenantID, storageLimitMB int, expiresAt *time.Time) (models.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID int) error
	SystemStats(ctx context.Context) (models.SystemStats, error)
	SystemHealth(ctx context.Context) (models.HealthReport, error)
	ListStorageCredentials(ctx context.Context) ([]models.StorageCredential, error)
	TestDefaultCredential(ctx context.Context) (models.ConnectionStatus, error)
	TestCredential(ctx context.Context, credentialID int) (models.ConnectionStatus, error)
	GetStorageConfig(ctx context.Context) (models.StorageConfig, error)
	UpdateStorageConfig(ctx context.Context, cfg models.StorageConfig) error
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	ListAPILogs(ctx context.Context, skip, limit int, filter api.APILogFilter) ([]models.APILogEntry, error)
}

// AdminService backs the admin console: tenant CRUD, credential management
// with per-credential connection-test tracking, and the stats/health
// dashboard.
type AdminService struct {
	api     AdminAPI
	queries *cache.Query

	// mu guards tests, the map from credential id to the last known test
	// result. Multiple tests may be in flight at once, each independent,
	// with no ordering guarantee relative to the others.
	mu    sync.Mutex
	tests map[int]models.ConnectionStatus
}

func NewAdminService(apiClient AdminAPI, queries *cache.Query) *AdminService {
	return &AdminService{
		api:     apiClient,
		queries: queries,
		tests:   make(map[int]models.ConnectionStatus),
	}
}

func (s *AdminService) Tenants(ctx context.Context) ([]models.Tenant, error) {
	return s.api.ListTenants(ctx, 0, 100)
}

// CreateTenant validates the form locally (required fields only; subdomain
// uniqueness and everything else is the server's call) and submits it.
func (s *AdminService) CreateTenant(ctx context.Context, req api.TenantCreateRequest) (models.Tenant, error) {
	if req.Name == "" || req.Email == "" || req.Subdomain == "" {
		return models.Tenant{}, fmt.Errorf("%w: name, email and subdomain are required", common.ErrValidation)
	}
	return s.api.CreateTenant(ctx, req)
}

func (s *AdminService) TenantStats(ctx context.Context, tenantID int) (models.TenantStats, error) {
	return s.api.GetTenantStats(ctx, tenantID)
}

func (s *AdminService) TenantDetails(ctx context.Context, tenantID int) (models.TenantDetails, error) {
	return s.api.GetTenantDetails(ctx, tenantID)
}

func (s *AdminService) UpdateTenant(ctx context.Context, tenantID int, req api.TenantUpdateRequest) (models.Tenant, error) {
	return s.api.UpdateTenant(ctx, tenantID, req)
}

func (s *AdminService) UpdateStorageLimit(ctx context.Context, tenantID, storageLimitMB int, expiresAt *time.Time) (models.Tenant, error) {
	if storageLimitMB <= 0 {
		return models.Tenant{}, fmt.Errorf("%w: storage limit must be positive", common.ErrValidation)
	}
	return s.api.UpdateTenantStorageLimit(ctx, tenantID, storageLimitMB, expiresAt)
}

func (s *AdminService) DeleteTenant(ctx context.Context, tenantID int) error {
	return s.api.DeleteTenant(ctx, tenantID)
}

// Stats returns the dashboard aggregate, served from the query cache while
// fresh.
func (s *AdminService) Stats(ctx context.Context) (models.SystemStats, error) {
	v, err := s.queries.GetOr(queryStats, func() (any, error) {
		return s.api.SystemStats(ctx)
	})
	if err != nil {
		return models.SystemStats{}, err
	}
	return v.(models.SystemStats), nil
}

// Health returns the backend health report, served from the query cache
// while fresh.
func (s *AdminService) Health(ctx context.Context) (models.HealthReport, error) {
	v, err := s.queries.GetOr(queryHealth, func() (any, error) {
		return s.api.SystemHealth(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(models.HealthReport), nil
}

// RefreshDashboard refetches stats and health unconditionally and overwrites
// the cached copies. The background watcher calls this on a timer; its
// writes race harmlessly with user-initiated reads, last write wins.
func (s *AdminService) RefreshDashboard(ctx context.Context) error {
	stats, err := s.api.SystemStats(ctx)
	if err != nil {
		return err
	}
	health, err := s.api.SystemHealth(ctx)
	if err != nil {
		return err
	}
	s.queries.Put(queryStats, stats)
	s.queries.Put(queryHealth, health)
	return nil
}

func (s *AdminService) Credentials(ctx context.Context) ([]models.StorageCredential, error) {
	return s.api.ListStorageCredentials(ctx)
}

func (s *AdminService) StorageConfig(ctx context.Context) (models.StorageConfig, error) {
	return s.api.GetStorageConfig(ctx)
}

func (s *AdminService) UpdateStorageConfig(ctx context.Context, cfg models.StorageConfig) error {
	if cfg.KeyID == "" || cfg.Key == "" || cfg.Bucket == "" {
		return fmt.Errorf("%w: key id, key and bucket name are required", common.ErrValidation)
	}
	return s.api.UpdateStorageConfig(ctx, cfg)
}

// TestCredential runs a connection test for one credential
// (DefaultCredentialID tests the system default configuration) and tracks
// its result. While the test is in flight the tracked state is "testing".
// Results are stored exactly as the backend reported them: a partial result
// keeps its diagnostic flags and is never collapsed into an error.
func (s *AdminService) TestCredential(ctx context.Context, credentialID int) (models.ConnectionStatus, error) {
	s.setTestResult(credentialID, models.ConnectionStatus{Status: models.StatusTesting})

	var status models.ConnectionStatus
	var err error
	if credentialID == DefaultCredentialID {
		status, err = s.api.TestDefaultCredential(ctx)
	} else {
		status, err = s.api.TestCredential(ctx, credentialID)
	}
	if err != nil {
		status = models.ConnectionStatus{Status: models.StatusError, Message: err.Error()}
		s.setTestResult(credentialID, status)
		return status, err
	}

	s.setTestResult(credentialID, status)
	return status, nil
}

// TestResult returns the last known test result for a credential, if any.
func (s *AdminService) TestResult(credentialID int) (models.ConnectionStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.tests[credentialID]
	return status, ok
}

func (s *AdminService) setTestResult(credentialID int, status models.ConnectionStatus) {
	s.mu.Lock()
	s.tests[credentialID] = status
	s.mu.Unlock()
}

func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	return s.api.ListUsers(ctx, 0, 100)
}

func (s *AdminService) APILogs(ctx context.Context, limit int, filter api.APILogFilter) ([]models.APILogEntry, error) {
	return s.api.ListAPILogs(ctx, 0, limit, filter)
}
