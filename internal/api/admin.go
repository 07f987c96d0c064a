package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

// TenantCreateRequest describes a new tenant. Password is optional; the
// backend generates one when absent and returns it once in the response.
type TenantCreateRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Subdomain      string `json:"subdomain"`
	StorageLimitMB int    `json:"storage_limit_mb,omitempty"`
	ExpiresInDays  int    `json:"expires_in_days,omitempty"`
	Password       string `json:"password,omitempty"`
}

// TenantUpdateRequest carries partial tenant updates; nil fields are left
// unchanged server-side.
type TenantUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	StorageLimitMB *int    `json:"storage_limit_mb,omitempty"`
	ExpiresInDays  *int    `json:"expires_in_days,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (c *Client) CreateTenant(ctx context.Context, req TenantCreateRequest) (models.Tenant, error) {
	var tenant models.Tenant
	err := c.post(ctx, "/api/admin/tenants").JSON(req).Do(&tenant)
	return tenant, err
}

func (c *Client) ListTenants(ctx context.Context, skip, limit int) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := c.get(ctx, "/api/admin/tenants").
		Param("skip", strconv.Itoa(skip)).
		Param("limit", strconv.Itoa(limit)).
		Do(&tenants)
	return tenants, err
}

func (c *Client) GetTenantStats(ctx context.Context, tenantID int) (models.TenantStats, error) {
	var stats models.TenantStats
	err := c.get(ctx, fmt.Sprintf("/api/admin/tenants/%d", tenantID)).Do(&stats)
	return stats, err
}

func (c *Client) GetTenantDetails(ctx context.Context, tenantID int) (models.TenantDetails, error) {
	var details models.TenantDetails
	err := c.get(ctx, fmt.Sprintf("/api/admin/tenants/%d/details", tenantID)).Do(&details)
	return details, err
}

func (c *Client) UpdateTenant(ctx context.Context, tenantID int, req TenantUpdateRequest) (models.Tenant, error) {
	var tenant models.Tenant
	err := c.put(ctx, fmt.Sprintf("/api/admin/tenants/%d", tenantID)).JSON(req).Do(&tenant)
	return tenant, err
}

type storageLimitUpdateRequest struct {
	StorageLimitMB int        `json:"storage_limit_mb"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

func (c *Client) UpdateTenantStorageLimit(ctx context.Context, tenantID, storageLimitMB int, expiresAt *time.Time) (models.Tenant, error) {
	req := storageLimitUpdateRequest{StorageLimitMB: storageLimitMB, ExpiresAt: expiresAt}
	var tenant models.Tenant
	err := c.patch(ctx, fmt.Sprintf("/api/admin/tenants/%d/storage-limit", tenantID)).JSON(req).Do(&tenant)
	return tenant, err
}

func (c *Client) DeleteTenant(ctx context.Context, tenantID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/tenants/%d", tenantID)).Do(nil)
}

func (c *Client) SystemStats(ctx context.Context) (models.SystemStats, error) {
	var stats models.SystemStats
	err := c.get(ctx, "/api/admin/stats").Do(&stats)
	return stats, err
}

func (c *Client) SystemHealth(ctx context.Context) (models.HealthReport, error) {
	var report models.HealthReport
	err := c.get(ctx, "/api/admin/health").Do(&report)
	return report, err
}

func (c *Client) ListStorageCredentials(ctx context.Context) ([]models.StorageCredential, error) {
	var creds []models.StorageCredential
	err := c.get(ctx, "/api/admin/b2-credentials").Do(&creds)
	return creds, err
}

// TestDefaultCredential runs a connection test against the system default
// storage credential.
func (c *Client) TestDefaultCredential(ctx context.Context) (models.ConnectionStatus, error) {
	var status models.ConnectionStatus
	err := c.post(ctx, "/api/admin/b2-credentials/test").Do(&status)
	return status, err
}

// TestCredential runs a connection test against one stored credential.
func (c *Client) TestCredential(ctx context.Context, credentialID int) (models.ConnectionStatus, error) {
	var status models.ConnectionStatus
	err := c.post(ctx, fmt.Sprintf("/api/admin/b2-credentials/%d/test", credentialID)).Do(&status)
	return status, err
}

func (c *Client) GetStorageConfig(ctx context.Context) (models.StorageConfig, error) {
	var cfg models.StorageConfig
	err := c.get(ctx, "/api/admin/b2-config").Do(&cfg)
	return cfg, err
}

func (c *Client) UpdateStorageConfig(ctx context.Context, cfg models.StorageConfig) error {
	return c.post(ctx, "/api/admin/b2-config/update").JSON(cfg).Do(nil)
}

func (c *Client) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	err := c.get(ctx, "/api/admin/users").
		Param("skip", strconv.Itoa(skip)).
		Param("limit", strconv.Itoa(limit)).
		Do(&users)
	return users, err
}

// APILogFilter narrows the request audit log listing. Zero values mean "no
// filter".
type APILogFilter struct {
	Method     string
	StatusCode int
	UserID     int
	TenantID   int
}

func (c *Client) ListAPILogs(ctx context.Context, skip, limit int, filter APILogFilter) ([]models.APILogEntry, error) {
	req := c.get(ctx, "/api/admin/api-logs").
		Param("skip", strconv.Itoa(skip)).
		Param("limit", strconv.Itoa(limit))
	if filter.Method != "" {
		req = req.Param("method", filter.Method)
	}
	if filter.StatusCode != 0 {
		req = req.Param("status_code", strconv.Itoa(filter.StatusCode))
	}
	if filter.UserID != 0 {
		req = req.Param("user_id", strconv.Itoa(filter.UserID))
	}
	if filter.TenantID != 0 {
		req = req.Param("tenant_id", strconv.Itoa(filter.TenantID))
	}

	var logs []models.APILogEntry
	err := req.Do(&logs)
	return logs, err
}
