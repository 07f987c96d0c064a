// Package models holds the DTOs exchanged with the CloudPix backend. The
// server is the source of truth for every entity here; the console keeps
// transient copies for display and editing only.
package models

import "time"

// User is the authenticated identity returned by /api/auth/me.
type User struct {
	ID            int        `json:"id"`
	Email         string     `json:"email"`
	IsAdmin       bool       `json:"is_admin"`
	IsTenantAdmin bool       `json:"is_tenant_admin"`
	TenantID      *int       `json:"tenant_id,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Tenant is a customer account with its own subdomain and storage quota.
type Tenant struct {
	ID               int        `json:"id"`
	Subdomain        string     `json:"subdomain"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	StorageLimitMB   int        `json:"storage_limit_mb"`
	StorageUsedBytes int64      `json:"storage_used_bytes"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	IsActive         bool       `json:"is_active"`
	// Password is only populated in the response to tenant creation.
	Password string `json:"password,omitempty"`
}

// TenantDetails extends Tenant with aggregate counters and DNS info.
type TenantDetails struct {
	Tenant
	DNSRecord  string `json:"dns_record,omitempty"`
	Bucket     string `json:"b2_bucket,omitempty"`
	UserCount  int    `json:"user_count"`
	PhotoCount int    `json:"photo_count"`
}

// TenantStats is the per-tenant usage summary used on the admin dashboard.
type TenantStats struct {
	TenantID          int     `json:"tenant_id"`
	Subdomain         string  `json:"subdomain"`
	Name              string  `json:"name"`
	StorageLimitMB    int     `json:"storage_limit_mb"`
	StorageUsedMB     float64 `json:"storage_used_mb"`
	StorageUsedBytes  int64   `json:"storage_used_bytes"`
	StoragePercentage float64 `json:"storage_percentage"`
	PhotoCount        int     `json:"photo_count"`
	CreatedAt         string  `json:"created_at,omitempty"`
	ExpiresAt         string  `json:"expires_at,omitempty"`
	IsActive          bool    `json:"is_active"`
}

// SystemStats is the admin dashboard aggregate.
type SystemStats struct {
	TotalTenants       int           `json:"total_tenants"`
	ActiveTenants      int           `json:"active_tenants"`
	TotalStorageUsedMB float64       `json:"total_storage_used_mb"`
	BucketStorageMB    float64       `json:"b2_bucket_storage_mb"`
	BucketObjects      int64         `json:"b2_bucket_objects"`
	TotalPhotos        int           `json:"total_photos"`
	TotalUsers         int           `json:"total_users"`
	RegisteredClients  int           `json:"registered_clients"`
	Tenants            []TenantStats `json:"tenants"`
}

// StorageCredential is a named set of object-store access keys. A nil
// TenantID marks the system default credential.
type StorageCredential struct {
	ID        int        `json:"id"`
	TenantID  *int       `json:"tenant_id"`
	KeyID     string     `json:"key_id"`
	Bucket    string     `json:"bucket_name"`
	Endpoint  string     `json:"endpoint"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsDefault reports whether the credential is the system default
// (not scoped to any tenant).
func (c StorageCredential) IsDefault() bool { return c.TenantID == nil }

// Connection test states reported by the backend.
const (
	StatusConnected = "connected"
	StatusPartial   = "partial"
	StatusError     = "error"
	StatusTesting   = "testing"
	StatusUnknown   = "unknown"
)

// ConnectionStatus is the ephemeral, per-invocation result of a storage
// credential connection test. Partial means the bucket is reachable but
// listing failed (or vice versa); the diagnostic flags say which.
type ConnectionStatus struct {
	Status           string   `json:"status"`
	Message          string   `json:"message"`
	Bucket           string   `json:"bucket,omitempty"`
	Endpoint         string   `json:"endpoint,omitempty"`
	BucketAccessible bool     `json:"bucket_accessible"`
	ListAccessible   bool     `json:"list_accessible"`
	ResponseTimeMs   *float64 `json:"response_time_ms"`
	ObjectCount      *int64   `json:"object_count"`
}

// StorageConfig is the default object-store configuration as exposed to the
// admin console. The secret key is write-only.
type StorageConfig struct {
	KeyID    string `json:"key_id"`
	Key      string `json:"key,omitempty"`
	Bucket   string `json:"bucket_name"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Photo is a stored object as listed by the tenant API. DownloadURL is a
// time-limited presigned link.
type Photo struct {
	ID               int       `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSizeBytes    int64     `json:"file_size_bytes"`
	ContentType      string    `json:"content_type,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at"`
	DownloadURL      string    `json:"download_url"`
}

// UploadTicket is the server's answer to an upload request: a time-limited
// presigned PUT URL plus the provisional photo record it created.
type UploadTicket struct {
	UploadURL string `json:"upload_url"`
	PhotoID   int    `json:"photo_id"`
	ObjectKey string `json:"b2_key"`
}

// StorageInfo is the tenant's quota snapshot.
type StorageInfo struct {
	StorageLimitMB    int     `json:"storage_limit_mb"`
	StorageUsedMB     float64 `json:"storage_used_mb"`
	StorageUsedBytes  int64   `json:"storage_used_bytes"`
	StoragePercentage float64 `json:"storage_percentage"`
	PhotoCount        int     `json:"photo_count"`
}

// RemainingBytes returns the advisory remaining quota. The server re-checks
// authoritatively on every upload request.
func (s StorageInfo) RemainingBytes() int64 {
	return int64(s.StorageLimitMB)*1024*1024 - s.StorageUsedBytes
}

// TenantInfo is the tenant's own view of its account.
type TenantInfo struct {
	ID            int        `json:"id"`
	Subdomain     string     `json:"subdomain"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
}

// UsageLog is one audit-trail entry (upload, delete, ...).
type UsageLog struct {
	ID               int        `json:"id"`
	LogType          string     `json:"log_type"`
	BytesTransferred *int64     `json:"bytes_transferred"`
	CreatedAt        *time.Time `json:"created_at"`
}

// ComponentHealth is the state of one backend subsystem.
type ComponentHealth struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// HealthReport maps component name (database, b2_storage, api) to its health.
type HealthReport map[string]ComponentHealth

// APILogEntry is one row of the backend request audit log.
type APILogEntry struct {
	ID         int        `json:"id"`
	Method     string     `json:"method"`
	Path       string     `json:"path"`
	StatusCode int        `json:"status_code"`
	UserID     *int       `json:"user_id"`
	TenantID   *int       `json:"tenant_id"`
	DurationMs *float64   `json:"duration_ms"`
	CreatedAt  *time.Time `json:"created_at"`
}
