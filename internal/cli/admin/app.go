package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/dbelyaev-dev/cloudpix/internal/config"
	"github.com/dbelyaev-dev/cloudpix/internal/logging"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
	"github.com/dbelyaev-dev/cloudpix/internal/session"
)

// AuthService is the slice of the auth service the console needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	ValidateSession(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, current, next, confirm string) error
}

// AdminService is the slice of the admin service the console needs.
type AdminService interface {
	Tenants(ctx context.Context) ([]models.Tenant, error)
	CreateTenant(ctx context.Context, req api.TenantCreateRequest) (models.Tenant, error)
	TenantStats(ctx context.Context, tenantID int) (models.TenantStats, error)
	TenantDetails(ctx context.Context, tenantID int) (models.TenantDetails, error)
	UpdateTenant(ctx context.Context, tenantID int, req api.TenantUpdateRequest) (models.Tenant, error)
	UpdateStorageLimit(ctx context.Context, tenantID, storageLimitMB int, expiresAt *time.Time) (models.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID int) error
	Stats(ctx context.Context) (models.SystemStats, error)
	Health(ctx context.Context) (models.HealthReport, error)
	RefreshDashboard(ctx context.Context) error
	Credentials(ctx context.Context) ([]models.StorageCredential, error)
	TestCredential(ctx context.Context, credentialID int) (models.ConnectionStatus, error)
	StorageConfig(ctx context.Context) (models.StorageConfig, error)
	UpdateStorageConfig(ctx context.Context, cfg models.StorageConfig) error
	Users(ctx context.Context) ([]models.User, error)
	APILogs(ctx context.Context, limit int, filter api.APILogFilter) ([]models.APILogEntry, error)
}

// App is the interactive admin console.
type App struct {
	config *config.Config
	auth   AuthService
	admin  AdminService
	sess   *session.Store
	log    logging.Logger
	reader *bufio.Reader
}

func NewApp(cfg *config.Config, auth AuthService, admin AdminService, sess *session.Store, log logging.Logger) *App {
	return &App{
		config: cfg,
		auth:   auth,
		admin:  admin,
		sess:   sess,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to CloudPix admin console (type 'help' for commands)")

	if a.isLoggedIn() {
		if err := a.auth.ValidateSession(ctx); err != nil {
			a.reportErr(err)
		}
	}
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	go a.StartDashboardWatcher(ctx, a.config.PollInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.sess.Authenticated()
}

// sessionExpiryWarning is how close to the token's exp claim the prompt
// starts nudging toward a fresh login.
const sessionExpiryWarning = 5 * time.Minute

func (a *App) getStatus() string {
	if a.sess.Loading() {
		return "(signing in)"
	}
	user := a.sess.User()
	if user == nil {
		return ""
	}
	if exp := a.sess.TokenExpiry(); !exp.IsZero() && time.Until(exp) < sessionExpiryWarning {
		return fmt.Sprintf("(%s, session expiring)", user.Email)
	}
	return fmt.Sprintf("(%s)", user.Email)
}

// StartDashboardWatcher refreshes the stats and health views in the
// background while a session is active, mirroring the dashboard's periodic
// poll.
func (a *App) StartDashboardWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			refreshCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := a.admin.RefreshDashboard(refreshCtx)
			cancel()
			if err != nil {
				a.log.Debug(ctx, "dashboard refresh failed", "error", err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// reportErr prints a command error in user terms. A session-expiry or
// missing-privilege error leaves the console in the logged-out state, which
// the prompt and command guards pick up on the next loop iteration.
func (a *App) reportErr(err error) {
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		printlnFn("Session expired. Please log in again.")
	case errors.Is(err, common.ErrForbidden):
		printlnFn("Access denied: admin privileges required.")
	case errors.Is(err, common.ErrUnavailable):
		printlnFn("Server unavailable. Please try again later.")
	default:
		printlnFn("Error:", err.Error())
	}
}
