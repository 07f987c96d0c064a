package portal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/dbelyaev-dev/cloudpix/internal/config"
	"github.com/dbelyaev-dev/cloudpix/internal/logging"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
	"github.com/dbelyaev-dev/cloudpix/internal/session"
)

// AuthService is the slice of the auth service the portal needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password string) (models.User, error)
	ValidateSession(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, current, next, confirm string) error
}

// PhotoService is the slice of the photo service the portal needs.
type PhotoService interface {
	Photos(ctx context.Context) ([]models.Photo, error)
	Photo(ctx context.Context, photoID int) (models.Photo, error)
	Upload(ctx context.Context, filename, contentType string, data []byte) (models.UploadTicket, error)
	Delete(ctx context.Context, photoID int) error
	Storage(ctx context.Context) (models.StorageInfo, error)
	Info(ctx context.Context) (models.TenantInfo, error)
	UsageLogs(ctx context.Context, limit int) ([]models.UsageLog, error)
}

// App is the interactive tenant portal.
type App struct {
	config *config.Config
	auth   AuthService
	photos PhotoService
	sess   *session.Store
	log    logging.Logger
	reader *bufio.Reader
}

func NewApp(cfg *config.Config, auth AuthService, photos PhotoService, sess *session.Store, log logging.Logger) *App {
	return &App{
		config: cfg,
		auth:   auth,
		photos: photos,
		sess:   sess,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to CloudPix (type 'help' for commands)")

	if a.isLoggedIn() {
		if err := a.auth.ValidateSession(ctx); err != nil {
			a.reportErr(err)
		}
	}
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

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

// reportErr prints a command error in user terms. A session-expiry error
// leaves the portal in the logged-out state.
func (a *App) reportErr(err error) {
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		printlnFn("Session expired. Please log in again.")
	case errors.Is(err, common.ErrUnavailable):
		printlnFn("Server unavailable. Please try again later.")
	default:
		printlnFn("Error:", err.Error())
	}
}
