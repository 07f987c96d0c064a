package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbelyaev-dev/cloudpix/internal/api"
	"github.com/dbelyaev-dev/cloudpix/internal/cache"
	"github.com/dbelyaev-dev/cloudpix/internal/cli/portal"
	"github.com/dbelyaev-dev/cloudpix/internal/config"
	"github.com/dbelyaev-dev/cloudpix/internal/logging"
	"github.com/dbelyaev-dev/cloudpix/internal/services"
	"github.com/dbelyaev-dev/cloudpix/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := session.OpenDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("error initializing session database: %v", err)
	}
	defer db.Close()

	sess := session.NewStore(session.NewSQLiteRepository(db))
	if err := sess.Hydrate(ctx); err != nil {
		log.Fatalf("error restoring session: %v", err)
	}

	apiClient := api.New(cfg.APIBaseURL, sess, logger, api.Options{
		RequestTimeout: cfg.RequestTimeout,
		UploadTimeout:  cfg.UploadTimeout,
	})

	queries := cache.New(cfg.PollInterval)
	auth := services.NewAuthService(apiClient, sess)
	photos := services.NewPhotoService(apiClient, queries)

	app := portal.NewApp(cfg, auth, photos, sess, logger)
	app.Run(ctx)
}
