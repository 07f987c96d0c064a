package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dbelyaev-dev/cloudpix/internal/cache"
	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

// MaxUploadBytes is the hard per-file upload ceiling, checked before any
// request is issued. The server enforces its own limit too.
const MaxUploadBytes = 500 * 1024 * 1024

// Query keys for the tenant portal's read side.
const (
	queryPhotos  = "photos"
	queryStorage = "storage"
)

// TenantAPI is the slice of the API client the photo service needs.
type TenantAPI interface {
	RequestUpload(ctx context.Context, filename, contentType string, fileSizeBytes int64) (models.UploadTicket, error)
	PutPresigned(ctx context.Context, url, contentType string, body []byte) error
	ConfirmUpload(ctx context.Context, photoID int) error
	ListPhotos(ctx context.Context, skip, limit int) ([]models.Photo, error)
	GetPhoto(ctx context.Context, photoID int) (models.Photo, error)
	DeletePhoto(ctx context.Context, photoID int) error
	StorageInfo(ctx context.Context) (models.StorageInfo, error)
	TenantInfo(ctx context.Context) (models.TenantInfo, error)
	UsageLogs(ctx context.Context, skip, limit int) ([]models.UsageLog, error)
}

// PhotoService orchestrates the tenant portal's photo operations, most
// notably the four-step upload flow: request a slot, PUT the bytes to the
// object store, confirm, refresh the local views.
type PhotoService struct {
	api     TenantAPI
	queries *cache.Query
}

func NewPhotoService(apiClient TenantAPI, queries *cache.Query) *PhotoService {
	return &PhotoService{api: apiClient, queries: queries}
}

// Photos returns the tenant's photo list, served from the query cache while
// fresh.
func (s *PhotoService) Photos(ctx context.Context) ([]models.Photo, error) {
	v, err := s.queries.GetOr(queryPhotos, func() (any, error) {
		return s.api.ListPhotos(ctx, 0, 100)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Photo), nil
}

// Storage returns the tenant's quota snapshot, served from the query cache
// while fresh.
func (s *PhotoService) Storage(ctx context.Context) (models.StorageInfo, error) {
	v, err := s.queries.GetOr(queryStorage, func() (any, error) {
		return s.api.StorageInfo(ctx)
	})
	if err != nil {
		return models.StorageInfo{}, err
	}
	return v.(models.StorageInfo), nil
}

// Upload runs the full upload flow for one file.
//
// Pre-checks come first and issue no requests: the file must be an image,
// must not exceed MaxUploadBytes, and must fit the remaining quota as last
// known by the client (advisory only; the server re-checks authoritatively
// when the slot is requested). Server errors from the slot request are
// surfaced verbatim. A failed PUT aborts the flow before the confirm call;
// there is no automatic retry and no partial-state cleanup, so a PUT that
// succeeded without a confirm may leave an orphaned object behind.
func (s *PhotoService) Upload(ctx context.Context, filename, contentType string, data []byte) (models.UploadTicket, error) {
	if err := s.precheck(contentType, int64(len(data))); err != nil {
		return models.UploadTicket{}, err
	}

	ticket, err := s.api.RequestUpload(ctx, filename, contentType, int64(len(data)))
	if err != nil {
		return models.UploadTicket{}, err
	}
	if ticket.UploadURL == "" {
		return models.UploadTicket{}, errors.New("no upload URL received from server")
	}

	if err := s.api.PutPresigned(ctx, ticket.UploadURL, contentType, data); err != nil {
		return models.UploadTicket{}, err
	}

	if err := s.api.ConfirmUpload(ctx, ticket.PhotoID); err != nil {
		return models.UploadTicket{}, fmt.Errorf("upload confirmation failed: %w", err)
	}

	s.queries.Invalidate(queryPhotos, queryStorage)
	return ticket, nil
}

func (s *PhotoService) precheck(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s", common.ErrNotAnImage, contentType)
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("%w: file is %.2f MB, limit is 500 MB",
			common.ErrFileTooLarge, float64(size)/(1024*1024))
	}

	// Advisory quota check against the last known snapshot. No snapshot,
	// no check: the server rejects the slot request if quota is exceeded.
	if v, ok := s.queries.Peek(queryStorage); ok {
		storage := v.(models.StorageInfo)
		if remaining := storage.RemainingBytes(); size > remaining {
			return fmt.Errorf("%w: %.2f MB remaining, file is %.2f MB",
				common.ErrQuotaExceeded,
				float64(remaining)/(1024*1024), float64(size)/(1024*1024))
		}
	}
	return nil
}

// Photo fetches one photo with a fresh presigned download link.
func (s *PhotoService) Photo(ctx context.Context, photoID int) (models.Photo, error) {
	return s.api.GetPhoto(ctx, photoID)
}

// Delete removes a photo and invalidates the affected views.
func (s *PhotoService) Delete(ctx context.Context, photoID int) error {
	if err := s.api.DeletePhoto(ctx, photoID); err != nil {
		return err
	}
	s.queries.Invalidate(queryPhotos, queryStorage)
	return nil
}

// Info returns the tenant's own account view.
func (s *PhotoService) Info(ctx context.Context) (models.TenantInfo, error) {
	return s.api.TenantInfo(ctx)
}

// UsageLogs returns the most recent audit-trail entries.
func (s *PhotoService) UsageLogs(ctx context.Context, limit int) ([]models.UsageLog, error) {
	return s.api.UsageLogs(ctx, 0, limit)
}
