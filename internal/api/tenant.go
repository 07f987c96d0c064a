package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dbelyaev-dev/cloudpix/internal/models"
)

type uploadRequest struct {
	Filename      string `json:"filename"`
	ContentType   string `json:"content_type"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// RequestUpload asks the backend for an upload slot: a presigned PUT URL and
// a provisional photo record. Quota and auth are re-checked server-side;
// a failure aborts the whole upload flow.
func (c *Client) RequestUpload(ctx context.Context, filename, contentType string, fileSizeBytes int64) (models.UploadTicket, error) {
	req := uploadRequest{Filename: filename, ContentType: contentType, FileSizeBytes: fileSizeBytes}
	var ticket models.UploadTicket
	err := c.post(ctx, "/api/tenant/photos/upload").JSON(req).Do(&ticket)
	return ticket, err
}

// ConfirmUpload notifies the backend that the bytes reached the object
// store, so it can finalize accounting for the provisional photo record.
func (c *Client) ConfirmUpload(ctx context.Context, photoID int) error {
	return c.post(ctx, fmt.Sprintf("/api/tenant/photos/%d/confirm", photoID)).Do(nil)
}

func (c *Client) ListPhotos(ctx context.Context, skip, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	err := c.get(ctx, "/api/tenant/photos").
		Param("skip", strconv.Itoa(skip)).
		Param("limit", strconv.Itoa(limit)).
		Do(&photos)
	return photos, err
}

func (c *Client) GetPhoto(ctx context.Context, photoID int) (models.Photo, error) {
	var photo models.Photo
	err := c.get(ctx, fmt.Sprintf("/api/tenant/photos/%d", photoID)).Do(&photo)
	return photo, err
}

func (c *Client) DeletePhoto(ctx context.Context, photoID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/tenant/photos/%d", photoID)).Do(nil)
}

func (c *Client) StorageInfo(ctx context.Context) (models.StorageInfo, error) {
	var info models.StorageInfo
	err := c.get(ctx, "/api/tenant/storage").Do(&info)
	return info, err
}

func (c *Client) TenantInfo(ctx context.Context) (models.TenantInfo, error) {
	var info models.TenantInfo
	err := c.get(ctx, "/api/tenant/info").Do(&info)
	return info, err
}

func (c *Client) UsageLogs(ctx context.Context, skip, limit int) ([]models.UsageLog, error) {
	var logs []models.UsageLog
	err := c.get(ctx, "/api/tenant/usage-logs").
		Param("skip", strconv.Itoa(skip)).
		Param("limit", strconv.Itoa(limit)).
		Do(&logs)
	return logs, err
}
