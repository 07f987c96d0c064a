package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PutPresigned uploads the raw file body straight to the object store via a
// presigned URL, bypassing the backend for the data path. The content type
// must match the one the upload slot was requested with. Any non-2xx status
// fails the upload; there is no automatic retry.
func (c *Client) PutPresigned(ctx context.Context, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()

	resp, err := c.uploads.Do(req)
	if err != nil {
		c.log.Error(ctx, "presigned upload failed", "error", err)
		return fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "presigned upload", "status", resp.StatusCode,
		"bytes", len(body), "duration", time.Since(start).String())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
