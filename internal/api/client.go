// Package api is the HTTP client for the CloudPix backend REST API. Every
// domain operation is a single request/response call: no retries, no
// batching, no caching (the consoles' query cache sits above this layer).
//
// Cross-cutting behavior lives here: the bearer token from the session store
// is attached to every request, 401 responses force a logout (except during
// login and identity probes), 403 responses surface as ErrForbidden, and
// transport failures wrap ErrUnavailable.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/logging"
	"github.com/dbelyaev-dev/cloudpix/internal/session"
)

// Client issues requests against a single backend base URL resolved at
// startup.
type Client struct {
	baseURL string
	http    *http.Client
	uploads *http.Client
	sess    *session.Store
	log     logging.Logger
}

// Options tunes client construction. Zero values fall back to defaults.
type Options struct {
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

func New(baseURL string, sess *session.Store, log logging.Logger, opts Options) *Client {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.UploadTimeout == 0 {
		opts.UploadTimeout = 10 * time.Minute
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: opts.RequestTimeout},
		uploads: &http.Client{Timeout: opts.UploadTimeout},
		sess:    sess,
		log:     log,
	}
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, endpoint string) *request {
	return newRequest(ctx, c, http.MethodGet, endpoint)
}

func (c *Client) post(ctx context.Context, endpoint string) *request {
	return newRequest(ctx, c, http.MethodPost, endpoint)
}

func (c *Client) put(ctx context.Context, endpoint string) *request {
	return newRequest(ctx, c, http.MethodPut, endpoint)
}

func (c *Client) patch(ctx context.Context, endpoint string) *request {
	return newRequest(ctx, c, http.MethodPatch, endpoint)
}

func (c *Client) delete(ctx context.Context, endpoint string) *request {
	return newRequest(ctx, c, http.MethodDelete, endpoint)
}
