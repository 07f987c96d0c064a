package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/common"
	"github.com/google/uuid"
)

// request is a builder for a single API call.
type request struct {
	ctx         context.Context
	client      *Client
	method      string
	endpoint    string
	headers     map[string]string
	queryParams map[string]string
	json        any
	form        url.Values
	// no401Logout marks requests whose 401 must not force a logout:
	// the login call itself and the "who am I" probe.
	no401Logout bool
}

func newRequest(ctx context.Context, client *Client, method, endpoint string) *request {
	return &request{
		ctx:      ctx,
		client:   client,
		method:   method,
		endpoint: endpoint,
	}
}

func (r *request) Header(key, value string) *request {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

func (r *request) Param(key, value string) *request {
	if r.queryParams == nil {
		r.queryParams = make(map[string]string)
	}
	r.queryParams[key] = value
	return r
}

func (r *request) JSON(data any) *request {
	r.json = data
	return r
}

func (r *request) Form(values url.Values) *request {
	r.form = values
	return r
}

// Auth overrides the bearer token for this single request. Used during
// login, when the fresh token has not been persisted to the session yet.
func (r *request) Auth(token string) *request {
	return r.Header("Authorization", "Bearer "+token)
}

func (r *request) keepSessionOn401() *request {
	r.no401Logout = true
	return r
}

// Do executes the request and decodes the JSON response into result (which
// may be nil). Errors are classified: transport failures wrap
// common.ErrUnavailable, 401 clears the session and returns
// common.ErrSessionExpired (unless exempted), 403 wraps common.ErrForbidden,
// and any other non-2xx status becomes an *Error carrying the backend's
// detail message verbatim.
func (r *request) Do(result any) error {
	fullEndpoint, err := url.JoinPath(r.client.baseURL, r.endpoint)
	if err != nil {
		return fmt.Errorf("error formatting url for endpoint %v: %w", r.endpoint, err)
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.json != nil:
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(r.json); err != nil {
			return fmt.Errorf("error encoding json body for endpoint %v: %w", r.endpoint, err)
		}
		body = buf
		contentType = "application/json"
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(r.ctx, r.method, fullEndpoint, body)
	if err != nil {
		return fmt.Errorf("error creating %v request for endpoint %v: %w", r.method, r.endpoint, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := r.client.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	if r.queryParams != nil {
		query := req.URL.Query()
		for k, v := range r.queryParams {
			query.Add(k, v)
		}
		req.URL.RawQuery = query.Encode()
	}

	start := time.Now()

	res, err := r.client.http.Do(req)
	if err != nil {
		r.client.log.Error(r.ctx, "api request failed", "method", r.method, "endpoint", r.endpoint, "error", err)
		return fmt.Errorf("%w: %v %v: %v", common.ErrUnavailable, r.method, r.endpoint, err)
	}
	defer res.Body.Close()

	r.client.log.Debug(r.ctx, "api request", "method", r.method, "endpoint", r.endpoint,
		"status", res.StatusCode, "duration", time.Since(start).String())

	if res.StatusCode >= http.StatusBadRequest {
		return r.handleErrorStatus(res)
	}

	if result != nil {
		if err := json.NewDecoder(res.Body).Decode(result); err != nil {
			return fmt.Errorf("error parsing %v response from endpoint %v: %w", r.method, r.endpoint, err)
		}
	}
	return nil
}

func (r *request) handleErrorStatus(res *http.Response) error {
	content, _ := io.ReadAll(res.Body)
	apiErr := newError(res.StatusCode, content)

	switch res.StatusCode {
	case http.StatusUnauthorized:
		if r.no401Logout {
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, apiErr.Detail)
		}
		// Forced logout. ClearAuth is idempotent, so concurrent 401s
		// cannot bounce the user more than once.
		if err := r.client.sess.ClearAuth(r.ctx); err != nil {
			r.client.log.Error(r.ctx, "failed to clear session after 401", "error", err)
		}
		return common.ErrSessionExpired
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrForbidden, apiErr.Detail)
	default:
		return apiErr
	}
}
