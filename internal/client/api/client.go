// Package api implements the single outbound HTTP boundary of the
// replaycoach client. Every request goes through Client: the base URL and
// bearer token are attached here and nowhere else.
package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/replaycoach/internal/common"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

// Client defines the generic verbs the services are built on.
//
// Contract:
//   - 2xx: the response body is decoded into out (when out is non-nil).
//   - non-2xx: a *APIError is returned, carrying the server's detail string
//     when the body contained one.
//   - no response at all: the error wraps common.ErrServerUnavailable.
//
// All methods honor context cancellation.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	UploadFile(ctx context.Context, path string, field string, filename string, r io.Reader, size int64, onProgress func(pct int), out any) error
	SetToken(token string)
}

// HTTPClient is the resty-backed Client implementation.
type HTTPClient struct {
	rc  *resty.Client
	log logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// New builds an HTTPClient rooted at baseURL. A zero timeout leaves the
// transport default in place.
func New(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	c := &HTTPClient{log: log}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "replaycoach-cli")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tok := c.currentToken(); tok != "" {
			req.SetAuthToken(tok)
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	c.rc = rc
	return c
}

// SetToken installs the bearer token attached to subsequent requests.
// An empty token removes the Authorization header.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	req := c.rc.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	return c.execute(req, resty.MethodGet, path, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any, out any) error {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return c.execute(req, resty.MethodPost, path, out)
}

// UploadFile posts r as the multipart form field 'field'. Progress is
// reported as a monotonically non-decreasing percentage of the file bytes
// consumed, reaching 100 exactly once the body has been fully read.
func (c *HTTPClient) UploadFile(ctx context.Context, path, field, filename string, r io.Reader, size int64, onProgress func(pct int), out any) error {
	body := r
	if onProgress != nil {
		body = &progressReader{r: r, total: size, onProgress: onProgress}
	}
	req := c.rc.R().
		SetContext(ctx).
		SetFileReader(field, filename, body)
	return c.execute(req, resty.MethodPost, path, out)
}

func (c *HTTPClient) execute(req *resty.Request, method, path string, out any) error {
	apiErr := &APIError{}
	if out != nil {
		req.SetResult(out)
	}
	req.SetError(apiErr)

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Error(req.Context(), "request failed", "method", method, "path", path, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrServerUnavailable, err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		c.log.Warn(req.Context(), "server error", "method", method, "path", path, "status", resp.StatusCode(), "detail", apiErr.Detail)
		return apiErr
	}
	return nil
}

// progressReader counts bytes handed to the transport and reports whole
// percentage points. Reported values never decrease and are capped at 100
// even if total was understated.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := 100
		if p.total > 0 {
			pct = int(p.read * 100 / p.total)
			if pct > 100 {
				pct = 100
			}
		}
		if pct > p.last {
			p.last = pct
			p.onProgress(pct)
		}
	}
	return n, err
}
