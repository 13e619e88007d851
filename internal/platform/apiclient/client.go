package apiclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "teamboard/internal/platform/errors"
	"teamboard/internal/platform/id"
)

const requestIDHeader = "X-Request-ID"

// Client is the single HTTP client bound to the remote API origin.
type Client struct {
	http *resty.Client
	ids  id.Generator
}

func New(baseURL string, timeout time.Duration, ids id.Generator) *Client {
	if ids == nil {
		ids = id.UUID{}
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		slog.Debug("api request",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
			"request_id", resp.Request.Header.Get(requestIDHeader),
		)
		return nil
	})
	return &Client{http: rc, ids: ids}
}

// Request starts a call carrying ctx, a request id and the bearer token when one is given.
func (c *Client) Request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, c.ids.New())
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// Check folds a resty outcome into the shared error taxonomy.
func Check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrUnreachable, err)
	}
	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = apperrors.ErrUnauthorized
	case status == http.StatusForbidden:
		kind = apperrors.ErrForbidden
	case status == http.StatusNotFound:
		kind = apperrors.ErrNotFound
	case status >= 400 && status < 500:
		kind = apperrors.ErrRejected
	default:
		kind = apperrors.ErrServer
	}
	return fmt.Errorf("%s %s: status %d: %w", resp.Request.Method, resp.Request.URL, status, kind)
}
