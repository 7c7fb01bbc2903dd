// Package http provides the retrying HTTP client used to query block
// explorer REST APIs. It wraps HashiCorp's retryablehttp.Client with
// functional options and decodes JSON responses.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gabapcia/bcmonitor/internal/pkg/logger"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedStatus is returned when the server answers with a non-2xx
// status once the retries are exhausted.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client fetches JSON documents.
type Client interface {
	// GetJSON issues a GET to url and decodes the response body into out.
	GetJSON(ctx context.Context, url string, out any) error
}

type client struct {
	http *retryablehttp.Client
}

var _ Client = (*client)(nil)

func (c *client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: %d", ErrUnexpectedStatus, url, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

type config struct {
	timeout      time.Duration
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	retryMax     int
}

// Option configures the client.
type Option func(*config)

// NewClient returns a Client. Without options it uses a 5s request timeout
// and retries twice, waiting between 1s and 5s.
func NewClient(opts ...Option) *client {
	cfg := config{
		timeout:      5 * time.Second,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 5 * time.Second,
		retryMax:     2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.HTTPClient.Timeout = cfg.timeout
	rc.RetryWaitMin = cfg.retryWaitMin
	rc.RetryWaitMax = cfg.retryWaitMax
	rc.RetryMax = cfg.retryMax
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn(req.Context(), "retrying request", "url", req.URL.String(), "attempt", attempt)
		}
	}
	// Hand the last response back instead of a generic "giving up" error so
	// GetJSON can report its status.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &client{http: rc}
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = d
	}
}

func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMax = d
	}
}

// WithRetryMax sets how many times a failed request is retried.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}
