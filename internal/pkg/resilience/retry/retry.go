// Package retry runs operations again when they fail, on top of Avast's
// retry-go.
//
// By default an operation gets three attempts with exponential backoff.
// Loops that must go on until they succeed or their context ends remove the
// attempt cap and usually switch to a fixed delay:
//
//	r := retry.New(
//	    retry.WithAttempts(0),
//	    retry.WithFixedDelay(100*time.Millisecond),
//	    retry.WithRetryIf(storage.IsRateLimited),
//	)
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

type Retry interface {
	// Execute calls operation until it returns nil, the attempts run out,
	// the retry predicate rejects its error or ctx ends. An interrupted
	// wait returns the context error. operation may run more than once.
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint // 0 = unlimited
	delay       time.Duration
	maxDelay    time.Duration
	fixed       bool
	lastErrOnly bool
	retryIf     func(error) bool
	onRetry     func(uint, error)
}

type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry. Without options it makes 3 attempts, starting from a
// 1s delay that doubles up to 5s, retries every error and reports only the
// last one.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	delayType := retry.BackOffDelay
	if r.cfg.fixed {
		delayType = retry.FixedDelay
	}

	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(delayType),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}
	if r.cfg.retryIf != nil {
		options = append(options, retry.RetryIf(r.cfg.retryIf))
	}
	if r.cfg.onRetry != nil {
		options = append(options, retry.OnRetry(r.cfg.onRetry))
	}

	return retry.Do(operation, options...)
}

// WithAttempts caps the number of calls, the first one included. 0 removes
// the cap.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the first backoff delay.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithFixedDelay waits exactly d between attempts.
func WithFixedDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
		c.fixed = true
	}
}

// WithMaxDelay bounds the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly chooses between the last error (true) and the errors of
// every attempt combined (false).
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithRetryIf retries only the errors f accepts. Others are returned at once.
func WithRetryIf(f func(error) bool) Option {
	return func(c *config) {
		c.retryIf = f
	}
}

// WithOnRetry calls f with the zero-based attempt number and its error before
// every retry.
func WithOnRetry(f func(n uint, err error)) Option {
	return func(c *config) {
		c.onRetry = f
	}
}
