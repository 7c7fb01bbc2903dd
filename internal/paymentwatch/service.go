// Package paymentwatch turns the outputs announced by the explorer feeds into
// NewIncomingTx notifications for the wallets that own the receiving
// addresses.
//
// Outputs are buffered and deduplicated. A burst of outputs is flushed as
// soon as the buffer reaches its count threshold, while a trickle is flushed
// only once the feed has been quiet for the flush timeout. Each flushed batch
// is resolved against the stored addresses, checked against the last day of
// notifications, and turned into at most one notification per transaction
// and address.
package paymentwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/bcmonitor/internal/chainmonitor"
	"github.com/gabapcia/bcmonitor/internal/pkg/coinaddr"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/resilience/retry"
	"github.com/gabapcia/bcmonitor/internal/pkg/telemetry"
	"github.com/gabapcia/bcmonitor/internal/storage"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrServiceAlreadyStarted = errors.New("service already started")
	ErrServiceNotStarted     = errors.New("service not started")
)

const (
	DefaultFlushBufferCount   = 100
	DefaultFlushBufferTimeout = time.Second

	// resolveRetryDelay is the pause between rate limited address lookups.
	resolveRetryDelay = 100 * time.Millisecond

	// notifiedWindow is how far back notifications are checked for
	// duplicates.
	notifiedWindow = 24 * time.Hour

	// balanceLockTTL bounds the balance-bearing set update of a wallet.
	balanceLockTTL = 5 * time.Second
)

type Service interface {
	Start(ctx context.Context) error
	HandleTx(ctx context.Context, coin, network string, tx chainmonitor.Tx)
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc
	runCtx    context.Context
	inFlight  sync.WaitGroup

	buffer *outputBuffer

	storage    Storage
	cache      HistoryCache
	dispatcher Dispatcher
	locker     Locker
	retry      retry.Retry
	clock      func() time.Time

	tracer  trace.Tracer
	flushed metric.Int64Histogram
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.runCtx = ctx
	s.closeFunc = func() {
		s.buffer.stop()
		cancel()
	}

	s.isStarted = true
	return nil
}

// Close stops the idle timer, cancels the flushes in progress and waits for
// them to return. Buffered outputs that were not flushed are discarded.
func (s *service) Close() {
	s.mu.Lock()
	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.isStarted = false
	s.closeFunc = nil
	s.mu.Unlock()

	s.inFlight.Wait()
}

// HandleTx buffers the outputs of tx observed on (coin, network) and flushes
// the buffer when it is full.
func (s *service) HandleTx(ctx context.Context, coin, network string, tx chainmonitor.Tx) {
	if _, ok := s.context(); !ok {
		logger.Warn(ctx, "payment watcher not started, dropping transaction", "tx.id", tx.TxID, "coin", coin, "network", network)
		return
	}

	outs := normalizeOutputs(ctx, coin, tx)
	if len(outs) == 0 {
		return
	}

	s.buffer.append(outs)
	if batch := s.buffer.flushIfDue(); len(batch) > 0 {
		s.goFlush(batch)
	}
}

// onIdle runs when the buffer has been quiet for the flush timeout.
func (s *service) onIdle(batch []Output) {
	s.goFlush(batch)
}

func (s *service) context() (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runCtx, s.isStarted
}

func (s *service) goFlush(batch []Output) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isStarted {
		return
	}

	ctx := s.runCtx
	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		s.flush(ctx, batch)
	}()
}

// normalizeOutputs converts the outputs of tx, translating bch addresses
// that the explorer reports in the btc encoding.
func normalizeOutputs(ctx context.Context, coin string, tx chainmonitor.Tx) []Output {
	outs := make([]Output, 0, len(tx.Vout))
	for _, v := range tx.Vout {
		if v.Address == "" {
			continue
		}

		address := v.Address
		if coin == wallet.CoinBCH {
			if c, err := coinaddr.AddressCoin(address); err == nil && c != wallet.CoinBCH {
				translated, err := coinaddr.TranslateAddress(address, coin)
				if err != nil {
					logger.Warn(ctx, "could not translate address", "address", address, "coin", coin, "error", err)
				} else {
					address = translated
				}
			}
		}

		outs = append(outs, Output{
			Address: address,
			Amount:  v.Amount,
			TxID:    tx.TxID,
			Coin:    coin,
		})
	}
	return outs
}

type config struct {
	flushBufferCount   int
	flushBufferTimeout time.Duration
	locker             Locker
	retry              retry.Retry
	clock              func() time.Time
}

type Option func(*config)

// New creates the payment watcher.
//
// Parameters:
//   - store: resolves addresses and keeps the balance-bearing sets.
//   - cache: history cache soft reset for every paid wallet.
//   - dispatcher: persists and broadcasts the notifications.
//   - opts: optional settings (thresholds, lock, retry, clock).
//
// Defaults:
//   - flush count 100, flush timeout 1s
//   - rate limited lookups retried every 100ms until ctx is done
//   - no lock around the balance-bearing set update
func New(store Storage, cache HistoryCache, dispatcher Dispatcher, opts ...Option) *service {
	cfg := config{
		flushBufferCount:   DefaultFlushBufferCount,
		flushBufferTimeout: DefaultFlushBufferTimeout,
		locker:             nopLocker{},
		retry: retry.New(
			retry.WithAttempts(0),
			retry.WithFixedDelay(resolveRetryDelay),
			retry.WithRetryIf(storage.IsRateLimited),
		),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	flushed, _ := telemetry.Meter("paymentwatch").Int64Histogram(
		"bcmonitor.paymentwatch.flushed_outputs",
		metric.WithDescription("Outputs per flushed batch."),
	)

	s := &service{
		storage:    store,
		cache:      cache,
		dispatcher: dispatcher,
		locker:     cfg.locker,
		retry:      cfg.retry,
		clock:      cfg.clock,
		tracer:     telemetry.Tracer("paymentwatch"),
		flushed:    flushed,
	}
	s.buffer = newOutputBuffer(cfg.flushBufferCount, cfg.flushBufferTimeout, s.onIdle)
	return s
}

// WithFlushBufferCount sets how many buffered outputs trigger an immediate
// flush. Non-positive values are ignored.
func WithFlushBufferCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.flushBufferCount = n
		}
	}
}

// WithFlushBufferTimeout sets the quiet period after which a partial buffer
// is flushed. Non-positive values are ignored.
func WithFlushBufferTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.flushBufferTimeout = d
		}
	}
}

// WithLocker guards the balance-bearing set update of each wallet with l.
func WithLocker(l Locker) Option {
	return func(c *config) {
		c.locker = l
	}
}

// WithRetry replaces the retry policy of the address lookup.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithClock sets the time source used for the duplicate check window.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}
