// Package chaincache implements the ephemeral caches that spare the wallet
// service from re-deriving chain state on every request: the paginated
// transaction history cache with soft invalidation, the TTL-bounded balance
// and fee level caches, and the address scan checkpoints.
//
// No read path fails on a miss. Lookups report whether a usable value was
// found and callers are expected to recompute and store it otherwise.
package chaincache

import (
	"context"
	"errors"
	"time"

	"github.com/gabapcia/bcmonitor/internal/pkg/telemetry"
	"github.com/gabapcia/bcmonitor/internal/storage"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrInvalidRange is returned for negative or inverted history ranges.
var ErrInvalidRange = errors.New("invalid history range")

// Service exposes the cache operations over a Storage backend.
type Service struct {
	storage Storage
	clock   func() time.Time

	lookups metric.Int64Counter
}

type config struct {
	clock func() time.Time
}

// Option configures a Service.
type Option func(*config)

// WithClock overrides the time source used to stamp and validate entries.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// New creates a cache Service backed by s.
func New(s Storage, opts ...Option) *Service {
	cfg := config{clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	lookups, _ := telemetry.Meter("chaincache").Int64Counter(
		"bcmonitor.cache.lookups",
		metric.WithDescription("Cache lookups by kind and result."),
	)

	return &Service{
		storage: s,
		clock:   cfg.clock,
		lookups: lookups,
	}
}

func (s *Service) countLookup(ctx context.Context, kind Kind, hit bool) {
	if s.lookups == nil {
		return
	}
	s.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.Bool("hit", hit),
	))
}

// fetchDocument returns the document and whether it exists.
func (s *Service) fetchDocument(ctx context.Context, kind Kind, walletID, key string) (Document, bool, error) {
	doc, err := s.storage.FetchCacheDocument(ctx, kind, walletID, key)
	if errors.Is(err, storage.ErrNotFound) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, err
	}
	return doc, true, nil
}
