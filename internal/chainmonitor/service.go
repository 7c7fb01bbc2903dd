// Package chainmonitor consumes the explorer feed of every (coin, network)
// pair. Transactions are handed to the registered handlers; new blocks
// invalidate every history cache, raise a NewBlock notification and trigger
// the confirmation notifications of the transactions they include.
//
// Events of one pair are processed in delivery order by a single goroutine.
// Pairs are processed concurrently.
package chainmonitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/telemetry"
	"github.com/gabapcia/bcmonitor/internal/pkg/x/chflow"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	"github.com/jellydator/ttlcache/v3"
	"go.opentelemetry.io/otel/metric"
)

var ErrServiceAlreadyStarted = errors.New("service already started")

// DefaultBlockDedupTTL is how long a block hash is remembered.
const DefaultBlockDedupTTL = 300 * time.Second

// Pair identifies a chain.
type Pair struct {
	Coin    string
	Network string
}

func (p Pair) String() string {
	return p.Coin + "/" + p.Network
}

// TxHandler receives the transactions announced on a pair.
type TxHandler interface {
	HandleTx(ctx context.Context, coin, network string, tx Tx)
}

// Storage holds the confirmation subscriptions.
type Storage interface {
	FetchActiveTxConfirmationSubs(ctx context.Context, copayerID string) ([]wallet.TxConfirmationSub, error)
	StoreTxConfirmationSub(ctx context.Context, sub wallet.TxConfirmationSub) error
}

// HistoryCache invalidates the history cache of every wallet.
type HistoryCache interface {
	SoftResetAllTxHistoryCache(ctx context.Context) error
}

// Dispatcher persists and broadcasts notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notification.Notification) error
}

type Service interface {
	Start(ctx context.Context) error
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc
	consumers sync.WaitGroup

	explorers  map[Pair]Explorer
	txHandlers []TxHandler
	storage    Storage
	cache      HistoryCache
	dispatcher Dispatcher

	seenBlocks *ttlcache.Cache[string, struct{}]
	blocks     metric.Int64Counter
}

var _ Service = (*service)(nil)

// Start opens the feed of every explorer and starts one consumer per pair.
// When a feed cannot be opened the feeds already opened are closed and the
// error is returned.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	go s.seenBlocks.Start()

	s.closeFunc = func() {
		cancel()
		s.seenBlocks.Stop()
	}

	for pair, explorer := range s.explorers {
		events, err := explorer.Events(ctx)
		if err != nil {
			s.closeFunc()
			s.closeFunc = nil
			s.consumers.Wait()
			return fmt.Errorf("open %s feed: %w", pair, err)
		}

		s.consumers.Add(1)
		go func() {
			defer s.consumers.Done()
			s.consume(ctx, pair, explorer, events)
		}()
	}

	s.isStarted = true
	return nil
}

// Close stops every consumer and waits for the events being handled.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.consumers.Wait()

	s.isStarted = false
	s.closeFunc = nil
}

func (s *service) consume(ctx context.Context, pair Pair, explorer Explorer, events <-chan Event) {
	ctx = logger.Derive(ctx, "coin", pair.Coin, "network", pair.Network)

	for {
		event, ok := chflow.Receive(ctx, events)
		if !ok {
			return
		}
		s.handleEvent(ctx, pair, explorer, event)
	}
}

func (s *service) handleEvent(ctx context.Context, pair Pair, explorer Explorer, event Event) {
	switch event.Type {
	case EventConnect:
		logger.Info(ctx, "connected", "explorer", explorer.ConnectionInfo())
		if err := explorer.Emit(ctx, "subscribe", "inv"); err != nil {
			logger.Error(ctx, "could not subscribe", "explorer", explorer.ConnectionInfo(), "error", err)
		}
	case EventConnectError:
		logger.Error(ctx, "error connecting", "explorer", explorer.ConnectionInfo(), "error", event.Err)
	case EventError:
		logger.Error(ctx, "explorer error", "explorer", explorer.ConnectionInfo(), "error", event.Err)
	case EventDisconnect:
		logger.Error(ctx, "disconnected", "explorer", explorer.ConnectionInfo(), "error", event.Err)
	case EventTx:
		for _, h := range s.txHandlers {
			h.HandleTx(ctx, pair.Coin, pair.Network, event.Tx)
		}
	case EventBlock:
		s.handleBlock(ctx, pair, explorer, event.BlockHash)
	default:
		logger.Debug(ctx, "ignoring event", "event", event.Type)
	}
}

type config struct {
	broadcasts    TxHandler
	blockDedupTTL time.Duration
}

type Option func(*config)

// New creates the chain monitor.
//
// Parameters:
//   - explorers: the explorer of every monitored pair.
//   - payments: receives every announced transaction.
//   - store: confirmation subscriptions.
//   - cache: history cache invalidated on every new block.
//   - dispatcher: persists and broadcasts the notifications.
//   - opts: optional settings.
func New(explorers map[Pair]Explorer, payments TxHandler, store Storage, cache HistoryCache, dispatcher Dispatcher, opts ...Option) *service {
	cfg := config{
		blockDedupTTL: DefaultBlockDedupTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handlers := []TxHandler{payments}
	if cfg.broadcasts != nil {
		handlers = append(handlers, cfg.broadcasts)
	}

	blocks, _ := telemetry.Meter("chainmonitor").Int64Counter(
		"bcmonitor.chainmonitor.blocks",
		metric.WithDescription("Block events received, by outcome."),
	)

	return &service{
		explorers:  explorers,
		txHandlers: handlers,
		storage:    store,
		cache:      cache,
		dispatcher: dispatcher,
		seenBlocks: ttlcache.New(ttlcache.WithTTL[string, struct{}](cfg.blockDedupTTL)),
		blocks:     blocks,
	}
}

// WithBroadcastHandler registers a second handler for announced
// transactions, called after the payment handler.
func WithBroadcastHandler(h TxHandler) Option {
	return func(c *config) {
		c.broadcasts = h
	}
}

// WithBlockDedupTTL sets how long a block hash is remembered.
func WithBlockDedupTTL(d time.Duration) Option {
	return func(c *config) {
		c.blockDedupTTL = d
	}
}
