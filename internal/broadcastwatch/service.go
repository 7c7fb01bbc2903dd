// Package broadcastwatch detects transactions broadcast by third parties on
// behalf of accepted proposals, marks the proposals as broadcasted and
// notifies their wallets.
package broadcastwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/bcmonitor/internal/chainmonitor"
	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/wallet"
)

var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	DefaultBufferSize   = 50
	DefaultProcessDelay = 20 * time.Second
)

// Storage reads and updates transaction proposals.
type Storage interface {
	FetchTxsByHash(ctx context.Context, txids []string) ([]wallet.TxProposal, error)
	StoreTx(ctx context.Context, tx wallet.TxProposal) error
}

// HistoryCache invalidates the transaction history of a wallet.
type HistoryCache interface {
	SoftResetTxHistoryCache(ctx context.Context, walletID string) error
}

// Dispatcher persists and broadcasts notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notification.Notification) error
}

type Service interface {
	Start(ctx context.Context) error
	HandleTx(ctx context.Context, coin, network string, tx chainmonitor.Tx)
	Close()
}

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc func()
	runCtx    context.Context
	inFlight  sync.WaitGroup

	bufferMu sync.Mutex
	buffer   []string

	storage    Storage
	cache      HistoryCache
	dispatcher Dispatcher
	clock      func() time.Time

	bufferSize   int
	processDelay time.Duration
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
	s.closeFunc = cancel
	s.isStarted = true
	return nil
}

// Close cancels the pending proposal updates and waits for them to return.
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

// HandleTx buffers the txid of tx. Every full buffer is matched against the
// stored proposals.
func (s *service) HandleTx(_ context.Context, _, _ string, tx chainmonitor.Tx) {
	if tx.TxID == "" {
		return
	}

	s.bufferMu.Lock()
	s.buffer = append(s.buffer, tx.TxID)
	if len(s.buffer) < s.bufferSize {
		s.bufferMu.Unlock()
		return
	}
	batch := append([]string(nil), s.buffer[:s.bufferSize]...)
	s.buffer = append(s.buffer[:0:0], s.buffer[s.bufferSize:]...)
	s.bufferMu.Unlock()

	s.goRun(func(ctx context.Context) { s.check(ctx, batch) })
}

func (s *service) goRun(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isStarted {
		return
	}

	ctx := s.runCtx
	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		fn(ctx)
	}()
}

// check looks up the proposals of txids and schedules the accepted ones.
func (s *service) check(ctx context.Context, txids []string) {
	txps, err := s.storage.FetchTxsByHash(ctx, txids)
	if err != nil {
		logger.Error(ctx, "could not fetch txs", "txs.count", len(txids), "error", err)
		return
	}

	for _, txp := range txps {
		if txp.Status != wallet.TxStatusAccepted {
			continue
		}

		logger.Info(ctx, "detected broadcast of an accepted proposal",
			"tx.id", txp.TxID,
			"txp.id", txp.ID,
			"wallet.id", txp.WalletID,
			"amount", txp.Amount,
		)

		s.goRun(func(ctx context.Context) {
			select {
			case <-ctx.Done():
			case <-time.After(s.processDelay):
				s.process(ctx, txp)
			}
		})
	}
}

// process marks txp as broadcasted and notifies its wallet.
func (s *service) process(ctx context.Context, txp wallet.TxProposal) {
	ctx = logger.Derive(ctx, "txp.id", txp.ID, "wallet.id", txp.WalletID)
	logger.Info(ctx, "processing accepted proposal", "amount", txp.Amount)

	txp.SetBroadcasted(s.clock())

	if err := s.cache.SoftResetTxHistoryCache(ctx, txp.WalletID); err != nil {
		logger.Warn(ctx, "could not soft reset history cache", "error", err)
	}

	if err := s.storage.StoreTx(ctx, txp); err != nil {
		logger.Error(ctx, "could not store tx", "error", err)
	}

	n := notification.New(notification.TypeNewOutgoingTxByThirdParty, txp.WalletID, "", notification.OutgoingTxData{
		TxProposalID: txp.ID,
		TxID:         txp.TxID,
		Amount:       txp.Amount,
	})
	_ = s.dispatcher.Dispatch(ctx, n)
}

type config struct {
	bufferSize   int
	processDelay time.Duration
	clock        func() time.Time
}

type Option func(*config)

// New creates the third-party broadcast watcher. By default txids are
// matched 50 at a time and proposals are updated 20s after detection.
func New(store Storage, cache HistoryCache, dispatcher Dispatcher, opts ...Option) *service {
	cfg := config{
		bufferSize:   DefaultBufferSize,
		processDelay: DefaultProcessDelay,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		storage:      store,
		cache:        cache,
		dispatcher:   dispatcher,
		clock:        cfg.clock,
		bufferSize:   cfg.bufferSize,
		processDelay: cfg.processDelay,
	}
}

// WithBufferSize sets how many txids are matched at once. Non-positive
// values are ignored.
func WithBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithProcessDelay sets the wait between detecting a broadcast and updating
// the proposal.
func WithProcessDelay(d time.Duration) Option {
	return func(c *config) {
		c.processDelay = d
	}
}

// WithClock sets the time source for the broadcast timestamp.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}
