// Package redis implements the bcmonitor record store, the chain cache
// backend and the distributed lock on top of Redis.
//
// Every entity family lives under its own key prefix:
//
//	wallets:{walletId}                      wallet JSON
//	copayers_lookup:{copayerId}             copayer lookup JSON
//	copayers_lookup:wallet:{walletId}       set of copayer ids
//	addresses:{walletId}                    hash address -> address JSON
//	addresses:index:{address}               set of wallet ids
//	txs:{walletId}                          hash proposal id -> proposal JSON
//	txs:txid:{txid}                         set of "{walletId}:{proposalId}"
//	notifications:{walletId}                zset of notification ids (lex ordered)
//	notifications:data:{walletId}           hash id -> notification JSON
//	tx_confirmation_subs                    hash "{copayerId}:{txid}" -> subscription JSON
//	tx_confirmation_subs:wallet:{walletId}  set of subscription fields
//	cache:{kind}:{walletId}:{key}           cache document JSON
//	cache:historyCache:{walletId}           hash position -> tx JSON
//	cache:historyCacheStatus:{walletId}     hash of history status fields
//	locks:{resource}                        lock token
package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gabapcia/bcmonitor/internal/storage"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	"github.com/jellydator/ttlcache/v3"
	redis "github.com/redis/go-redis/v9"
)

// walletCacheTTL bounds how long a wallet is reused to decorate proposals.
const walletCacheTTL = 300 * time.Second

type client struct {
	mu   sync.RWMutex
	conn *redis.Client

	wallets *ttlcache.Cache[string, wallet.Wallet]
}

type config struct {
	walletCacheTTL time.Duration
}

// Option configures the client.
type Option func(*config)

// WithWalletCacheTTL overrides the lifetime of the wallet decoration cache.
func WithWalletCacheTTL(d time.Duration) Option {
	return func(c *config) {
		c.walletCacheTTL = d
	}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return newClient(conn, opts...), nil
}

func newClient(conn *redis.Client, opts ...Option) *client {
	cfg := config{walletCacheTTL: walletCacheTTL}
	for _, opt := range opts {
		opt(&cfg)
	}

	wallets := ttlcache.New(
		ttlcache.WithTTL[string, wallet.Wallet](cfg.walletCacheTTL),
	)
	go wallets.Start()

	return &client{
		conn:    conn,
		wallets: wallets,
	}
}

// Close releases the connection. Every later operation fails with
// storage.ErrNotReady.
func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	c.wallets.Stop()
	err := c.conn.Close()
	c.conn = nil
	return err
}

// db returns the live connection or storage.ErrNotReady.
func (c *client) db() (*redis.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.conn == nil {
		return nil, storage.ErrNotReady
	}
	return c.conn, nil
}

// wrapErr tags overload errors with storage.ErrRateLimited.
func wrapErr(err error) error {
	if err == nil || !storage.IsRateLimited(err) {
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrRateLimited, err)
}

// toAny converts values to the variadic form expected by go-redis.
func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
