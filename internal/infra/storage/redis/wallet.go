package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/storage"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	"github.com/jellydator/ttlcache/v3"
	redis "github.com/redis/go-redis/v9"
)

const (
	walletKeyPrefix        = "wallets"
	copayerLookupKeyPrefix = "copayers_lookup"
)

// walletKey format: "wallets:{walletId}"
func walletKey(walletID string) string {
	return fmt.Sprintf("%s:%s", walletKeyPrefix, walletID)
}

// copayerLookupKey format: "copayers_lookup:{copayerId}"
func copayerLookupKey(copayerID string) string {
	return fmt.Sprintf("%s:%s", copayerLookupKeyPrefix, copayerID)
}

// walletCopayersKey format: "copayers_lookup:wallet:{walletId}"
func walletCopayersKey(walletID string) string {
	return fmt.Sprintf("%s:wallet:%s", copayerLookupKeyPrefix, walletID)
}

func getJSON[T any](ctx context.Context, conn *redis.Client, key string) (T, error) {
	var v T

	b, err := conn.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, storage.ErrNotFound
	}
	if err != nil {
		return v, wrapErr(err)
	}

	err = json.Unmarshal(b, &v)
	return v, err
}

// FetchWallet returns the wallet with the given id, or storage.ErrNotFound.
func (c *client) FetchWallet(ctx context.Context, walletID string) (wallet.Wallet, error) {
	conn, err := c.db()
	if err != nil {
		return wallet.Wallet{}, err
	}
	return getJSON[wallet.Wallet](ctx, conn, walletKey(walletID))
}

// StoreWallet upserts w.
func (c *client) StoreWallet(ctx context.Context, w wallet.Wallet) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	b, err := json.Marshal(w)
	if err != nil {
		return err
	}

	if err := conn.Set(ctx, walletKey(w.ID), b, 0).Err(); err != nil {
		return wrapErr(err)
	}

	c.wallets.Delete(w.ID)
	return nil
}

// StoreWalletAndUpdateCopayersLookup replaces the copayer lookups of w with
// one lookup per copayer and then stores w. A copayer already registered
// by another wallet fails with storage.ErrDuplicate.
func (c *client) StoreWalletAndUpdateCopayersLookup(ctx context.Context, w wallet.Wallet) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	if err := c.removeCopayerLookups(ctx, conn, w.ID); err != nil {
		return err
	}

	for _, copayer := range w.Copayers {
		lookup, err := json.Marshal(wallet.CopayerLookup{
			CopayerID:      copayer.ID,
			WalletID:       w.ID,
			RequestPubKeys: copayer.RequestPubKeys,
		})
		if err != nil {
			return err
		}

		ok, err := conn.SetNX(ctx, copayerLookupKey(copayer.ID), lookup, 0).Result()
		if err != nil {
			return wrapErr(err)
		}
		if !ok {
			return fmt.Errorf("%w: copayer %s", storage.ErrDuplicate, copayer.ID)
		}

		if err := conn.SAdd(ctx, walletCopayersKey(w.ID), copayer.ID).Err(); err != nil {
			return wrapErr(err)
		}
	}

	return c.StoreWallet(ctx, w)
}

// FetchCopayerLookup returns the lookup of a copayer, or storage.ErrNotFound.
func (c *client) FetchCopayerLookup(ctx context.Context, copayerID string) (wallet.CopayerLookup, error) {
	conn, err := c.db()
	if err != nil {
		return wallet.CopayerLookup{}, err
	}
	return getJSON[wallet.CopayerLookup](ctx, conn, copayerLookupKey(copayerID))
}

func (c *client) removeCopayerLookups(ctx context.Context, conn *redis.Client, walletID string) error {
	copayerIDs, err := conn.SMembers(ctx, walletCopayersKey(walletID)).Result()
	if err != nil {
		return wrapErr(err)
	}

	keys := []string{walletCopayersKey(walletID)}
	for _, id := range copayerIDs {
		keys = append(keys, copayerLookupKey(id))
	}
	return wrapErr(conn.Del(ctx, keys...).Err())
}

// decorationWallet returns the wallet used to decorate proposals, reading
// through the wallet cache. A missing wallet is reported as found=false.
func (c *client) decorationWallet(ctx context.Context, walletID string) (wallet.Wallet, bool, error) {
	if item := c.wallets.Get(walletID); item != nil {
		return item.Value(), true, nil
	}

	w, err := c.FetchWallet(ctx, walletID)
	if errors.Is(err, storage.ErrNotFound) {
		return wallet.Wallet{}, false, nil
	}
	if err != nil {
		return wallet.Wallet{}, false, err
	}

	c.wallets.Set(walletID, w, ttlcache.DefaultTTL)
	return w, true, nil
}

// completeTxData decorates txs, all owned by walletID, with data from the
// owning wallet.
func (c *client) completeTxData(ctx context.Context, walletID string, txs []wallet.TxProposal) error {
	if len(txs) == 0 {
		return nil
	}

	w, found, err := c.decorationWallet(ctx, walletID)
	if err != nil {
		return err
	}
	if !found {
		logger.Warn(ctx, "wallet not found while decorating transactions", "wallet.id", walletID, "txs.count", len(txs))
		return nil
	}

	for i := range txs {
		txs[i].Decorate(w)
	}
	return nil
}
