package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// RemoveWallet deletes a wallet and every record it owns. The families are
// removed concurrently. Every removal runs even when another fails; the
// failures are joined and nothing is rolled back.
func (c *client) RemoveWallet(ctx context.Context, walletID string) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	run := func(family string, fn func(context.Context, *redis.Client, string) error) {
		g.Go(func() error {
			if err := fn(ctx, conn, walletID); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("remove %s: %w", family, err))
				mu.Unlock()
			}
			return nil
		})
	}

	run("wallet", c.removeWalletDocument)
	run("addresses", removeWalletAddresses)
	run("txs", removeWalletTxs)
	run("notifications", removeWalletNotifications)
	run("copayers lookup", c.removeCopayerLookups)
	run("tx confirmation subs", removeWalletSubs)
	run("cache", c.removeWalletCache)

	_ = g.Wait()
	return errors.Join(errs...)
}

func (c *client) removeWalletDocument(ctx context.Context, conn *redis.Client, walletID string) error {
	c.wallets.Delete(walletID)
	return wrapErr(conn.Del(ctx, walletKey(walletID)).Err())
}

func removeWalletAddresses(ctx context.Context, conn *redis.Client, walletID string) error {
	addresses, err := conn.HKeys(ctx, addressKey(walletID)).Result()
	if err != nil {
		return wrapErr(err)
	}

	pipe := conn.TxPipeline()
	for _, address := range addresses {
		pipe.SRem(ctx, addressIndexKey(address), walletID)
	}
	pipe.Del(ctx, addressKey(walletID))

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

func removeWalletTxs(ctx context.Context, conn *redis.Client, walletID string) error {
	values, err := conn.HVals(ctx, txKey(walletID)).Result()
	if err != nil {
		return wrapErr(err)
	}

	txs, err := decodeTxs(toAny(values))
	if err != nil {
		return err
	}

	pipe := conn.TxPipeline()
	for _, tx := range txs {
		if tx.TxID != "" {
			pipe.SRem(ctx, txHashKey(tx.TxID), txRef(walletID, tx.ID))
		}
	}
	pipe.Del(ctx, txKey(walletID))

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

func removeWalletNotifications(ctx context.Context, conn *redis.Client, walletID string) error {
	return wrapErr(conn.Del(ctx, notificationKey(walletID), notificationDataKey(walletID)).Err())
}

func removeWalletSubs(ctx context.Context, conn *redis.Client, walletID string) error {
	fields, err := conn.SMembers(ctx, walletSubsKey(walletID)).Result()
	if err != nil {
		return wrapErr(err)
	}

	pipe := conn.TxPipeline()
	if len(fields) > 0 {
		pipe.HDel(ctx, txConfirmationSubsKey, fields...)
		pipe.SRem(ctx, activeSubsKey, toAny(fields)...)
	}
	pipe.Del(ctx, walletSubsKey(walletID))

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

func (c *client) removeWalletCache(ctx context.Context, conn *redis.Client, walletID string) error {
	if err := c.removeWalletCacheDocuments(ctx, conn, walletID); err != nil {
		return err
	}
	return wrapErr(conn.Del(ctx, historyKey(walletID), historyStatusKey(walletID)).Err())
}
