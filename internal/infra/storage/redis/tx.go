package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gabapcia/bcmonitor/internal/pkg/types"
	"github.com/gabapcia/bcmonitor/internal/storage"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	redis "github.com/redis/go-redis/v9"
)

const (
	txKeyPrefix = "txs"

	// defaultLastTxsLimit applies when FetchLastTxs is called without a limit.
	defaultLastTxsLimit = 5
)

// TxFilter narrows proposal listings. Zero values disable a bound.
type TxFilter struct {
	MinTs time.Time
	MaxTs time.Time
	Limit int
}

func (f TxFilter) contains(ts time.Time) bool {
	if !f.MinTs.IsZero() && ts.Before(f.MinTs) {
		return false
	}
	if !f.MaxTs.IsZero() && ts.After(f.MaxTs) {
		return false
	}
	return true
}

// txKey format: "txs:{walletId}"
func txKey(walletID string) string {
	return fmt.Sprintf("%s:%s", txKeyPrefix, walletID)
}

// txHashKey format: "txs:txid:{txid}"
func txHashKey(txid string) string {
	return fmt.Sprintf("%s:txid:%s", txKeyPrefix, txid)
}

// txRef identifies a proposal inside the txid index.
func txRef(walletID, id string) string {
	return walletID + ":" + id
}

func splitTxRef(ref string) (walletID, id string, ok bool) {
	return strings.Cut(ref, ":")
}

func sortByCreatedOnDesc(txs []wallet.TxProposal) {
	slices.SortStableFunc(txs, func(a, b wallet.TxProposal) int {
		return b.CreatedOn.Compare(a.CreatedOn)
	})
}

func truncate[T any](values []T, limit int) []T {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}

func decodeTxs(raw []any) ([]wallet.TxProposal, error) {
	txs := make([]wallet.TxProposal, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}

		var tx wallet.TxProposal
		if err := json.Unmarshal([]byte(s), &tx); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (c *client) walletTxs(ctx context.Context, walletID string) ([]wallet.TxProposal, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}

	values, err := conn.HVals(ctx, txKey(walletID)).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return decodeTxs(toAny(values))
}

// FetchTx returns a decorated proposal, or storage.ErrNotFound.
func (c *client) FetchTx(ctx context.Context, walletID, id string) (wallet.TxProposal, error) {
	conn, err := c.db()
	if err != nil {
		return wallet.TxProposal{}, err
	}

	b, err := conn.HGet(ctx, txKey(walletID), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return wallet.TxProposal{}, storage.ErrNotFound
	}
	if err != nil {
		return wallet.TxProposal{}, wrapErr(err)
	}

	var tx wallet.TxProposal
	if err := json.Unmarshal(b, &tx); err != nil {
		return wallet.TxProposal{}, err
	}

	txs := []wallet.TxProposal{tx}
	if err := c.completeTxData(ctx, walletID, txs); err != nil {
		return wallet.TxProposal{}, err
	}
	return txs[0], nil
}

// FetchTxByHash returns the decorated proposal that produced txid, or
// storage.ErrNotFound.
func (c *client) FetchTxByHash(ctx context.Context, txid string) (wallet.TxProposal, error) {
	txs, err := c.FetchTxsByHash(ctx, []string{txid})
	if err != nil {
		return wallet.TxProposal{}, err
	}
	if len(txs) == 0 {
		return wallet.TxProposal{}, storage.ErrNotFound
	}
	return txs[0], nil
}

// FetchTxsByHash returns every proposal, across all wallets, whose txid is
// one of txids. Each proposal is returned once however often its txid is
// repeated. Proposals are decorated per owning wallet and sorted by
// createdOn in descending order.
func (c *client) FetchTxsByHash(ctx context.Context, txids []string) ([]wallet.TxProposal, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}
	if len(txids) == 0 {
		return nil, nil
	}

	hashes := types.NewSet(txids...)

	pipe := conn.Pipeline()
	refCmds := make([]*redis.StringSliceCmd, 0, len(hashes))
	for _, txid := range types.Sorted(hashes) {
		refCmds = append(refCmds, pipe.SMembers(ctx, txHashKey(txid)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, wrapErr(err)
	}

	refs := types.NewSet[string]()
	byWallet := make(map[string][]string)
	var walletOrder []string
	for _, cmd := range refCmds {
		for _, ref := range cmd.Val() {
			walletID, id, ok := splitTxRef(ref)
			if !ok || refs.Has(ref) {
				continue
			}
			refs.Add(ref)
			if _, seen := byWallet[walletID]; !seen {
				walletOrder = append(walletOrder, walletID)
			}
			byWallet[walletID] = append(byWallet[walletID], id)
		}
	}

	var result []wallet.TxProposal
	for _, walletID := range walletOrder {
		values, err := conn.HMGet(ctx, txKey(walletID), byWallet[walletID]...).Result()
		if err != nil {
			return nil, wrapErr(err)
		}

		txs, err := decodeTxs(values)
		if err != nil {
			return nil, err
		}

		// The index is not cleaned when a proposal txid changes.
		txs = slices.DeleteFunc(txs, func(tx wallet.TxProposal) bool {
			return !hashes.Has(tx.TxID)
		})

		if err := c.completeTxData(ctx, walletID, txs); err != nil {
			return nil, err
		}
		result = append(result, txs...)
	}

	sortByCreatedOnDesc(result)
	return result, nil
}

// FetchPendingTxs returns the decorated pending proposals of a wallet.
func (c *client) FetchPendingTxs(ctx context.Context, walletID string) ([]wallet.TxProposal, error) {
	txs, err := c.walletTxs(ctx, walletID)
	if err != nil {
		return nil, err
	}

	txs = slices.DeleteFunc(txs, func(tx wallet.TxProposal) bool { return !tx.IsPending })
	sortByCreatedOnDesc(txs)

	if err := c.completeTxData(ctx, walletID, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// FetchTxs returns the decorated proposals of a wallet created inside the
// filter bounds.
func (c *client) FetchTxs(ctx context.Context, walletID string, filter TxFilter) ([]wallet.TxProposal, error) {
	txs, err := c.walletTxs(ctx, walletID)
	if err != nil {
		return nil, err
	}

	txs = slices.DeleteFunc(txs, func(tx wallet.TxProposal) bool { return !filter.contains(tx.CreatedOn) })
	sortByCreatedOnDesc(txs)
	txs = truncate(txs, filter.Limit)

	if err := c.completeTxData(ctx, walletID, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// FetchBroadcastedTxs returns the decorated broadcasted proposals of a
// wallet whose broadcast time falls inside the filter bounds.
func (c *client) FetchBroadcastedTxs(ctx context.Context, walletID string, filter TxFilter) ([]wallet.TxProposal, error) {
	txs, err := c.walletTxs(ctx, walletID)
	if err != nil {
		return nil, err
	}

	txs = slices.DeleteFunc(txs, func(tx wallet.TxProposal) bool {
		return tx.Status != wallet.TxStatusBroadcasted || !filter.contains(tx.BroadcastedOn)
	})
	sortByCreatedOnDesc(txs)
	txs = truncate(txs, filter.Limit)

	if err := c.completeTxData(ctx, walletID, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// FetchLastTxs returns the latest proposals created by creatorID, without
// decoration. A non-positive limit defaults to 5.
func (c *client) FetchLastTxs(ctx context.Context, walletID, creatorID string, limit int) ([]wallet.TxProposal, error) {
	if limit <= 0 {
		limit = defaultLastTxsLimit
	}

	txs, err := c.walletTxs(ctx, walletID)
	if err != nil {
		return nil, err
	}

	txs = slices.DeleteFunc(txs, func(tx wallet.TxProposal) bool { return tx.CreatorID != creatorID })
	sortByCreatedOnDesc(txs)
	return truncate(txs, limit), nil
}

// StoreTx upserts tx and indexes it by txid when it has one.
func (c *client) StoreTx(ctx context.Context, tx wallet.TxProposal) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	b, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	pipe := conn.TxPipeline()
	pipe.HSet(ctx, txKey(tx.WalletID), tx.ID, b)
	if tx.TxID != "" {
		pipe.SAdd(ctx, txHashKey(tx.TxID), txRef(tx.WalletID, tx.ID))
	}

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

// RemoveTx deletes a proposal and its txid index entry. Removing a missing
// proposal is not an error.
func (c *client) RemoveTx(ctx context.Context, walletID, id string) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	b, err := conn.HGet(ctx, txKey(walletID), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return wrapErr(err)
	}

	var tx wallet.TxProposal
	if err := json.Unmarshal(b, &tx); err != nil {
		return err
	}

	pipe := conn.TxPipeline()
	pipe.HDel(ctx, txKey(walletID), id)
	if tx.TxID != "" {
		pipe.SRem(ctx, txHashKey(tx.TxID), txRef(walletID, id))
	}

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}
