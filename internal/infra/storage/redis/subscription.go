package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gabapcia/bcmonitor/internal/wallet"

	redis "github.com/redis/go-redis/v9"
)

const txConfirmationSubsKey = "tx_confirmation_subs"

// activeSubsKey holds the fields of every active subscription.
const activeSubsKey = txConfirmationSubsKey + ":active"

// txConfirmationSubField format: "{copayerId}:{txid}"
func txConfirmationSubField(copayerID, txid string) string {
	return copayerID + ":" + txid
}

// walletSubsKey format: "tx_confirmation_subs:wallet:{walletId}"
func walletSubsKey(walletID string) string {
	return fmt.Sprintf("%s:wallet:%s", txConfirmationSubsKey, walletID)
}

// FetchActiveTxConfirmationSubs returns the active subscriptions of a
// copayer, or of every copayer when copayerID is empty. Only the active
// index is read, so inactive subscriptions add no cost.
func (c *client) FetchActiveTxConfirmationSubs(ctx context.Context, copayerID string) ([]wallet.TxConfirmationSub, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}

	fields, err := conn.SMembers(ctx, activeSubsKey).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	if copayerID != "" {
		prefix := txConfirmationSubField(copayerID, "")
		fields = slices.DeleteFunc(fields, func(f string) bool { return !strings.HasPrefix(f, prefix) })
	}
	if len(fields) == 0 {
		return nil, nil
	}

	values, err := conn.HMGet(ctx, txConfirmationSubsKey, fields...).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	var subs []wallet.TxConfirmationSub
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var sub wallet.TxConfirmationSub
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			return nil, err
		}

		if !sub.IsActive || (copayerID != "" && sub.CopayerID != copayerID) {
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// StoreTxConfirmationSub upserts sub, keyed by copayer and txid.
func (c *client) StoreTxConfirmationSub(ctx context.Context, sub wallet.TxConfirmationSub) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	b, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	field := txConfirmationSubField(sub.CopayerID, sub.TxID)

	pipe := conn.TxPipeline()
	pipe.HSet(ctx, txConfirmationSubsKey, field, b)
	pipe.SAdd(ctx, walletSubsKey(sub.WalletID), field)
	if sub.IsActive {
		pipe.SAdd(ctx, activeSubsKey, field)
	} else {
		pipe.SRem(ctx, activeSubsKey, field)
	}

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

// RemoveTxConfirmationSub deletes the subscription of copayerID to txid
// along with its index entries. Unknown subscriptions are ignored.
func (c *client) RemoveTxConfirmationSub(ctx context.Context, copayerID, txid string) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	field := txConfirmationSubField(copayerID, txid)

	raw, err := conn.HGet(ctx, txConfirmationSubsKey, field).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return wrapErr(err)
	}

	var sub wallet.TxConfirmationSub
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return err
	}

	pipe := conn.TxPipeline()
	pipe.HDel(ctx, txConfirmationSubsKey, field)
	pipe.SRem(ctx, walletSubsKey(sub.WalletID), field)
	pipe.SRem(ctx, activeSubsKey, field)

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}
