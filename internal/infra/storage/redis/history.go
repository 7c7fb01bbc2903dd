package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gabapcia/bcmonitor/internal/chaincache"
	"github.com/gabapcia/bcmonitor/internal/storage"
)

// Field names of the history status hash.
const (
	statusWalletID   = "walletId"
	statusTotalItems = "totalItems"
	statusUpdatedOn  = "updatedOn"
	statusIsComplete = "isComplete"
	statusIsUpdated  = "isUpdated"
)

// historyKey format: "cache:historyCache:{walletId}"
func historyKey(walletID string) string {
	return fmt.Sprintf("%s:%s:%s", cacheKeyPrefix, chaincache.KindHistory, walletID)
}

// historyStatusKey format: "cache:historyCacheStatus:{walletId}"
func historyStatusKey(walletID string) string {
	return fmt.Sprintf("%s:%s:%s", cacheKeyPrefix, chaincache.KindHistoryStatus, walletID)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FetchHistoryStatus returns the history status of a wallet, or
// storage.ErrNotFound.
func (c *client) FetchHistoryStatus(ctx context.Context, walletID string) (chaincache.HistoryStatus, error) {
	conn, err := c.db()
	if err != nil {
		return chaincache.HistoryStatus{}, err
	}

	fields, err := conn.HGetAll(ctx, historyStatusKey(walletID)).Result()
	if err != nil {
		return chaincache.HistoryStatus{}, wrapErr(err)
	}
	if len(fields) == 0 {
		return chaincache.HistoryStatus{}, storage.ErrNotFound
	}

	status := chaincache.HistoryStatus{
		WalletID:   walletID,
		IsComplete: fields[statusIsComplete] == "1",
		IsUpdated:  fields[statusIsUpdated] == "1",
	}

	if v, ok := fields[statusTotalItems]; ok {
		if status.TotalItems, err = strconv.Atoi(v); err != nil {
			return chaincache.HistoryStatus{}, fmt.Errorf("invalid %s: %w", statusTotalItems, err)
		}
	}

	if v, ok := fields[statusUpdatedOn]; ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return chaincache.HistoryStatus{}, fmt.Errorf("invalid %s: %w", statusUpdatedOn, err)
		}
		status.UpdatedOn = time.UnixMilli(ms)
	}

	return status, nil
}

// StoreHistoryStatus replaces the history status of status.WalletID.
func (c *client) StoreHistoryStatus(ctx context.Context, status chaincache.HistoryStatus) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	return wrapErr(conn.HSet(ctx, historyStatusKey(status.WalletID),
		statusWalletID, status.WalletID,
		statusTotalItems, status.TotalItems,
		statusUpdatedOn, status.UpdatedOn.UnixMilli(),
		statusIsComplete, formatBool(status.IsComplete),
		statusIsUpdated, formatBool(status.IsUpdated),
	).Err())
}

// SoftResetHistoryStatus marks the history of a wallet as not updated.
func (c *client) SoftResetHistoryStatus(ctx context.Context, walletID string) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	return wrapErr(conn.HSet(ctx, historyStatusKey(walletID),
		statusWalletID, walletID,
		statusIsUpdated, formatBool(false),
	).Err())
}

// SoftResetAllHistoryStatuses marks every existing history as not updated.
func (c *client) SoftResetAllHistoryStatuses(ctx context.Context) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	keys, err := scanKeys(ctx, conn, historyStatusKey("*"))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := conn.Pipeline()
	for _, key := range keys {
		pipe.HSet(ctx, key, statusIsUpdated, formatBool(false))
	}

	_, err = pipe.Exec(ctx)
	return wrapErr(err)
}

// FetchHistoryPages returns the stored pages in [from, to), newest first.
func (c *client) FetchHistoryPages(ctx context.Context, walletID string, from, to int) ([]chaincache.HistoryPage, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}
	if to <= from {
		return nil, nil
	}

	fields := make([]string, 0, to-from)
	for pos := to - 1; pos >= from; pos-- {
		fields = append(fields, strconv.Itoa(pos))
	}

	values, err := conn.HMGet(ctx, historyKey(walletID), fields...).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	pages := make([]chaincache.HistoryPage, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		pages = append(pages, chaincache.HistoryPage{
			Position: to - 1 - i,
			Tx:       json.RawMessage(s),
		})
	}
	return pages, nil
}

// StoreHistoryPages upserts pages by position.
func (c *client) StoreHistoryPages(ctx context.Context, walletID string, pages []chaincache.HistoryPage) error {
	conn, err := c.db()
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return nil
	}

	values := make([]any, 0, 2*len(pages))
	for _, p := range pages {
		values = append(values, strconv.Itoa(p.Position), string(p.Tx))
	}
	return wrapErr(conn.HSet(ctx, historyKey(walletID), values...).Err())
}

// ClearHistory deletes the pages and the status of a wallet.
func (c *client) ClearHistory(ctx context.Context, walletID string) error {
	conn, err := c.db()
	if err != nil {
		return err
	}
	return wrapErr(conn.Del(ctx, historyKey(walletID), historyStatusKey(walletID)).Err())
}

var (
	_ chaincache.HistoryStorage = (*client)(nil)
	_ chaincache.Storage        = (*client)(nil)
)
