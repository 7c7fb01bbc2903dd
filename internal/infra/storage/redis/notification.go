package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/storage"

	redis "github.com/redis/go-redis/v9"
)

const notificationKeyPrefix = "notifications"

// notificationKey format: "notifications:{walletId}"
func notificationKey(walletID string) string {
	return fmt.Sprintf("%s:%s", notificationKeyPrefix, walletID)
}

// notificationDataKey format: "notifications:data:{walletId}"
func notificationDataKey(walletID string) string {
	return fmt.Sprintf("%s:data:%s", notificationKeyPrefix, walletID)
}

// insertNotificationScript writes the payload and its index entry in one
// step. Every index member shares score 0 so the set is ordered by id.
// Returns 0 when the id is already stored.
var insertNotificationScript = redis.NewScript(`
if redis.call("HSETNX", KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call("ZADD", KEYS[2], 0, ARGV[1])
return 1
`)

// StoreNotification inserts n. Storing an id twice fails with
// storage.ErrDuplicate.
func (c *client) StoreNotification(ctx context.Context, n notification.Notification) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	b, err := json.Marshal(n)
	if err != nil {
		return err
	}

	keys := []string{notificationDataKey(n.WalletID), notificationKey(n.WalletID)}
	inserted, err := insertNotificationScript.Run(ctx, conn, keys, n.ID, b).Int()
	if err != nil {
		return wrapErr(err)
	}
	if inserted == 0 {
		return fmt.Errorf("%w: notification %s", storage.ErrDuplicate, n.ID)
	}
	return nil
}

// FetchNotifications returns the notifications of walletIDs with an id
// strictly greater than both sinceID and the smallest id of sinceTs,
// ascending by id. Zero bounds are ignored.
func (c *client) FetchNotifications(ctx context.Context, walletIDs []string, sinceID string, sinceTs time.Time) ([]notification.Notification, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}

	var minID string
	if !sinceTs.IsZero() {
		minID = notification.IDFromTime(sinceTs)
	}
	if sinceID > minID {
		minID = sinceID
	}

	lexMin := "-"
	if minID != "" {
		lexMin = "(" + minID
	}

	var result []notification.Notification
	for _, walletID := range walletIDs {
		ids, err := conn.ZRangeByLex(ctx, notificationKey(walletID), &redis.ZRangeBy{Min: lexMin, Max: "+"}).Result()
		if err != nil {
			return nil, wrapErr(err)
		}
		if len(ids) == 0 {
			continue
		}

		values, err := conn.HMGet(ctx, notificationDataKey(walletID), ids...).Result()
		if err != nil {
			return nil, wrapErr(err)
		}

		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				continue
			}

			var n notification.Notification
			if err := json.Unmarshal([]byte(s), &n); err != nil {
				return nil, err
			}
			result = append(result, n)
		}
	}

	slices.SortStableFunc(result, func(a, b notification.Notification) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}
