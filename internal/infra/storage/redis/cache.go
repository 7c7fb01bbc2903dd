package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/bcmonitor/internal/chaincache"

	redis "github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cache"

// cacheDocumentKey format: "cache:{kind}:{walletId}:{key}"
func cacheDocumentKey(kind chaincache.Kind, walletID, key string) string {
	return fmt.Sprintf("%s:%s:%s:%s", cacheKeyPrefix, kind, walletID, key)
}

// FetchCacheDocument returns the document stored for (kind, walletID, key),
// or storage.ErrNotFound.
func (c *client) FetchCacheDocument(ctx context.Context, kind chaincache.Kind, walletID, key string) (chaincache.Document, error) {
	conn, err := c.db()
	if err != nil {
		return chaincache.Document{}, err
	}
	return getJSON[chaincache.Document](ctx, conn, cacheDocumentKey(kind, walletID, key))
}

// StoreCacheDocument replaces the document stored for the same
// (kind, walletID, key).
func (c *client) StoreCacheDocument(ctx context.Context, doc chaincache.Document) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return wrapErr(conn.Set(ctx, cacheDocumentKey(doc.Kind, doc.WalletID, doc.Key), b, 0).Err())
}

// RemoveCacheDocument deletes a document. Removing a missing document is not
// an error.
func (c *client) RemoveCacheDocument(ctx context.Context, kind chaincache.Kind, walletID, key string) error {
	conn, err := c.db()
	if err != nil {
		return err
	}
	return wrapErr(conn.Del(ctx, cacheDocumentKey(kind, walletID, key)).Err())
}

// scanKeys returns every key matching pattern.
func scanKeys(ctx context.Context, conn *redis.Client, pattern string) ([]string, error) {
	var keys []string

	iter := conn.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil && !errors.Is(err, redis.Nil) {
		return nil, wrapErr(err)
	}
	return keys, nil
}

func (c *client) removeWalletCacheDocuments(ctx context.Context, conn *redis.Client, walletID string) error {
	keys, err := scanKeys(ctx, conn, fmt.Sprintf("%s:*:%s:*", cacheKeyPrefix, walletID))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return wrapErr(conn.Del(ctx, keys...).Err())
}

var _ chaincache.DocumentStorage = (*client)(nil)

