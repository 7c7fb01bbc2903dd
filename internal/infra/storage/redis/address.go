package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gabapcia/bcmonitor/internal/chaincache"
	"github.com/gabapcia/bcmonitor/internal/storage"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	redis "github.com/redis/go-redis/v9"
)

const addressKeyPrefix = "addresses"

// addressKey format: "addresses:{walletId}"
func addressKey(walletID string) string {
	return fmt.Sprintf("%s:%s", addressKeyPrefix, walletID)
}

// addressIndexKey format: "addresses:index:{address}"
func addressIndexKey(address string) string {
	return fmt.Sprintf("%s:index:%s", addressKeyPrefix, address)
}

func decodeAddresses(raw []any) ([]wallet.Address, error) {
	addrs := make([]wallet.Address, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}

		var a wallet.Address
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

func sortByCreatedOnAsc(addrs []wallet.Address) {
	slices.SortStableFunc(addrs, func(a, b wallet.Address) int {
		return a.CreatedOn.Compare(b.CreatedOn)
	})
}

// FetchAddresses returns every address of a wallet, oldest first.
func (c *client) FetchAddresses(ctx context.Context, walletID string) ([]wallet.Address, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}

	values, err := conn.HVals(ctx, addressKey(walletID)).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	addrs, err := decodeAddresses(toAny(values))
	if err != nil {
		return nil, err
	}

	sortByCreatedOnAsc(addrs)
	return addrs, nil
}

// FetchNewAddresses returns the addresses of a wallet created at or after
// fromTs, oldest first.
func (c *client) FetchNewAddresses(ctx context.Context, walletID string, fromTs time.Time) ([]wallet.Address, error) {
	addrs, err := c.FetchAddresses(ctx, walletID)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(addrs, func(a wallet.Address) bool {
		return a.CreatedOn.Before(fromTs)
	}), nil
}

// CountAddresses returns how many addresses a wallet derived.
func (c *client) CountAddresses(ctx context.Context, walletID string) (int, error) {
	conn, err := c.db()
	if err != nil {
		return 0, err
	}

	n, err := conn.HLen(ctx, addressKey(walletID)).Result()
	return int(n), wrapErr(err)
}

// StoreAddress replaces an existing address. Unknown addresses are ignored.
func (c *client) StoreAddress(ctx context.Context, addr wallet.Address) error {
	conn, err := c.db()
	if err != nil {
		return err
	}

	exists, err := conn.HExists(ctx, addressKey(addr.WalletID), addr.Address).Result()
	if err != nil {
		return wrapErr(err)
	}
	if !exists {
		return nil
	}

	b, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	return wrapErr(conn.HSet(ctx, addressKey(addr.WalletID), addr.Address, b).Err())
}

// StoreAddressAndWallet inserts addrs into w and then stores w. Nothing is
// written when addrs is empty. An address already derived by w fails with
// storage.ErrDuplicate after the remaining addresses are inserted.
func (c *client) StoreAddressAndWallet(ctx context.Context, w wallet.Wallet, addrs []wallet.Address) error {
	conn, err := c.db()
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return nil
	}

	pipe := conn.Pipeline()
	inserts := make([]*redis.BoolCmd, len(addrs))
	for i, a := range addrs {
		a.WalletID = w.ID

		b, err := json.Marshal(a)
		if err != nil {
			return err
		}

		inserts[i] = pipe.HSetNX(ctx, addressKey(w.ID), a.Address, b)
		pipe.SAdd(ctx, addressIndexKey(a.Address), w.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapErr(err)
	}

	for i, cmd := range inserts {
		if !cmd.Val() {
			return fmt.Errorf("%w: address %s", storage.ErrDuplicate, addrs[i].Address)
		}
	}

	return c.StoreWallet(ctx, w)
}

// FetchAddressByWalletID returns an address of a wallet, or storage.ErrNotFound.
func (c *client) FetchAddressByWalletID(ctx context.Context, walletID, address string) (wallet.Address, error) {
	conn, err := c.db()
	if err != nil {
		return wallet.Address{}, err
	}

	b, err := conn.HGet(ctx, addressKey(walletID), address).Bytes()
	if errors.Is(err, redis.Nil) {
		return wallet.Address{}, storage.ErrNotFound
	}
	if err != nil {
		return wallet.Address{}, wrapErr(err)
	}

	var a wallet.Address
	err = json.Unmarshal(b, &a)
	return a, err
}

// FetchAddressByCoin returns the address record for address. When more than
// one wallet derived it, the one for coin wins.
func (c *client) FetchAddressByCoin(ctx context.Context, coin, address string) (wallet.Address, error) {
	addrs, err := c.FetchAddressesByInfo(ctx, []wallet.AddressInfo{{Address: address}})
	if err != nil {
		return wallet.Address{}, err
	}

	switch len(addrs) {
	case 0:
		return wallet.Address{}, storage.ErrNotFound
	case 1:
		return addrs[0], nil
	}

	for _, a := range addrs {
		if a.CoinOrDefault() == coin {
			return a, nil
		}
	}
	return wallet.Address{}, storage.ErrNotFound
}

// FetchAddressesByInfo resolves many (address, coin) pairs across every
// wallet at once. An info with an empty coin matches any coin.
func (c *client) FetchAddressesByInfo(ctx context.Context, infos []wallet.AddressInfo) ([]wallet.Address, error) {
	conn, err := c.db()
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}

	wantCoins := make(map[string][]string)
	var order []string
	for _, info := range infos {
		if _, seen := wantCoins[info.Address]; !seen {
			order = append(order, info.Address)
		}
		wantCoins[info.Address] = append(wantCoins[info.Address], info.Coin)
	}

	pipe := conn.Pipeline()
	owners := make([]*redis.StringSliceCmd, len(order))
	for i, address := range order {
		owners[i] = pipe.SMembers(ctx, addressIndexKey(address))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, wrapErr(err)
	}

	pipe = conn.Pipeline()
	var records []*redis.StringCmd
	for i, address := range order {
		for _, walletID := range owners[i].Val() {
			records = append(records, pipe.HGet(ctx, addressKey(walletID), address))
		}
	}
	if len(records) == 0 {
		return nil, nil
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, wrapErr(err)
	}

	var result []wallet.Address
	for _, cmd := range records {
		b, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, wrapErr(err)
		}

		var a wallet.Address
		if err := json.Unmarshal(b, &a); err != nil {
			return nil, err
		}

		coins := wantCoins[a.Address]
		if slices.Contains(coins, "") || slices.Contains(coins, a.CoinOrDefault()) {
			result = append(result, a)
		}
	}
	return result, nil
}

// StoreAddressesWithBalance replaces the balance-bearing addresses of a wallet.
func (c *client) StoreAddressesWithBalance(ctx context.Context, walletID string, addresses []string) error {
	payload, err := json.Marshal(addresses)
	if err != nil {
		return err
	}

	return c.StoreCacheDocument(ctx, chaincache.Document{
		Kind:     chaincache.KindAddressesWithBalance,
		WalletID: walletID,
		Payload:  payload,
		TS:       time.Now(),
	})
}

// FetchAddressesWithBalance returns the full records of the balance-bearing
// addresses of a wallet. The result is empty when none were stored.
func (c *client) FetchAddressesWithBalance(ctx context.Context, walletID string) ([]wallet.Address, error) {
	doc, err := c.FetchCacheDocument(ctx, chaincache.KindAddressesWithBalance, walletID, "")
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var addresses []string
	if err := json.Unmarshal(doc.Payload, &addresses); err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, nil
	}

	conn, err := c.db()
	if err != nil {
		return nil, err
	}

	values, err := conn.HMGet(ctx, addressKey(walletID), addresses...).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return decodeAddresses(values)
}
