package chaincache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gabapcia/bcmonitor/internal/pkg/logger"

	"golang.org/x/crypto/ripemd160"
)

// BalanceLookup is the outcome of a balance cache check.
type BalanceLookup struct {
	// Balance is the cached payload. Only set when Hit is true.
	Balance json.RawMessage

	// Hit reports whether a valid entry was found.
	Hit bool

	// Evicted reports whether an expired entry was found and deleted.
	Evicted bool

	// ValidFor is the remaining validity of a hit.
	ValidFor time.Duration
}

// AddressesHash returns the balance cache key of an address set: the hex
// RIPEMD-160 digest of the addresses joined by commas, in the given order.
// The same set in a different order yields a different key.
func AddressesHash(addresses []string) string {
	h := ripemd160.New()
	h.Write([]byte(strings.Join(addresses, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// balanceOwner returns the wallet id under which a balance entry lives.
// Balances queried without a wallet are owned by their own key.
func balanceOwner(walletID, key string) string {
	if walletID == "" {
		return key
	}
	return walletID
}

// CheckAndUseBalanceCache looks up the balance of addresses. An entry is valid
// while less than validity has elapsed since it was stored. Expired entries
// are deleted during the lookup and reported through BalanceLookup.Evicted.
func (s *Service) CheckAndUseBalanceCache(ctx context.Context, walletID string, addresses []string, validity time.Duration) (BalanceLookup, error) {
	key := AddressesHash(addresses)
	owner := balanceOwner(walletID, key)

	doc, found, err := s.fetchDocument(ctx, KindBalance, owner, key)
	if err != nil {
		return BalanceLookup{}, err
	}
	if !found {
		s.countLookup(ctx, KindBalance, false)
		return BalanceLookup{}, nil
	}

	validFor := doc.TS.Add(validity).Sub(s.clock())
	if validFor > 0 {
		logger.Debug(ctx, "using balance cache", "wallet.id", owner, "cache.valid_for", validFor)
		s.countLookup(ctx, KindBalance, true)
		return BalanceLookup{Balance: doc.Payload, Hit: true, ValidFor: validFor}, nil
	}

	s.countLookup(ctx, KindBalance, false)

	logger.Debug(ctx, "balance cache expired, deleting", "wallet.id", owner)
	if err := s.storage.RemoveCacheDocument(ctx, KindBalance, owner, key); err != nil {
		logger.Warn(ctx, "could not evict expired balance cache", "wallet.id", owner, "error", err)
		return BalanceLookup{}, nil
	}

	return BalanceLookup{Evicted: true}, nil
}

// StoreBalanceCache stores the balance of addresses, stamped with the current time.
func (s *Service) StoreBalanceCache(ctx context.Context, walletID string, addresses []string, balance json.RawMessage) error {
	key := AddressesHash(addresses)

	return s.storage.StoreCacheDocument(ctx, Document{
		Kind:     KindBalance,
		WalletID: balanceOwner(walletID, key),
		Key:      key,
		Payload:  balance,
		TS:       s.clock(),
	})
}
