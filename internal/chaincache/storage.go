package chaincache

import (
	"context"
	"encoding/json"
	"time"
)

// Kind discriminates the cache document families.
type Kind string

const (
	KindHistory              Kind = "historyCache"
	KindHistoryStatus        Kind = "historyCacheStatus"
	KindBalance              Kind = "balanceCache"
	KindFeeLevels            Kind = "feeLevels"
	KindTwoStep              Kind = "twoStep"
	KindAddressesWithBalance Kind = "addressesWithBalance"
	KindAddressIndex         Kind = "addressIndexCache"
)

// Document is a generic cache entry. At most one document exists for a
// given (Kind, WalletID, Key); storing one replaces the previous value.
type Document struct {
	Kind     Kind            `json:"type"`
	WalletID string          `json:"walletId"`
	Key      string          `json:"key"`
	Payload  json.RawMessage `json:"payload"`
	TS       time.Time       `json:"ts"`
}

// HistoryStatus describes the transaction history cache of a wallet.
type HistoryStatus struct {
	WalletID   string    `json:"walletId"`
	TotalItems int       `json:"totalItems"`
	UpdatedOn  time.Time `json:"updatedOn"`
	IsComplete bool      `json:"isComplete"`
	IsUpdated  bool      `json:"isUpdated"`
}

// HistoryPage is a cached transaction at an absolute position, counted from
// the oldest transaction of the wallet (position 0).
type HistoryPage struct {
	Position int             `json:"position"`
	Tx       json.RawMessage `json:"tx"`
}

// DocumentStorage persists generic cache documents.
type DocumentStorage interface {
	// FetchCacheDocument returns storage.ErrNotFound when no document exists.
	FetchCacheDocument(ctx context.Context, kind Kind, walletID, key string) (Document, error)
	StoreCacheDocument(ctx context.Context, doc Document) error
	RemoveCacheDocument(ctx context.Context, kind Kind, walletID, key string) error
}

// HistoryStorage persists history pages and their status.
type HistoryStorage interface {
	// FetchHistoryStatus returns storage.ErrNotFound when the wallet has no status.
	FetchHistoryStatus(ctx context.Context, walletID string) (HistoryStatus, error)
	StoreHistoryStatus(ctx context.Context, status HistoryStatus) error

	// SoftResetHistoryStatus marks the wallet status as not updated, creating
	// the status when missing. Pages are kept.
	SoftResetHistoryStatus(ctx context.Context, walletID string) error

	// SoftResetAllHistoryStatuses marks every existing status as not updated.
	SoftResetAllHistoryStatuses(ctx context.Context) error

	// FetchHistoryPages returns the stored pages with a position in
	// [from, to), sorted by position in descending order. Missing
	// positions are skipped.
	FetchHistoryPages(ctx context.Context, walletID string, from, to int) ([]HistoryPage, error)
	StoreHistoryPages(ctx context.Context, walletID string, pages []HistoryPage) error

	// ClearHistory deletes every page and the status of the wallet.
	ClearHistory(ctx context.Context, walletID string) error
}

// Storage is the backend required by the cache service.
type Storage interface {
	DocumentStorage
	HistoryStorage
}
