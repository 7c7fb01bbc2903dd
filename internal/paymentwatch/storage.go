package paymentwatch

import (
	"context"
	"time"

	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/wallet"
)

// Storage is the record store consulted while flushing.
type Storage interface {
	FetchAddressesByInfo(ctx context.Context, infos []wallet.AddressInfo) ([]wallet.Address, error)
	FetchNotifications(ctx context.Context, walletIDs []string, sinceID string, sinceTs time.Time) ([]notification.Notification, error)
	FetchAddressesWithBalance(ctx context.Context, walletID string) ([]wallet.Address, error)
	StoreAddressesWithBalance(ctx context.Context, walletID string, addresses []string) error
}

// HistoryCache invalidates the transaction history of a wallet.
type HistoryCache interface {
	SoftResetTxHistoryCache(ctx context.Context, walletID string) error
}

// Dispatcher persists and broadcasts notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notification.Notification) error
}

// Locker provides mutual exclusion across processes.
type Locker interface {
	Lock(ctx context.Context, resource string, ttl time.Duration) (func(context.Context) error, error)
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
