package paymentwatch

import (
	"context"
	"fmt"
	"slices"

	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/types"
	"github.com/gabapcia/bcmonitor/internal/wallet"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// flush resolves batch to stored addresses and notifies their wallets.
// Failures are logged and drop the batch.
func (s *service) flush(ctx context.Context, batch []Output) {
	ctx, span := s.tracer.Start(ctx, "paymentwatch.flush", trace.WithAttributes(
		attribute.Int("outputs.count", len(batch)),
	))
	defer span.End()

	if s.flushed != nil {
		s.flushed.Record(ctx, int64(len(batch)))
	}

	addrs, err := s.resolve(ctx, batch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "address lookup failed")
		logger.Error(ctx, "could not fetch addresses", "outputs.count", len(batch), "error", err)
		return
	}
	if len(addrs) == 0 {
		return
	}

	walletIDs := types.NewSet[string]()
	for _, a := range addrs {
		if a.WalletID != "" {
			walletIDs.Add(a.WalletID)
		}
	}

	recent, err := s.storage.FetchNotifications(ctx, types.Sorted(walletIDs), "", s.clock().Add(-notifiedWindow))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notification lookup failed")
		logger.Error(ctx, "could not fetch notifications", "wallets.count", len(walletIDs), "error", err)
		return
	}

	notified := make(map[string][]notification.Notification, len(walletIDs))
	for _, n := range recent {
		notified[n.WalletID] = append(notified[n.WalletID], n)
	}

	for _, a := range addrs {
		s.handleAddress(ctx, a, batch, notified)
	}
}

// resolve looks up the stored addresses of batch, retrying while the
// storage is rate limited.
func (s *service) resolve(ctx context.Context, batch []Output) ([]wallet.Address, error) {
	infos := make([]wallet.AddressInfo, 0, len(batch))
	for _, o := range batch {
		info := wallet.AddressInfo{Address: o.Address, Coin: o.Coin}
		if !slices.Contains(infos, info) {
			infos = append(infos, info)
		}
	}

	var addrs []wallet.Address
	err := s.retry.Execute(ctx, func() error {
		var err error
		addrs, err = s.storage.FetchAddressesByInfo(ctx, infos)
		if err != nil {
			logger.Warn(ctx, "address lookup failed", "addresses.count", len(infos), "error", err)
		}
		return err
	})
	return addrs, err
}

// handleAddress notifies the wallet owning addr of the outputs of batch it
// received. notified holds the recent notifications per wallet and is
// extended with the new ones.
func (s *service) handleAddress(ctx context.Context, addr wallet.Address, batch []Output, notified map[string][]notification.Notification) {
	if addr.IsChange || addr.Address == "" {
		return
	}

	ctx = logger.Derive(ctx, "wallet.id", addr.WalletID, "address", addr.Address)

	var (
		outs  []Output
		total int64
	)
	for _, o := range batch {
		if o.Address == addr.Address {
			outs = append(outs, o)
			total += o.Amount
		}
	}
	logger.Info(ctx, "incoming tx", "amount", total)

	var fresh []notification.Notification
	for _, o := range outs {
		if alreadyNotified(notified[addr.WalletID], o) {
			logger.Info(ctx, "incoming tx already notified", "tx.id", o.TxID)
			continue
		}

		n := notification.New(notification.TypeNewIncomingTx, addr.WalletID, "", notification.IncomingTxData{
			TxID:    o.TxID,
			Address: o.Address,
			Amount:  o.Amount,
		})
		notified[addr.WalletID] = append(notified[addr.WalletID], n)
		fresh = append(fresh, n)
	}

	if err := s.cache.SoftResetTxHistoryCache(ctx, addr.WalletID); err != nil {
		logger.Warn(ctx, "could not soft reset history cache", "error", err)
	}

	if err := s.markWithBalance(ctx, addr); err != nil {
		logger.Warn(ctx, "could not update addresses with balance", "error", err)
	}

	for _, n := range fresh {
		// Dispatch logs its own failures.
		_ = s.dispatcher.Dispatch(ctx, n)
	}
}

func alreadyNotified(notifications []notification.Notification, o Output) bool {
	return slices.ContainsFunc(notifications, func(n notification.Notification) bool {
		return n.IsIncomingTx(o.TxID, o.Address)
	})
}

// markWithBalance adds addr to the balance-bearing addresses of its wallet.
func (s *service) markWithBalance(ctx context.Context, addr wallet.Address) error {
	lockCtx, cancel := context.WithTimeout(ctx, balanceLockTTL)
	defer cancel()

	unlock, err := s.locker.Lock(lockCtx, "addressesWithBalance:"+addr.WalletID, balanceLockTTL)
	if err != nil {
		return fmt.Errorf("lock addresses with balance: %w", err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not release lock", "error", err)
		}
	}()

	current, err := s.storage.FetchAddressesWithBalance(ctx, addr.WalletID)
	if err != nil {
		return err
	}

	addresses := make([]string, 0, len(current)+1)
	for _, a := range current {
		if a.Address == addr.Address {
			return nil
		}
		addresses = append(addresses, a.Address)
	}

	logger.Info(ctx, "activating address")
	return s.storage.StoreAddressesWithBalance(ctx, addr.WalletID, append(addresses, addr.Address))
}
