package chainmonitor

import (
	"context"

	"github.com/gabapcia/bcmonitor/internal/notification"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// isNewBlock reports whether hash was not seen within the dedup window.
// A repeated hash extends its own window.
func (s *service) isNewBlock(hash string) bool {
	item, found := s.seenBlocks.GetOrSet(hash, struct{}{})
	if found {
		s.seenBlocks.Touch(item.Key())
	}
	return !found
}

func (s *service) handleBlock(ctx context.Context, pair Pair, explorer Explorer, hash string) {
	if !s.isNewBlock(hash) {
		s.blocks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "duplicate")))
		logger.Debug(ctx, "ignoring duplicated block", "block", hash)
		return
	}
	s.blocks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "new")))

	ctx = logger.Derive(ctx, "block", hash)
	logger.Info(ctx, "new block")

	if err := s.cache.SoftResetAllTxHistoryCache(ctx); err != nil {
		logger.Error(ctx, "could not reset history caches", "error", err)
	}

	n := notification.New(notification.TypeNewBlock, pair.Network, "", notification.BlockData{
		Hash:    hash,
		Coin:    pair.Coin,
		Network: pair.Network,
	})
	if err := s.dispatcher.Dispatch(ctx, n); err != nil {
		logger.Error(ctx, "could not dispatch block notification", "error", err)
	}

	s.handleTxConfirmations(ctx, pair, explorer, hash)
}

// handleTxConfirmations notifies, once, every copayer subscribed to a
// transaction included in the block.
func (s *service) handleTxConfirmations(ctx context.Context, pair Pair, explorer Explorer, hash string) {
	txids, err := explorer.TxidsInBlock(ctx, hash)
	if err != nil {
		logger.Error(ctx, "could not fetch block transactions", "error", err)
		return
	}
	if len(txids) == 0 {
		return
	}

	included := types.NewSet(txids...)

	subs, err := s.storage.FetchActiveTxConfirmationSubs(ctx, "")
	if err != nil {
		logger.Error(ctx, "could not fetch confirmation subscriptions", "error", err)
		return
	}

	for _, sub := range subs {
		if !included.Has(sub.TxID) {
			continue
		}

		sub.IsActive = false
		if err := s.storage.StoreTxConfirmationSub(ctx, sub); err != nil {
			logger.Error(ctx, "could not deactivate confirmation subscription", "wallet_id", sub.WalletID, "txid", sub.TxID, "error", err)
			continue
		}

		logger.Info(ctx, "tx confirmed", "wallet_id", sub.WalletID, "txid", sub.TxID)

		n := notification.New(notification.TypeTxConfirmation, sub.WalletID, sub.CopayerID, notification.TxConfirmationData{
			TxID:    sub.TxID,
			Coin:    pair.Coin,
			Network: pair.Network,
		})
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			logger.Error(ctx, "could not dispatch confirmation notification", "wallet_id", sub.WalletID, "txid", sub.TxID, "error", err)
		}
	}
}
