package chaincache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/bcmonitor/internal/storage"
)

// GetTxHistoryCache returns the cached transactions between the from-th and
// the to-th most recent ones (0 being the newest), newest first.
//
// Positions are converted to absolute keys with the total item count recorded
// at the last store:
//
//	fwdIndex = max(0, total - to)
//	end      = total - from
//
// and every page in [fwdIndex, end) must be present. The boolean result is
// false (a miss) when:
//   - the wallet has no history status, or it was soft reset; or
//   - any page in the range is missing.
//
// A range entirely older than the known history (end <= 0) is a hit with no
// transactions.
func (s *Service) GetTxHistoryCache(ctx context.Context, walletID string, from, to int) ([]json.RawMessage, bool, error) {
	if from < 0 || from > to {
		return nil, false, fmt.Errorf("%w: from=%d to=%d", ErrInvalidRange, from, to)
	}

	status, err := s.storage.FetchHistoryStatus(ctx, walletID)
	if errors.Is(err, storage.ErrNotFound) {
		s.countLookup(ctx, KindHistory, false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !status.IsUpdated {
		s.countLookup(ctx, KindHistory, false)
		return nil, false, nil
	}

	fwdIndex := max(0, status.TotalItems-to)
	end := status.TotalItems - from
	if end <= 0 {
		s.countLookup(ctx, KindHistory, true)
		return []json.RawMessage{}, true, nil
	}

	pages, err := s.storage.FetchHistoryPages(ctx, walletID, fwdIndex, end)
	if err != nil {
		return nil, false, err
	}
	if len(pages) < end-fwdIndex {
		s.countLookup(ctx, KindHistory, false)
		return nil, false, nil
	}

	txs := make([]json.RawMessage, 0, len(pages))
	for _, page := range pages {
		txs = append(txs, page.Tx)
	}

	s.countLookup(ctx, KindHistory, true)
	return txs, true, nil
}

// StoreTxHistoryCache stores items, given in chronological order, at the
// absolute positions starting at firstPosition, and then marks the wallet
// history as updated with totalItems. The history is complete once the
// oldest transaction (firstPosition 0) has been written.
//
// Pages written before a failed store are kept; they are only served again
// after a later store succeeds.
func (s *Service) StoreTxHistoryCache(ctx context.Context, walletID string, totalItems, firstPosition int, items []json.RawMessage) error {
	if firstPosition < 0 || totalItems < 0 {
		return fmt.Errorf("%w: totalItems=%d firstPosition=%d", ErrInvalidRange, totalItems, firstPosition)
	}

	pages := make([]HistoryPage, 0, len(items))
	for i, item := range items {
		pages = append(pages, HistoryPage{Position: firstPosition + i, Tx: item})
	}

	if len(pages) > 0 {
		if err := s.storage.StoreHistoryPages(ctx, walletID, pages); err != nil {
			return err
		}
	}

	return s.storage.StoreHistoryStatus(ctx, HistoryStatus{
		WalletID:   walletID,
		TotalItems: totalItems,
		UpdatedOn:  s.clock(),
		IsComplete: firstPosition == 0,
		IsUpdated:  true,
	})
}

// SoftResetTxHistoryCache marks the wallet history as stale without deleting
// its pages, so it can be repopulated incrementally.
func (s *Service) SoftResetTxHistoryCache(ctx context.Context, walletID string) error {
	return s.storage.SoftResetHistoryStatus(ctx, walletID)
}

// SoftResetAllTxHistoryCache marks the history of every wallet as stale.
func (s *Service) SoftResetAllTxHistoryCache(ctx context.Context) error {
	return s.storage.SoftResetAllHistoryStatuses(ctx)
}

// ClearTxHistoryCache deletes every page and the status of the wallet history.
func (s *Service) ClearTxHistoryCache(ctx context.Context, walletID string) error {
	return s.storage.ClearHistory(ctx, walletID)
}
