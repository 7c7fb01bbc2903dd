package chaincache

import (
	"context"
	"encoding/json"
	"strconv"
)

// TwoStep is the checkpoint of a two-step address scan.
type TwoStep struct {
	AddressCount int  `json:"addressCount"`
	LastEmpty    bool `json:"lastEmpty"`
}

// StoreTwoStepCache replaces the scan checkpoint of a wallet. Checkpoints do not expire.
func (s *Service) StoreTwoStepCache(ctx context.Context, walletID string, status TwoStep) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}

	return s.storage.StoreCacheDocument(ctx, Document{
		Kind:     KindTwoStep,
		WalletID: walletID,
		Payload:  payload,
		TS:       s.clock(),
	})
}

// GetTwoStepCache returns the scan checkpoint of a wallet and whether one exists.
func (s *Service) GetTwoStepCache(ctx context.Context, walletID string) (TwoStep, bool, error) {
	doc, found, err := s.fetchDocument(ctx, KindTwoStep, walletID, "")
	if err != nil || !found {
		return TwoStep{}, false, err
	}

	var status TwoStep
	if err := json.Unmarshal(doc.Payload, &status); err != nil {
		return TwoStep{}, false, err
	}
	return status, true, nil
}

// StoreAddressIndexCache records the last used derivation index under key.
func (s *Service) StoreAddressIndexCache(ctx context.Context, walletID, key string, index int) error {
	return s.storage.StoreCacheDocument(ctx, Document{
		Kind:     KindAddressIndex,
		WalletID: walletID,
		Key:      key,
		Payload:  json.RawMessage(strconv.Itoa(index)),
		TS:       s.clock(),
	})
}

// FetchAddressIndexCache returns the derivation index stored under key and
// whether one exists.
func (s *Service) FetchAddressIndexCache(ctx context.Context, walletID, key string) (int, bool, error) {
	doc, found, err := s.fetchDocument(ctx, KindAddressIndex, walletID, key)
	if err != nil || !found {
		return 0, false, err
	}

	var index int
	if err := json.Unmarshal(doc.Payload, &index); err != nil {
		return 0, false, err
	}
	return index, true, nil
}
