package chaincache

import (
	"context"
	"encoding/json"
	"time"
)

// FeeLevelsTTL is the validity of cached fee levels.
const FeeLevelsTTL = 5 * time.Minute

// FeeLevelsOptions identifies a fee level estimation request.
type FeeLevelsOptions struct {
	Coin    string `json:"coin"`
	Network string `json:"network"`
}

func feeLevelsKey(opts FeeLevelsOptions) (string, error) {
	b, err := json.Marshal(opts)
	return string(b), err
}

// CheckAndUseFeeLevelsCache returns the cached fee levels for opts and
// whether they are still valid. Expired entries are left in place for the
// next store to overwrite.
func (s *Service) CheckAndUseFeeLevelsCache(ctx context.Context, opts FeeLevelsOptions) (json.RawMessage, bool, error) {
	key, err := feeLevelsKey(opts)
	if err != nil {
		return nil, false, err
	}

	doc, found, err := s.fetchDocument(ctx, KindFeeLevels, "", key)
	if err != nil || !found {
		s.countLookup(ctx, KindFeeLevels, false)
		return nil, false, err
	}

	if doc.TS.Add(FeeLevelsTTL).Sub(s.clock()) <= 0 {
		s.countLookup(ctx, KindFeeLevels, false)
		return nil, false, nil
	}

	s.countLookup(ctx, KindFeeLevels, true)
	return doc.Payload, true, nil
}

// StoreFeeLevelsCache stores the fee levels computed for opts.
func (s *Service) StoreFeeLevelsCache(ctx context.Context, opts FeeLevelsOptions, values json.RawMessage) error {
	key, err := feeLevelsKey(opts)
	if err != nil {
		return err
	}

	return s.storage.StoreCacheDocument(ctx, Document{
		Kind:    KindFeeLevels,
		Key:     key,
		Payload: values,
		TS:      s.clock(),
	})
}
