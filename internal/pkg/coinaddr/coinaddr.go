// Package coinaddr detects and translates base58check addresses between
// the btc and the legacy bch (copay) encodings. The two coins share the
// payload and differ only in the version byte on livenet; testnet addresses
// are identical for both coins.
package coinaddr

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	CoinBTC = "btc"
	CoinBCH = "bch"
)

// ErrInvalidAddress is returned for strings that are not a known
// base58check address.
var ErrInvalidAddress = errors.New("invalid address")

// ErrUnsupportedCoin is returned when translating to an unknown coin.
var ErrUnsupportedCoin = errors.New("unsupported coin")

const hash160Size = 20

type addressKind struct {
	testnet    bool
	scriptHash bool
}

// versions holds the version byte of every address kind per coin. Lookups
// follow coinOrder, so ambiguous testnet addresses resolve to btc.
var versions = map[string]map[addressKind]byte{
	CoinBTC: {
		{testnet: false, scriptHash: false}: 0x00,
		{testnet: false, scriptHash: true}:  0x05,
		{testnet: true, scriptHash: false}:  0x6f,
		{testnet: true, scriptHash: true}:   0xc4,
	},
	CoinBCH: {
		{testnet: false, scriptHash: false}: 0x1c,
		{testnet: false, scriptHash: true}:  0x28,
		{testnet: true, scriptHash: false}:  0x6f,
		{testnet: true, scriptHash: true}:   0xc4,
	},
}

var coinOrder = []string{CoinBTC, CoinBCH}

func decode(address string) ([]byte, string, addressKind, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, "", addressKind{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(payload) != hash160Size {
		return nil, "", addressKind{}, fmt.Errorf("%w: payload of %d bytes", ErrInvalidAddress, len(payload))
	}

	for _, coin := range coinOrder {
		for kind, v := range versions[coin] {
			if v == version {
				return payload, coin, kind, nil
			}
		}
	}
	return nil, "", addressKind{}, fmt.Errorf("%w: unknown version 0x%02x", ErrInvalidAddress, version)
}

// AddressCoin returns the coin whose encoding address uses.
func AddressCoin(address string) (string, error) {
	_, coin, _, err := decode(address)
	return coin, err
}

// TranslateAddress re-encodes address for coin, keeping its network and
// type. Addresses already encoded for coin are returned unchanged.
func TranslateAddress(address, coin string) (string, error) {
	target, ok := versions[coin]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCoin, coin)
	}

	payload, _, kind, err := decode(address)
	if err != nil {
		return "", err
	}
	return base58.CheckEncode(payload, target[kind]), nil
}
