// Package wallet defines the multisig wallet entities shared by the
// monitoring services and the record store: wallets and their copayers,
// derived addresses, transaction proposals and confirmation subscriptions.
package wallet

import "time"

const (
	CoinBTC = "btc"
	CoinBCH = "bch"

	NetworkLivenet = "livenet"
	NetworkTestnet = "testnet"
)

// DefaultDerivationStrategy is assumed for wallets created before the
// strategy was recorded.
const DefaultDerivationStrategy = "BIP45"

// Coins and Networks list every supported (coin, network) combination.
var (
	Coins    = []string{CoinBTC, CoinBCH}
	Networks = []string{NetworkLivenet, NetworkTestnet}
)

// RequestPubKey is a copayer request key together with its signature.
type RequestPubKey struct {
	Key       string `json:"key"`
	Signature string `json:"signature"`
}

// Copayer is a participant of a multisig wallet.
type Copayer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	RequestPubKeys []RequestPubKey `json:"requestPubKeys"`
}

// Wallet is an m-of-n multisig wallet.
type Wallet struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	M                  int       `json:"m"`
	N                  int       `json:"n"`
	Coin               string    `json:"coin"`
	Network            string    `json:"network"`
	DerivationStrategy string    `json:"derivationStrategy,omitempty"`
	Status             string    `json:"status"`
	Copayers           []Copayer `json:"copayers"`
	CreatedOn          time.Time `json:"createdOn"`
}

// Copayer returns the copayer with the given id.
func (w Wallet) Copayer(id string) (Copayer, bool) {
	for _, c := range w.Copayers {
		if c.ID == id {
			return c, true
		}
	}
	return Copayer{}, false
}

// CopayerName returns the display name of the copayer with the given id, or
// an empty string when the wallet has no such copayer.
func (w Wallet) CopayerName(id string) string {
	c, _ := w.Copayer(id)
	return c.Name
}

// CopayerLookup maps a copayer to the wallet it belongs to.
type CopayerLookup struct {
	CopayerID      string          `json:"copayerId"`
	WalletID       string          `json:"walletId"`
	RequestPubKeys []RequestPubKey `json:"requestPubKeys"`
}

// Address is an address derived by a wallet.
type Address struct {
	WalletID  string    `json:"walletId"`
	Address   string    `json:"address"`
	Coin      string    `json:"coin,omitempty"`
	Network   string    `json:"network,omitempty"`
	Path      string    `json:"path,omitempty"`
	IsChange  bool      `json:"isChange"`
	CreatedOn time.Time `json:"createdOn"`
}

// CoinOrDefault returns the address coin. Addresses stored before
// multi-coin support have no coin and belong to btc.
func (a Address) CoinOrDefault() string {
	if a.Coin == "" {
		return CoinBTC
	}
	return a.Coin
}

// AddressInfo identifies an address across every wallet.
type AddressInfo struct {
	Address string
	Coin    string
}

// TxConfirmationSub is a standing request from a copayer to be notified the
// first time a transaction is seen inside a block.
type TxConfirmationSub struct {
	WalletID  string    `json:"walletId"`
	CopayerID string    `json:"copayerId"`
	TxID      string    `json:"txid"`
	IsActive  bool      `json:"isActive"`
	CreatedOn time.Time `json:"createdOn"`
}
