package wallet

import "time"

// Tx proposal statuses.
const (
	TxStatusPending     = "pending"
	TxStatusAccepted    = "accepted"
	TxStatusRejected    = "rejected"
	TxStatusBroadcasted = "broadcasted"
)

// TxAction is a copayer decision on a proposal.
type TxAction struct {
	CopayerID   string    `json:"copayerId"`
	CopayerName string    `json:"copayerName,omitempty"`
	Type        string    `json:"type"`
	Comment     string    `json:"comment,omitempty"`
	CreatedOn   time.Time `json:"createdOn"`
}

// TxProposal is a spending proposal of a wallet. Proposals are created and
// signed elsewhere; here they are only read, enriched and marked as
// broadcasted.
type TxProposal struct {
	ID                 string     `json:"id"`
	WalletID           string     `json:"walletId"`
	TxID               string     `json:"txid,omitempty"`
	Status             string     `json:"status"`
	Amount             int64      `json:"amount"`
	CreatorID          string     `json:"creatorId"`
	CreatorName        string     `json:"creatorName,omitempty"`
	Actions            []TxAction `json:"actions"`
	IsPending          bool       `json:"isPending"`
	DerivationStrategy string     `json:"derivationStrategy,omitempty"`
	CreatedOn          time.Time  `json:"createdOn"`
	BroadcastedOn      time.Time  `json:"broadcastedOn,omitzero"`
}

// SetBroadcasted marks the proposal as broadcasted at now.
func (tx *TxProposal) SetBroadcasted(now time.Time) {
	tx.Status = TxStatusBroadcasted
	tx.IsPending = false
	tx.BroadcastedOn = now
}

// Decorate fills the display fields of tx from the owning wallet.
func (tx *TxProposal) Decorate(w Wallet) {
	tx.DerivationStrategy = w.DerivationStrategy
	if tx.DerivationStrategy == "" {
		tx.DerivationStrategy = DefaultDerivationStrategy
	}

	tx.CreatorName = w.CopayerName(tx.CreatorID)
	for i := range tx.Actions {
		tx.Actions[i].CopayerName = w.CopayerName(tx.Actions[i].CopayerID)
	}
}
