// Package notification builds the immutable, time-ordered notifications raised
// by the chain monitor and dispatches them: every notification is persisted
// first, so that pollers always observe at least what live subscribers
// received, and then handed to the message broker for fan-out.
package notification

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Type discriminates the payload carried by a Notification.
type Type string

const (
	TypeNewIncomingTx             Type = "NewIncomingTx"
	TypeNewBlock                  Type = "NewBlock"
	TypeTxConfirmation            Type = "TxConfirmation"
	TypeNewOutgoingTxByThirdParty Type = "NewOutgoingTxByThirdParty"
)

// IncomingTxData is the payload of TypeNewIncomingTx.
type IncomingTxData struct {
	TxID    string `json:"txid"`
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
}

// BlockData is the payload of TypeNewBlock.
type BlockData struct {
	Hash    string `json:"hash"`
	Coin    string `json:"coin"`
	Network string `json:"network"`
}

// TxConfirmationData is the payload of TypeTxConfirmation.
type TxConfirmationData struct {
	TxID    string `json:"txid"`
	Coin    string `json:"coin"`
	Network string `json:"network"`
}

// OutgoingTxData is the payload of TypeNewOutgoingTxByThirdParty.
type OutgoingTxData struct {
	TxProposalID string `json:"txProposalId"`
	TxID         string `json:"txid"`
	Amount       int64  `json:"amount"`
}

// Notification is a domain event addressed to a wallet. Notifications are
// never mutated after New returns them.
//
// ID is a 14-digit zero-padded Unix millisecond timestamp followed by a
// 4-digit per-process sequence, so lexicographic order follows creation
// order and ids can be used as fetch cursors.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	WalletID  string    `json:"walletId"`
	CreatorID string    `json:"creatorId,omitempty"`
	Data      any       `json:"data"`
	CreatedOn time.Time `json:"createdOn"`
}

// UnmarshalJSON decodes Data into the payload struct selected by Type.
// Payloads of unknown types are kept as json.RawMessage.
func (n *Notification) UnmarshalJSON(b []byte) error {
	type alias Notification
	var raw struct {
		alias
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*n = Notification(raw.alias)

	var err error
	switch n.Type {
	case TypeNewIncomingTx:
		n.Data, err = decodeData[IncomingTxData](raw.Data)
	case TypeNewBlock:
		n.Data, err = decodeData[BlockData](raw.Data)
	case TypeTxConfirmation:
		n.Data, err = decodeData[TxConfirmationData](raw.Data)
	case TypeNewOutgoingTxByThirdParty:
		n.Data, err = decodeData[OutgoingTxData](raw.Data)
	default:
		n.Data = raw.Data
	}
	return err
}

func decodeData[T any](raw json.RawMessage) (T, error) {
	var data T
	if len(raw) == 0 || string(raw) == "null" {
		return data, nil
	}
	err := json.Unmarshal(raw, &data)
	return data, err
}

// IsIncomingTx reports whether n already notified the arrival of txid at
// address.
func (n Notification) IsIncomingTx(txid, address string) bool {
	if n.Type != TypeNewIncomingTx {
		return false
	}
	data, ok := n.Data.(IncomingTxData)
	return ok && data.TxID == txid && data.Address == address
}

const (
	idTimestampWidth = 14
	idSequenceWidth  = 4
	idSequenceSpan   = 10000
)

// IDFromTime returns the smallest notification id that can be generated at t.
func IDFromTime(t time.Time) string {
	return fmt.Sprintf("%0*d%0*d", idTimestampWidth, t.UnixMilli(), idSequenceWidth, 0)
}

// Generator creates notifications with process-unique, strictly increasing
// ids. The sequence restarts every millisecond. Once it is exhausted, or
// when the clock goes backwards, ids borrow the next logical millisecond.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    int
	clock  func() time.Time
}

// NewGenerator returns a Generator reading time from clock.
func NewGenerator(clock func() time.Time) *Generator {
	return &Generator{clock: clock}
}

// New builds a notification stamped with the current time.
func (g *Generator) New(typ Type, walletID, creatorID string, data any) Notification {
	g.mu.Lock()
	now := g.clock()
	switch ms := now.UnixMilli(); {
	case ms > g.lastMs:
		g.lastMs, g.seq = ms, 0
	case g.seq+1 < idSequenceSpan:
		g.seq++
	default:
		g.lastMs, g.seq = g.lastMs+1, 0
	}
	ms, seq := g.lastMs, g.seq
	g.mu.Unlock()

	return Notification{
		ID:        fmt.Sprintf("%0*d%0*d", idTimestampWidth, ms, idSequenceWidth, seq),
		Type:      typ,
		WalletID:  walletID,
		CreatorID: creatorID,
		Data:      data,
		CreatedOn: now,
	}
}

var defaultGenerator = NewGenerator(time.Now)

// New builds a notification using the process-wide generator.
func New(typ Type, walletID, creatorID string, data any) Notification {
	return defaultGenerator.New(typ, walletID, creatorID, data)
}
