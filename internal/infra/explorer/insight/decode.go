package insight

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/gabapcia/bcmonitor/internal/chainmonitor"
)

// tx is the explorer representation of an announced transaction. Every
// vout entry maps an address to the amount, in satoshis, paid to it.
type tx struct {
	TxID string             `json:"txid"`
	Vout []map[string]int64 `json:"vout"`
}

// decodeFrame turns a frame into a feed event. ok is false for frames the
// monitor does not consume.
func decodeFrame(f frame) (event chainmonitor.Event, ok bool, err error) {
	switch f.Event {
	case "tx":
		var t tx
		if err := json.Unmarshal(f.Data, &t); err != nil {
			return event, true, fmt.Errorf("decode tx: %w", err)
		}
		return chainmonitor.Event{Type: chainmonitor.EventTx, Tx: t.toTx()}, true, nil
	case "block":
		var hash string
		if err := json.Unmarshal(f.Data, &hash); err != nil {
			return event, true, fmt.Errorf("decode block: %w", err)
		}
		return chainmonitor.Event{Type: chainmonitor.EventBlock, BlockHash: hash}, true, nil
	default:
		return event, false, nil
	}
}

func (t tx) toTx() chainmonitor.Tx {
	out := chainmonitor.Tx{TxID: t.TxID}
	for _, vout := range t.Vout {
		for _, addr := range slices.Sorted(maps.Keys(vout)) {
			out.Vout = append(out.Vout, chainmonitor.Output{Address: addr, Amount: vout[addr]})
		}
	}
	return out
}
