package chainmonitor

import "context"

// EventType names the events delivered by an explorer feed.
type EventType string

const (
	EventConnect      EventType = "connect"
	EventConnectError EventType = "connect_error"
	EventError        EventType = "error"
	EventDisconnect   EventType = "disconnect"
	EventTx           EventType = "tx"
	EventBlock        EventType = "block"
)

// Output is a transaction output paying Amount satoshis to Address.
type Output struct {
	Address string
	Amount  int64
}

// Tx is a transaction announced by the explorer feed.
type Tx struct {
	TxID string
	Vout []Output
}

// Event is a single message of an explorer feed. Tx is set for EventTx,
// BlockHash for EventBlock and Err for the connectivity events that carry
// one.
type Event struct {
	Type      EventType
	Tx        Tx
	BlockHash string
	Err       error
}

// Explorer is the connection to the blockchain indexer of one (coin, network)
// pair.
type Explorer interface {
	// Events opens the feed. The channel is closed when ctx is done.
	// Reconnection is handled by the implementation, which reports it with
	// connectivity events.
	Events(ctx context.Context) (<-chan Event, error)

	// Emit sends an event to the explorer, such as a subscription request.
	Emit(ctx context.Context, event string, payload any) error

	// TxidsInBlock lists the ids of every transaction included in a block.
	TxidsInBlock(ctx context.Context, blockHash string) ([]string, error)

	// ConnectionInfo describes the endpoint for logging.
	ConnectionInfo() string
}
