// Package insight connects the chain monitor to an Insight block explorer.
//
// The live feed is a websocket carrying JSON frames of the form
// {"event": name, "data": payload}. The connection is re-established with
// exponential backoff for as long as the feed context lives, and every
// connectivity change is reported as an event on the feed itself. Block
// contents are read from the explorer REST API.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gabapcia/bcmonitor/internal/chainmonitor"
	"github.com/gabapcia/bcmonitor/internal/pkg/logger"
	"github.com/gabapcia/bcmonitor/internal/pkg/resilience/retry"
	xhttp "github.com/gabapcia/bcmonitor/internal/pkg/transport/http"
	"github.com/gabapcia/bcmonitor/internal/pkg/x/chflow"

	"github.com/gorilla/websocket"
)

var (
	ErrAlreadyStreaming = errors.New("feed already open")
	ErrNotConnected     = errors.New("not connected")
)

const (
	DefaultBufferSize       = 256
	DefaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 5 * time.Second
)

// frame is the envelope of every websocket message.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type explorer struct {
	wsURL  string
	apiURL string
	http   xhttp.Client

	bufferSize int
	reconnect  retry.Retry
	dialer     *websocket.Dialer

	mu        sync.Mutex
	streaming bool

	connMu sync.Mutex
	conn   *websocket.Conn
}

var _ chainmonitor.Explorer = (*explorer)(nil)

func (e *explorer) ConnectionInfo() string {
	return e.wsURL
}

// Events opens the feed. The returned channel is closed once ctx ends.
func (e *explorer) Events(ctx context.Context) (<-chan chainmonitor.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streaming {
		return nil, ErrAlreadyStreaming
	}
	e.streaming = true

	events := make(chan chainmonitor.Event, e.bufferSize)
	go e.run(ctx, events)

	return events, nil
}

func (e *explorer) run(ctx context.Context, events chan<- chainmonitor.Event) {
	defer func() {
		close(events)

		e.mu.Lock()
		e.streaming = false
		e.mu.Unlock()
	}()

	for ctx.Err() == nil {
		var conn *websocket.Conn
		err := e.reconnect.Execute(ctx, func() error {
			var err error
			conn, err = e.dial(ctx)
			if err != nil {
				chflow.Send(ctx, events, chainmonitor.Event{Type: chainmonitor.EventConnectError, Err: err})
			}
			return err
		})
		if err != nil {
			return
		}

		e.setConn(conn)
		if !chflow.Send(ctx, events, chainmonitor.Event{Type: chainmonitor.EventConnect}) {
			e.dropConn(conn)
			return
		}

		err = e.read(ctx, conn, events)
		e.dropConn(conn)

		if ctx.Err() != nil {
			return
		}
		chflow.Send(ctx, events, chainmonitor.Event{Type: chainmonitor.EventDisconnect, Err: err})
	}
}

func (e *explorer) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, res, err := e.dialer.DialContext(ctx, e.wsURL, nil)
	if res != nil && res.Body != nil {
		res.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", e.wsURL, err)
	}
	return conn, nil
}

// read consumes frames until the connection fails or ctx ends.
func (e *explorer) read(ctx context.Context, conn *websocket.Conn, events chan<- chainmonitor.Event) error {
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if isMalformed(err) {
				if !chflow.Send(ctx, events, chainmonitor.Event{Type: chainmonitor.EventError, Err: err}) {
					return ctx.Err()
				}
				continue
			}
			return err
		}

		event, ok, err := decodeFrame(f)
		switch {
		case err != nil:
			event = chainmonitor.Event{Type: chainmonitor.EventError, Err: err}
		case !ok:
			logger.Debug(ctx, "ignoring frame", "event", f.Event)
			continue
		}

		if !chflow.Send(ctx, events, event) {
			return ctx.Err()
		}
	}
}

func isMalformed(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (e *explorer) setConn(conn *websocket.Conn) {
	e.connMu.Lock()
	e.conn = conn
	e.connMu.Unlock()
}

func (e *explorer) dropConn(conn *websocket.Conn) {
	e.connMu.Lock()
	if e.conn == conn {
		e.conn = nil
	}
	e.connMu.Unlock()

	conn.Close()
}

// Emit writes a frame on the live connection.
func (e *explorer) Emit(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	e.connMu.Lock()
	defer e.connMu.Unlock()

	if e.conn == nil {
		return ErrNotConnected
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteTimeout)
	}
	if err := e.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return e.conn.WriteJSON(frame{Event: event, Data: data})
}

type blockTxsPage struct {
	PagesTotal int `json:"pagesTotal"`
	Txs        []struct {
		TxID string `json:"txid"`
	} `json:"txs"`
}

// TxidsInBlock lists the transactions of a block, walking every page.
func (e *explorer) TxidsInBlock(ctx context.Context, blockHash string) ([]string, error) {
	var txids []string

	for page := 0; ; page++ {
		q := url.Values{}
		q.Set("block", blockHash)
		q.Set("pageNum", fmt.Sprint(page))

		var res blockTxsPage
		if err := e.http.GetJSON(ctx, e.apiURL+"/txs?"+q.Encode(), &res); err != nil {
			return nil, fmt.Errorf("block %s page %d: %w", blockHash, page, err)
		}

		for _, tx := range res.Txs {
			txids = append(txids, tx.TxID)
		}

		if page+1 >= res.PagesTotal {
			return txids, nil
		}
	}
}

type config struct {
	bufferSize       int
	handshakeTimeout time.Duration
	reconnect        retry.Retry
}

type Option func(*config)

// New creates an explorer for the websocket feed at wsURL and the REST API
// rooted at apiURL (e.g. "https://insight.example.com/api").
func New(wsURL, apiURL string, httpClient xhttp.Client, opts ...Option) *explorer {
	cfg := config{
		bufferSize:       DefaultBufferSize,
		handshakeTimeout: DefaultHandshakeTimeout,
		reconnect: retry.New(
			retry.WithAttempts(0),
			retry.WithDelay(time.Second),
			retry.WithMaxDelay(30*time.Second),
		),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &explorer{
		wsURL:      wsURL,
		apiURL:     apiURL,
		http:       httpClient,
		bufferSize: cfg.bufferSize,
		reconnect:  cfg.reconnect,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.handshakeTimeout,
		},
	}
}

// WithBufferSize sets how many events the feed holds before the reader
// blocks.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *config) {
		c.handshakeTimeout = d
	}
}

// WithReconnect replaces the reconnection policy. The policy must keep
// retrying until its context ends.
func WithReconnect(r retry.Retry) Option {
	return func(c *config) {
		c.reconnect = r
	}
}
