package paymentwatch

import (
	"sync"
	"time"
)

// Output is an observed payment to an address of a coin.
type Output struct {
	Address string
	Amount  int64
	TxID    string
	Coin    string
}

type outputKey struct {
	txid, address, coin string
}

func (o Output) key() outputKey {
	return outputKey{txid: o.TxID, address: o.Address, coin: o.Coin}
}

// outputBuffer accumulates outputs until a flush is due. A flush is due
// immediately once count entries are buffered, or after timeout elapses
// with no further append. Flushed batches are spliced out of the buffer so
// that appends can continue while a batch is processed.
//
// Every schedule or cancel bumps gen. An idle timer only flushes when the
// generation it was armed with is still current, so a timer that fired
// while the buffer was being appended to is a no-op.
type outputBuffer struct {
	mu      sync.Mutex
	entries []Output
	seen    map[outputKey]struct{}
	timer   *time.Timer
	gen     uint64

	count   int
	timeout time.Duration
	onIdle  func([]Output)
}

func newOutputBuffer(count int, timeout time.Duration, onIdle func([]Output)) *outputBuffer {
	return &outputBuffer{
		seen:    make(map[outputKey]struct{}),
		count:   count,
		timeout: timeout,
		onIdle:  onIdle,
	}
}

// append adds outs, skipping those already buffered with the same
// (txid, address, coin). The idle timer is cancelled until the next
// flushIfDue re-arms it.
func (b *outputBuffer) append(outs []Output) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancel()

	for _, o := range outs {
		k := o.key()
		if _, ok := b.seen[k]; ok {
			continue
		}
		b.seen[k] = struct{}{}
		b.entries = append(b.entries, o)
	}
}

// flushIfDue returns the next batch when the buffer reached its count.
// Otherwise it restarts the idle timer and returns nil.
func (b *outputBuffer) flushIfDue() []Output {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) < b.count {
		b.schedule()
		return nil
	}
	return b.splice()
}

// forceFlush returns the next batch regardless of the buffer size.
func (b *outputBuffer) forceFlush() []Output {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.splice()
}

// stop cancels the pending idle timer.
func (b *outputBuffer) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancel()
}

func (b *outputBuffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries)
}

// splice removes up to count entries. Entries left behind get a fresh idle
// timer. b.mu must be held.
func (b *outputBuffer) splice() []Output {
	b.cancel()

	n := min(len(b.entries), b.count)
	if n == 0 {
		return nil
	}

	batch := make([]Output, n)
	copy(batch, b.entries)
	b.entries = append(b.entries[:0:0], b.entries[n:]...)

	for _, o := range batch {
		delete(b.seen, o.key())
	}

	if len(b.entries) > 0 {
		b.schedule()
	}
	return batch
}

// schedule replaces the pending idle timer. b.mu must be held.
func (b *outputBuffer) schedule() {
	b.cancel()

	gen := b.gen
	b.timer = time.AfterFunc(b.timeout, func() { b.fireIdle(gen) })
}

// fireIdle splices the next batch for the timer armed at gen and hands it
// to onIdle. Stale timers are ignored.
func (b *outputBuffer) fireIdle(gen uint64) {
	b.mu.Lock()
	if b.gen != gen {
		b.mu.Unlock()
		return
	}
	batch := b.splice()
	b.mu.Unlock()

	if len(batch) > 0 {
		b.onIdle(batch)
	}
}

// cancel stops the pending idle timer and invalidates any callback already
// in flight. b.mu must be held.
func (b *outputBuffer) cancel() {
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
