// Package chflow wraps channel operations so that they give up when a
// context ends.
package chflow

import "context"

// Receive takes the next value from ch. ok is false when ctx ends first or
// ch is closed.
func Receive[T any](ctx context.Context, ch <-chan T) (value T, ok bool) {
	select {
	case <-ctx.Done():
		return value, false
	case value, ok = <-ch:
		return value, ok
	}
}

// Send delivers value on ch. It returns false, without sending, when ctx
// ends first.
func Send[T any](ctx context.Context, ch chan<- T, value T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- value:
		return true
	}
}
