// Package storage holds the error values shared by every persistence backend
// and by the services that consume them.
package storage

import (
	"errors"
	"strings"
)

var (
	// ErrNotReady is returned when the backend connection has not been
	// established or has already been closed.
	ErrNotReady = errors.New("storage not ready")

	// ErrNotFound is returned when a single keyed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned by insert operations when the key is taken.
	ErrDuplicate = errors.New("duplicate record")

	// ErrRateLimited marks transient overload errors reported by the backend.
	ErrRateLimited = errors.New("storage rate limited")

	// ErrLockTimeout is returned when a distributed lock cannot be acquired
	// before the wait deadline.
	ErrLockTimeout = errors.New("lock acquisition timed out")
)

// rateLimitMessages are fragments of backend error messages that signal overload.
var rateLimitMessages = []string{
	"Request rate is large",
	"BUSY",
	"LOADING",
	"max number of clients reached",
}

// IsRateLimited reports whether err is a transient overload condition, either
// wrapped with ErrRateLimited or carrying one of the known overload messages.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	msg := err.Error()
	for _, fragment := range rateLimitMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
