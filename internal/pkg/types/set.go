// Package types holds small generic containers shared by the services.
package types

import (
	"cmp"
	"maps"
	"slices"
)

// Set is a hash set of comparable values. It is mutable and not safe for
// concurrent use.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	s.Add(values...)
	return s
}

// Add inserts values into the set.
func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// ToSlice returns the elements of the set in no particular order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(maps.Keys(s))
}

// Sorted returns the elements of s in ascending order.
//
// Parameters:
//   - s: the set to read.
//
// Returns:
//   - A new slice; nil when s is empty.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(s))
}
