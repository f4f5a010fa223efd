// Package api
// Author: momentics <momentics@gmail.com>
//
// Bounded FIFO queue contract for cooperative producer/consumer exchange.

package api

// Queue is a bounded FIFO contract over caller-owned storage.
type Queue[T any] interface {
	// Push appends an item; returns ErrNoSpace if full.
	Push(item T) error
	// Pop removes the oldest item, ok == false if empty.
	Pop() (T, bool)
	// Peek returns the oldest item without removing it.
	Peek() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns queue capacity.
	Cap() int
}
