// File: core/buffer/msgqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-size message queue over a caller-supplied backing slice. Slot
// count is rounded down to a power of two; one slot is sacrificed to tell
// full from empty.

package buffer

import (
	"github.com/momentics/tickcore/api"
)

// Ensure compile-time interface compliance.
var _ api.Queue[int] = (*MessageQueue[int])(nil)

// MessageQueue is a bounded FIFO of fixed-size messages. The zero value
// is unusable; call Init with the backing storage first.
type MessageQueue[T any] struct {
	slots []T
	mask  uint32
	head  uint32 // producer index
	tail  uint32 // consumer index
}

// Init adopts backing as the queue's slot storage. The slot count is the
// length rounded down to a power of two; fewer than two slots is
// rejected.
func (q *MessageQueue[T]) Init(backing []T) error {
	size := roundDownPow2(uint32(len(backing)))
	if size < 2 {
		return api.ErrInvalidArgument
	}
	q.slots = backing[:size]
	q.mask = size - 1
	q.head = 0
	q.tail = 0
	return nil
}

// Cap returns the slot count. One slot is always unusable.
func (q *MessageQueue[T]) Cap() int { return len(q.slots) }

// Len returns the number of queued messages.
func (q *MessageQueue[T]) Len() int { return int((q.head - q.tail) & q.mask) }

// Push appends a message; ErrNoSpace when full.
func (q *MessageQueue[T]) Push(v T) error {
	if (q.head+1)&q.mask == q.tail {
		return api.ErrNoSpace
	}
	q.slots[q.head] = v
	q.head = (q.head + 1) & q.mask
	return nil
}

// Peek returns the oldest message without removing it.
func (q *MessageQueue[T]) Peek() (T, bool) {
	if q.head == q.tail {
		var zero T
		return zero, false
	}
	return q.slots[q.tail], true
}

// Pop removes and returns the oldest message.
func (q *MessageQueue[T]) Pop() (T, bool) {
	v, ok := q.Peek()
	if ok {
		q.tail = (q.tail + 1) & q.mask
	}
	return v, ok
}

// Flush discards all queued messages.
func (q *MessageQueue[T]) Flush() {
	q.head = 0
	q.tail = 0
}
