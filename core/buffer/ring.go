// File: core/buffer/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte ring buffer over a caller-supplied slice. Indexing is mask-based,
// so the usable region is the largest power of two not exceeding the
// storage length, and one slot is sacrificed to tell full from empty.

package buffer

import (
	"github.com/momentics/tickcore/api"
)

// Ring is a fixed-capacity byte ring. The zero value is unusable; call
// Init with the backing storage first.
type Ring struct {
	buf  []byte
	mask uint32
	head uint32 // producer index
	tail uint32 // consumer index
}

// roundDownPow2 returns the largest power of two <= v, or zero.
func roundDownPow2(v uint32) uint32 {
	for v&(v-1) != 0 {
		v &= v - 1
	}
	return v
}

// Init adopts storage as the ring's backing buffer. The capacity is the
// length rounded down to a power of two; storage shorter than two bytes
// is rejected.
func (r *Ring) Init(storage []byte) error {
	size := roundDownPow2(uint32(len(storage)))
	if size < 2 {
		return api.ErrInvalidArgument
	}
	r.buf = storage[:size]
	r.mask = size - 1
	r.head = 0
	r.tail = 0
	return nil
}

// Cap returns the ring's slot count. One slot is always unusable.
func (r *Ring) Cap() int { return len(r.buf) }

// Len returns the number of buffered bytes.
func (r *Ring) Len() int { return int((r.head - r.tail) & r.mask) }

// Free returns the number of bytes that can still be pushed.
func (r *Ring) Free() int { return len(r.buf) - r.Len() - 1 }

// Empty reports whether no bytes are buffered.
func (r *Ring) Empty() bool { return r.head == r.tail }

// Full reports whether the ring cannot accept another byte.
func (r *Ring) Full() bool { return (r.head+1)&r.mask == r.tail }

// Push appends one byte; ErrNoSpace when full.
func (r *Ring) Push(b byte) error {
	if r.Full() {
		return api.ErrNoSpace
	}
	r.buf[r.head] = b
	r.head = (r.head + 1) & r.mask
	return nil
}

// Pop removes the oldest byte, ok == false when empty.
func (r *Ring) Pop() (byte, bool) {
	if r.Empty() {
		return 0, false
	}
	b := r.buf[r.tail]
	r.tail = (r.tail + 1) & r.mask
	return b, true
}

// Write copies p into the ring all-or-nothing: if p does not fit in the
// free space, nothing is copied and ErrNoSpace is returned. Returns the
// number of bytes copied.
func (r *Ring) Write(p []byte) (int, error) {
	if len(p) > r.Free() {
		return 0, api.ErrNoSpace
	}
	for _, b := range p {
		r.buf[r.head] = b
		r.head = (r.head + 1) & r.mask
	}
	return len(p), nil
}
