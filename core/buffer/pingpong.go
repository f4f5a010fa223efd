// File: core/buffer/pingpong.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ping-pong (double) buffer over two caller-supplied slices. Producer and
// consumer alternate strictly: each successful Write flips the writable
// buffer and blocks the writer until the reader catches up, and vice
// versa. The exchange is pipelined by one flip — a Read returns the
// buffer the writer released on its previous flip, and the very first
// Read observes the initial contents of the second buffer.

package buffer

import (
	"github.com/momentics/tickcore/api"
)

// PingPong is a strict-alternation double buffer. The zero value is
// unusable; call Init first.
type PingPong struct {
	bufs  [2][]byte
	size  int
	write uint32 // buffer currently writable by the producer
	read  uint32 // buffer currently readable by the consumer
}

// Init adopts two equally sized, non-empty buffers.
func (p *PingPong) Init(first, second []byte) error {
	if len(first) == 0 || len(first) != len(second) {
		return api.ErrInvalidArgument
	}
	p.bufs[0] = first
	p.bufs[1] = second
	p.size = len(first)
	p.write = 0
	p.read = 1
	return nil
}

// Size returns the capacity of each side.
func (p *PingPong) Size() int { return p.size }

// Write copies data into the writable buffer and flips it. ErrBusy when
// the writer is ahead of the reader; ErrInvalidArgument when data exceeds
// the buffer size.
func (p *PingPong) Write(data []byte) error {
	if len(data) > p.size {
		return api.ErrInvalidArgument
	}
	if p.write == p.read {
		return api.ErrBusy
	}
	copy(p.bufs[p.write], data)
	p.write ^= 1
	return nil
}

// Read copies the readable buffer into out and flips it. ErrBusy when the
// reader is ahead of the writer; ErrInvalidArgument when out exceeds the
// buffer size.
func (p *PingPong) Read(out []byte) error {
	if len(out) > p.size {
		return api.ErrInvalidArgument
	}
	if p.write != p.read {
		return api.ErrBusy
	}
	copy(out, p.bufs[p.read])
	p.read ^= 1
	return nil
}
