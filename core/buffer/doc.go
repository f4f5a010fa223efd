// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package buffer implements cooperative exchange buffers over
// caller-supplied storage: a byte ring buffer, a ping-pong double buffer,
// and a fixed-size message queue. None of them allocate; capacities are
// rounded down to a power of two for mask indexing.
package buffer
