// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package sched implements the tick-driven timer dispatcher: a logical
// tick counter plus an ordered queue of armed timer records. Each call to
// AdvanceTick advances time by one tick and fires every timer whose
// deadline has elapsed, re-arming periodic ones.
//
// The dispatcher is single-threaded cooperative: no operation blocks, no
// internal locking is provided, and callers drive ticks from one logical
// execution context.
package sched
