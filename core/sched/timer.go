// File: core/sched/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timer record and its queue-handle bookkeeping. Records are caller-owned:
// the scheduler borrows them between Arm and Disarm/firing and never
// allocates or frees one. Because the ordered queue relocates payloads
// between nodes during its sift, a record tracks both the node currently
// holding it (while armed) and a spare node to link with on the next arm.

package sched

import (
	"github.com/momentics/tickcore/core/pqueue"
)

// Callback is invoked when a timer's deadline elapses. It receives the
// firing timer and the opaque context bound at registration. Callbacks may
// arm, disarm, or re-period timers on the same scheduler, but must not
// call AdvanceTick re-entrantly.
type Callback func(t *Timer, ctx any)

// Timer is one schedulable event. The zero value is valid; Register must
// run before Arm. A record may be armed and disarmed repeatedly across
// its lifetime.
type Timer struct {
	deadline uint64
	period   uint64
	callback Callback
	ctx      any

	self       pqueue.Node[*Timer] // embedded queue handle
	holder     *pqueue.Node[*Timer]
	spare      *pqueue.Node[*Timer]
	armed      bool
	registered bool
}

// Deadline returns the absolute tick at which the timer is due to fire.
// Meaningful only while armed.
func (t *Timer) Deadline() uint64 { return t.deadline }

// Period returns the re-arm interval in ticks; zero marks a one-shot.
func (t *Timer) Period() uint64 { return t.period }

// Armed reports whether the timer is currently scheduled.
func (t *Timer) Armed() bool { return t.armed }

// Context returns the opaque payload bound at registration.
func (t *Timer) Context() any { return t.ctx }

// attach links the timer into the queue through its spare node.
func (t *Timer) attach() *pqueue.Node[*Timer] {
	n := t.spare
	t.spare = nil
	n.SetItem(t)
	return n
}

// detach records n as the timer's spare after it left the queue.
func (t *Timer) detach(n *pqueue.Node[*Timer]) {
	t.armed = false
	t.holder = nil
	t.spare = n
}
