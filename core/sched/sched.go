// File: core/sched/sched.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Tick-driven timer dispatcher. Owns one ordered queue of armed timers
// compared by deadline ascending (lower deadline outranks; ties resolve
// arbitrarily) and a monotonically increasing 64-bit tick counter.

package sched

import (
	"github.com/momentics/tickcore/api"
	"github.com/momentics/tickcore/core/pqueue"
)

// Ensure compile-time interface compliance.
var _ api.Scheduler[*Timer] = (*Scheduler)(nil)

// Stats carries cumulative dispatcher counters for control-plane probes.
type Stats struct {
	Ticks   uint64 // tick advances processed
	Fired   uint64 // callbacks invoked
	Rearmed uint64 // periodic re-arms performed
}

// Scheduler is the tick dispatcher. The zero value is unusable; construct
// with New.
type Scheduler struct {
	queue  pqueue.Queue[*Timer]
	ticks  uint64
	inTick bool
	stats  Stats

	// firing is the record whose callback is currently running; stopped is
	// set when Disarm targets it. The fired record is already unarmed while
	// its callback runs, so without the flag an explicit self-Disarm would
	// look identical to a callback that left the record alone.
	firing  *Timer
	stopped bool
}

// New constructs a scheduler with an empty queue and the tick counter at
// zero.
func New() *Scheduler {
	s := &Scheduler{}
	// Lower deadline outranks. Init cannot fail with a non-nil rule.
	_ = s.queue.Init(
		func(a, b *Timer) bool { return a.deadline < b.deadline },
		func(t *Timer, n *pqueue.Node[*Timer]) { t.holder = n },
	)
	return s
}

// Now returns the current tick counter.
func (s *Scheduler) Now() uint64 { return s.ticks }

// Armed returns the number of currently armed timers.
func (s *Scheduler) Armed() int { return s.queue.Len() }

// Stats returns a snapshot of the cumulative dispatcher counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Register binds callback and context to the record and resets deadline
// and period to the unarmed state. It does not schedule the timer.
// Registering an armed timer is rejected.
func (s *Scheduler) Register(t *Timer, fn func(t *Timer, ctx any), ctx any) error {
	if t == nil || fn == nil {
		return api.ErrInvalidArgument
	}
	if t.armed {
		return api.ErrAlreadyExists
	}
	t.callback = fn
	t.ctx = ctx
	t.deadline = 0
	t.period = 0
	if t.spare == nil {
		t.spare = &t.self
	}
	t.registered = true
	return nil
}

// Arm starts or restarts the timer: an already armed record is first
// detached, so a record holds at most one queue membership. The deadline
// is set to now+ticks and the period to ticks when periodic, zero
// otherwise. Unlike plain queue inserts, arming re-balances synchronously.
func (s *Scheduler) Arm(t *Timer, ticks uint64, periodic bool) error {
	if t == nil || !t.registered {
		return api.ErrInvalidArgument
	}
	if t.armed {
		if err := s.detach(t); err != nil {
			return err
		}
	}
	t.deadline = s.ticks + ticks
	if periodic {
		t.period = ticks
	} else {
		t.period = 0
	}
	if err := s.queue.Insert(t.attach()); err != nil {
		return err
	}
	t.armed = true
	s.queue.Reorder()
	return nil
}

// Disarm removes the timer from the schedule. Disarming a timer that is
// not armed is a successful no-op.
func (s *Scheduler) Disarm(t *Timer) error {
	if t == nil {
		return api.ErrInvalidArgument
	}
	if t == s.firing {
		s.stopped = true
	}
	if !t.armed {
		return nil
	}
	return s.detach(t)
}

// SetPeriod updates the re-arm interval only. It takes effect on the next
// re-arm after firing, never retroactively against the current deadline.
func (s *Scheduler) SetPeriod(t *Timer, ticks uint64) error {
	if t == nil {
		return api.ErrInvalidArgument
	}
	t.period = ticks
	return nil
}

// AdvanceTick increments the tick counter by one and drains the queue:
// while the root timer's deadline has elapsed, it is popped, fired, and —
// if periodic — re-armed at deadline+period. Several timers may fire in a
// single tick; the firing order follows the local-sift queue, which is not
// guaranteed to be deadline order when more than two are concurrently due.
// Exactly one re-balance pass runs after the drain. Re-entrant calls from
// a callback are rejected.
func (s *Scheduler) AdvanceTick() error {
	if s.inTick {
		return api.ErrReentrantTick
	}
	s.inTick = true
	defer func() { s.inTick = false }()

	s.ticks++
	s.stats.Ticks++
	for {
		n, ok := s.queue.Peek()
		if !ok {
			break
		}
		t := n.Item()
		if t.deadline > s.ticks {
			break
		}
		popped, _ := s.queue.Pop()
		t.detach(popped)
		s.stats.Fired++
		s.firing = t
		s.stopped = false
		t.callback(t, t.ctx)
		s.firing = nil
		// The callback may have re-armed or disarmed the record; only
		// auto re-arm a periodic timer the callback left alone.
		if t.period != 0 && !t.armed && !s.stopped {
			t.deadline += t.period
			if err := s.queue.Insert(t.attach()); err != nil {
				return err
			}
			t.armed = true
			s.stats.Rearmed++
		}
	}
	s.queue.Reorder()
	return nil
}

// detach removes the timer's current holder node from the queue and hands
// the node back to the record as its spare.
func (s *Scheduler) detach(t *Timer) error {
	h := t.holder
	if err := s.queue.Remove(h); err != nil {
		return err
	}
	t.detach(h)
	return nil
}
