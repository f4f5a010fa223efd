// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides test doubles for scheduler integrations.
package fake

import (
	"github.com/eapache/queue"

	"github.com/momentics/tickcore/core/sched"
)

// Firing is one recorded callback invocation.
type Firing struct {
	Timer *sched.Timer
	Ctx   any
	Tick  uint64
}

// Recorder journals every firing it observes. Register its Callback
// method as the timer callback; inspect or drain the journal afterwards.
type Recorder struct {
	s       *sched.Scheduler
	journal *queue.Queue
}

// NewRecorder creates a recorder bound to s for tick stamping.
func NewRecorder(s *sched.Scheduler) *Recorder {
	return &Recorder{s: s, journal: queue.New()}
}

// Callback is the sched callback; it appends a Firing to the journal.
func (r *Recorder) Callback(t *sched.Timer, ctx any) {
	r.journal.Add(Firing{Timer: t, Ctx: ctx, Tick: r.s.Now()})
}

// Len returns the number of recorded firings.
func (r *Recorder) Len() int { return r.journal.Length() }

// Next removes and returns the oldest recorded firing.
func (r *Recorder) Next() (Firing, bool) {
	if r.journal.Length() == 0 {
		return Firing{}, false
	}
	return r.journal.Remove().(Firing), true
}

// Drain removes and returns all recorded firings in order.
func (r *Recorder) Drain() []Firing {
	out := make([]Firing, 0, r.journal.Length())
	for r.journal.Length() > 0 {
		out = append(out, r.journal.Remove().(Firing))
	}
	return out
}
