// Package api
// Author: momentics <momentics@gmail.com>
//
// Scheduler contract for tick-driven timer dispatch.

package api

// Scheduler abstracts tick-driven timer scheduling for cooperative loops.
// T is the caller-owned timer record type; the scheduler only ever borrows
// records and never allocates or frees them. All operations are synchronous
// and assume a single logical execution context; implementations provide
// no internal locking.
type Scheduler[T any] interface {
	// Register binds callback and context to a timer record.
	// It does not schedule the timer. The callback must not advance
	// ticks re-entrantly on the same scheduler.
	Register(t T, fn func(t T, ctx any), ctx any) error

	// Arm schedules (or reschedules) the timer to fire after ticks
	// tick advances, re-arming every ticks when periodic.
	Arm(t T, ticks uint64, periodic bool) error

	// Disarm removes the timer from the schedule if present.
	Disarm(t T) error

	// SetPeriod changes the re-arm interval applied after the next firing.
	SetPeriod(t T, ticks uint64) error

	// AdvanceTick advances logical time by one tick and fires all
	// timers whose deadlines have elapsed.
	AdvanceTick() error

	// Now returns the current tick counter.
	Now() uint64
}
