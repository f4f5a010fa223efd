// File: facade/tickcore.go
// Unified facade layer for the tickcore library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TickCore aggregates the scheduler core behind a single integration
// surface: it owns one dispatcher, a roster of registered timers, and the
// optional control-plane wiring (metrics registry and debug probes). The
// core packages stay allocation-free and silent; everything observable
// lives here.

package facade

import (
	"sync"

	"github.com/momentics/tickcore/control"
	"github.com/momentics/tickcore/core/list"
	"github.com/momentics/tickcore/core/sched"
)

// Config holds parameters immutable per instance.
type Config struct {
	EnableMetrics bool // Maintain the metrics registry on every tick
	EnableDebug   bool // Register debug probes for DumpState
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		EnableMetrics: true,
		EnableDebug:   true,
	}
}

// TickCore is the main facade type.
type TickCore struct {
	sched   *sched.Scheduler
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
	roster  list.List[*sched.Timer]
	nodes   map[*sched.Timer]*list.Node[*sched.Timer]
	config  *Config
}

// New constructs a TickCore with the given configuration.
func New(cfg *Config) *TickCore {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	tc := &TickCore{
		sched:  sched.New(),
		nodes:  make(map[*sched.Timer]*list.Node[*sched.Timer]),
		config: cfg,
	}
	if cfg.EnableMetrics {
		tc.metrics = control.NewMetricsRegistry()
	}
	if cfg.EnableDebug {
		tc.probes = control.NewDebugProbes()
		tc.probes.RegisterProbe(control.ProbeTick, func() any { return tc.sched.Now() })
		tc.probes.RegisterProbe(control.ProbeArmed, func() any { return tc.sched.Armed() })
		tc.probes.RegisterProbe(control.ProbeRegistered, func() any { return tc.roster.Len() })
		tc.probes.RegisterProbe(control.ProbeFired, func() any { return tc.sched.Stats().Fired })
		tc.probes.RegisterProbe(control.ProbeRearmed, func() any { return tc.sched.Stats().Rearmed })
	}
	return tc
}

// Scheduler exposes the underlying dispatcher.
func (tc *TickCore) Scheduler() *sched.Scheduler { return tc.sched }

// Register binds callback and context to the record and adds it to the
// facade roster. Re-registering a known record only rebinds it.
func (tc *TickCore) Register(t *sched.Timer, fn sched.Callback, ctx any) error {
	if err := tc.sched.Register(t, fn, ctx); err != nil {
		return err
	}
	if _, known := tc.nodes[t]; !known {
		n := &list.Node[*sched.Timer]{}
		n.SetItem(t)
		if err := tc.roster.Append(n); err != nil {
			return err
		}
		tc.nodes[t] = n
	}
	return nil
}

// Arm schedules (or reschedules) the timer after ticks tick advances.
func (tc *TickCore) Arm(t *sched.Timer, ticks uint64, periodic bool) error {
	return tc.sched.Arm(t, ticks, periodic)
}

// Disarm removes the timer from the schedule if present.
func (tc *TickCore) Disarm(t *sched.Timer) error { return tc.sched.Disarm(t) }

// SetPeriod changes the re-arm interval applied after the next firing.
func (tc *TickCore) SetPeriod(t *sched.Timer, ticks uint64) error {
	return tc.sched.SetPeriod(t, ticks)
}

// AdvanceTick advances logical time by one tick, fires elapsed timers,
// and refreshes the metrics registry when enabled.
func (tc *TickCore) AdvanceTick() error {
	if err := tc.sched.AdvanceTick(); err != nil {
		return err
	}
	if tc.metrics != nil {
		now := tc.sched.Now()
		st := tc.sched.Stats()
		tc.metrics.Set(now, control.CounterArmed, uint64(tc.sched.Armed()))
		tc.metrics.Set(now, control.CounterFired, st.Fired)
		tc.metrics.Set(now, control.CounterRearmed, st.Rearmed)
	}
	return nil
}

// Now returns the current tick counter.
func (tc *TickCore) Now() uint64 { return tc.sched.Now() }

// Registered returns the number of timers on the roster.
func (tc *TickCore) Registered() int { return tc.roster.Len() }

// EachRegistered walks the roster of registered timer records.
func (tc *TickCore) EachRegistered(fn func(t *sched.Timer)) {
	tc.roster.Each(func(n *list.Node[*sched.Timer]) { fn(n.Item()) })
}

// Snapshot returns the latest tick-stamped metrics, or nil when metrics
// are disabled.
func (tc *TickCore) Snapshot() *control.Snapshot {
	if tc.metrics == nil {
		return nil
	}
	snap := tc.metrics.GetSnapshot()
	return &snap
}

// DumpState returns the debug probe outputs, or nil when debug is
// disabled.
func (tc *TickCore) DumpState() map[control.ProbeName]any {
	if tc.probes == nil {
		return nil
	}
	return tc.probes.DumpState()
}

// Default returns the process-wide instance, constructing it with the
// default configuration on first use. The singleton exists only at this
// integration boundary; the core carries no global state.
var (
	defaultOnce sync.Once
	defaultCore *TickCore
)

func Default() *TickCore {
	defaultOnce.Do(func() { defaultCore = New(DefaultConfig()) })
	return defaultCore
}
