// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for scheduler monitoring. Counters are keyed
// by typed names and every snapshot carries the tick it was observed at,
// so a reader can correlate control-plane values with logical time.

package control

import (
	"sync"
	"time"
)

// Counter names one scheduler metric tracked by the registry.
type Counter string

const (
	CounterArmed   Counter = "armed"   // timers currently scheduled
	CounterFired   Counter = "fired"   // callbacks invoked so far
	CounterRearmed Counter = "rearmed" // periodic re-arms performed so far
)

// Snapshot is one tick-stamped view of the scheduler counters.
type Snapshot struct {
	Tick     uint64
	Taken    time.Time
	Counters map[Counter]uint64
}

// MetricsRegistry holds the latest counter values.
type MetricsRegistry struct {
	mu       sync.RWMutex
	tick     uint64
	taken    time.Time
	counters map[Counter]uint64
}

// NewMetricsRegistry creates an empty registry stamped at tick zero.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[Counter]uint64),
	}
}

// Set records a counter value observed at the given tick. The registry
// keeps the highest tick seen as its snapshot stamp.
func (mr *MetricsRegistry) Set(tick uint64, c Counter, value uint64) {
	mr.mu.Lock()
	mr.counters[c] = value
	if tick >= mr.tick {
		mr.tick = tick
		mr.taken = time.Now()
	}
	mr.mu.Unlock()
}

// Get returns one counter value and whether it has ever been set.
func (mr *MetricsRegistry) Get(c Counter) (uint64, bool) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	v, ok := mr.counters[c]
	return v, ok
}

// Updated returns the tick and wall-clock time of the last Set.
func (mr *MetricsRegistry) Updated() (uint64, time.Time) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.tick, mr.taken
}

// GetSnapshot returns a tick-stamped copy of the counters.
func (mr *MetricsRegistry) GetSnapshot() Snapshot {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := Snapshot{
		Tick:     mr.tick,
		Taken:    mr.taken,
		Counters: make(map[Counter]uint64, len(mr.counters)),
	}
	for k, v := range mr.counters {
		out.Counters[k] = v
	}
	return out
}
