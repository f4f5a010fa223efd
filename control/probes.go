// control/probes.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for scheduler inspection.
// The facade registers hooks under the typed names below; DumpState
// evaluates them lazily, so a dump always reflects live dispatcher state
// rather than the last metrics push.

package control

import "sync"

// ProbeName identifies one registered inspection hook.
type ProbeName string

const (
	ProbeTick       ProbeName = "tick"       // current tick counter
	ProbeArmed      ProbeName = "armed"      // size of the armed set
	ProbeRegistered ProbeName = "registered" // roster size at the facade
	ProbeFired      ProbeName = "fired"      // cumulative callbacks invoked
	ProbeRearmed    ProbeName = "rearmed"    // cumulative periodic re-arms
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[ProbeName]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[ProbeName]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name ProbeName, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState evaluates all probes and returns their outputs.
func (dp *DebugProbes) DumpState() map[ProbeName]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[ProbeName]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
