package sched

import (
	"errors"
	"testing"

	"github.com/momentics/tickcore/api"
)

func advance(t *testing.T, s *Scheduler, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := s.AdvanceTick(); err != nil {
			t.Fatalf("AdvanceTick failed: %v", err)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	s := New()
	if err := s.Register(nil, func(*Timer, any) {}, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("nil timer: expected ErrInvalidArgument, got %v", err)
	}
	if err := s.Register(&Timer{}, nil, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("nil callback: expected ErrInvalidArgument, got %v", err)
	}
}

func TestArmRequiresRegistration(t *testing.T) {
	s := New()
	if err := s.Arm(&Timer{}, 5, false); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestOneShotFiresExactlyOnce(t *testing.T) {
	s := New()
	var tm Timer
	fired := 0
	var atTick uint64
	if err := s.Register(&tm, func(*Timer, any) {
		fired++
		atTick = s.Now()
	}, nil); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := s.Arm(&tm, 100, false); err != nil {
		t.Fatalf("arm failed: %v", err)
	}
	advance(t, s, 99)
	if fired != 0 {
		t.Fatalf("fired early: %d callbacks before deadline", fired)
	}
	advance(t, s, 1)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if atTick != 100 {
		t.Errorf("fired at tick %d, want 100", atTick)
	}
	if tm.Armed() {
		t.Error("one-shot still armed after firing")
	}
	advance(t, s, 100)
	if fired != 1 {
		t.Errorf("one-shot fired again, total %d", fired)
	}
}

func TestArmIsRelativeToCurrentTick(t *testing.T) {
	s := New()
	advance(t, s, 5)
	var tm Timer
	var atTick uint64
	s.Register(&tm, func(*Timer, any) { atTick = s.Now() }, nil)
	if err := s.Arm(&tm, 10, false); err != nil {
		t.Fatalf("arm failed: %v", err)
	}
	advance(t, s, 10)
	if atTick != 15 {
		t.Errorf("fired at tick %d, want 15 (armed at 5 for 10)", atTick)
	}
}

func TestPeriodicFiresEveryPeriod(t *testing.T) {
	s := New()
	var tm Timer
	var fires []uint64
	s.Register(&tm, func(*Timer, any) { fires = append(fires, s.Now()) }, nil)
	if err := s.Arm(&tm, 10, true); err != nil {
		t.Fatalf("arm failed: %v", err)
	}
	advance(t, s, 50)
	if len(fires) != 5 {
		t.Fatalf("fired %d times over 50 ticks with period 10, want 5", len(fires))
	}
	for i, at := range fires {
		want := uint64((i + 1) * 10)
		if at != want {
			t.Errorf("firing %d at tick %d, want %d", i, at, want)
		}
	}
	if !tm.Armed() {
		t.Error("periodic timer disarmed itself")
	}
}

func TestDisarmPreventsFiring(t *testing.T) {
	s := New()
	var tm Timer
	fired := 0
	s.Register(&tm, func(*Timer, any) { fired++ }, nil)
	s.Arm(&tm, 10, false)
	advance(t, s, 5)
	if err := s.Disarm(&tm); err != nil {
		t.Fatalf("disarm failed: %v", err)
	}
	if tm.Armed() {
		t.Error("timer still armed after disarm")
	}
	advance(t, s, 20)
	if fired != 0 {
		t.Errorf("disarmed timer fired %d times", fired)
	}
	// Disarming a timer that already fired (or was never armed) is a no-op.
	if err := s.Disarm(&tm); err != nil {
		t.Errorf("disarm of unarmed timer: %v", err)
	}
}

func TestMembershipMatchesArmState(t *testing.T) {
	s := New()
	var a, b Timer
	s.Register(&a, func(*Timer, any) {}, nil)
	s.Register(&b, func(*Timer, any) {}, nil)
	if s.Armed() != 0 {
		t.Fatalf("armed = %d, want 0", s.Armed())
	}
	s.Arm(&a, 5, false)
	s.Arm(&b, 7, true)
	if s.Armed() != 2 {
		t.Fatalf("armed = %d, want 2", s.Armed())
	}
	s.Disarm(&a)
	if s.Armed() != 1 || a.Armed() || !b.Armed() {
		t.Errorf("armed = %d (a=%v b=%v), want 1 (false true)", s.Armed(), a.Armed(), b.Armed())
	}
}

func TestRestartKeepsSingleMembership(t *testing.T) {
	s := New()
	var tm Timer
	fired := 0
	s.Register(&tm, func(*Timer, any) { fired++ }, nil)
	s.Arm(&tm, 10, false)
	// Re-arm without disarming: start-or-restart, never duplicate membership.
	if err := s.Arm(&tm, 20, false); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if s.Armed() != 1 {
		t.Fatalf("armed = %d after restart, want 1", s.Armed())
	}
	advance(t, s, 15)
	if fired != 0 {
		t.Error("restarted timer fired on the superseded deadline")
	}
	advance(t, s, 5)
	if fired != 1 {
		t.Errorf("fired = %d at restarted deadline, want 1", fired)
	}
}

func TestSetPeriodAppliesOnNextRearm(t *testing.T) {
	s := New()
	var tm Timer
	var fires []uint64
	s.Register(&tm, func(*Timer, any) { fires = append(fires, s.Now()) }, nil)
	s.Arm(&tm, 10, true)
	if err := s.SetPeriod(&tm, 3); err != nil {
		t.Fatalf("set period failed: %v", err)
	}
	advance(t, s, 16)
	// Current deadline (tick 10) is untouched; the new period applies after.
	want := []uint64{10, 13, 16}
	if len(fires) != len(want) {
		t.Fatalf("fires = %v, want %v", fires, want)
	}
	for i := range want {
		if fires[i] != want[i] {
			t.Fatalf("fires = %v, want %v", fires, want)
		}
	}
}

// The reference scenario: A one-shot at 100 ticks, B periodic every 50,
// driven 200 ticks one at a time.
func TestOneShotAndPeriodicScenario(t *testing.T) {
	s := New()
	var a, b Timer
	aFires := 0
	var bFires []uint64
	s.Register(&a, func(*Timer, any) { aFires++ }, nil)
	s.Register(&b, func(*Timer, any) { bFires = append(bFires, s.Now()) }, nil)
	s.Arm(&a, 100, false)
	s.Arm(&b, 50, true)
	advance(t, s, 200)
	if aFires != 1 {
		t.Errorf("A fired %d times, want 1", aFires)
	}
	if len(bFires) != 4 {
		t.Fatalf("B fired %d times (%v), want 4", len(bFires), bFires)
	}
	for i, want := range []uint64{50, 100, 150, 200} {
		if bFires[i] != want {
			t.Errorf("B firing %d at tick %d, want %d", i, bFires[i], want)
		}
	}
	if s.Now() != 200 {
		t.Errorf("tick counter = %d, want 200", s.Now())
	}
}

func TestMultipleDueSameTick(t *testing.T) {
	s := New()
	var timers [4]Timer
	fired := 0
	for i := range timers {
		s.Register(&timers[i], func(*Timer, any) { fired++ }, nil)
		s.Arm(&timers[i], 3, false)
	}
	advance(t, s, 3)
	if fired != len(timers) {
		t.Errorf("fired = %d within one tick, want %d", fired, len(timers))
	}
	if s.Armed() != 0 {
		t.Errorf("armed = %d after drain, want 0", s.Armed())
	}
}

func TestReentrantAdvanceRejected(t *testing.T) {
	s := New()
	var tm Timer
	var inner error
	s.Register(&tm, func(*Timer, any) { inner = s.AdvanceTick() }, nil)
	s.Arm(&tm, 1, false)
	if err := s.AdvanceTick(); err != nil {
		t.Fatalf("outer AdvanceTick failed: %v", err)
	}
	if !errors.Is(inner, api.ErrReentrantTick) {
		t.Errorf("re-entrant AdvanceTick: expected ErrReentrantTick, got %v", inner)
	}
}

func TestCallbackMayRearmAndDisarm(t *testing.T) {
	s := New()
	var tm, other Timer
	otherFired := 0
	rearmed := false
	s.Register(&other, func(*Timer, any) { otherFired++ }, nil)
	s.Register(&tm, func(self *Timer, _ any) {
		// On the first firing, re-arm self as one-shot and cancel the
		// sibling from inside the callback.
		if !rearmed {
			rearmed = true
			s.Arm(self, 5, false)
			s.Disarm(&other)
		}
	}, nil)
	s.Arm(&other, 100, false)
	s.Arm(&tm, 2, true)
	advance(t, s, 2)
	if !tm.Armed() {
		t.Fatal("callback re-arm did not stick")
	}
	if tm.Period() != 0 {
		t.Error("callback re-arm left periodic interval in place")
	}
	advance(t, s, 5)
	if tm.Armed() {
		t.Error("callback-armed one-shot still armed after firing")
	}
	advance(t, s, 200)
	if otherFired != 0 {
		t.Errorf("disarmed sibling fired %d times", otherFired)
	}
}

func TestCallbackSelfDisarmStopsPeriodic(t *testing.T) {
	s := New()
	var tm Timer
	fired := 0
	s.Register(&tm, func(self *Timer, _ any) {
		fired++
		s.Disarm(self)
	}, nil)
	s.Arm(&tm, 2, true)
	advance(t, s, 10)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if tm.Armed() {
		t.Error("timer still armed after callback Disarm")
	}
	if s.Armed() != 0 {
		t.Errorf("queue holds %d timers, want 0", s.Armed())
	}
}

func TestCallbackSelfArmThenDisarm(t *testing.T) {
	s := New()
	var tm Timer
	fired := 0
	s.Register(&tm, func(self *Timer, _ any) {
		fired++
		// A restart followed by a cancel must net out to disarmed even
		// though the record briefly re-enters the queue.
		s.Arm(self, 3, true)
		s.Disarm(self)
	}, nil)
	s.Arm(&tm, 2, true)
	advance(t, s, 10)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if tm.Armed() {
		t.Error("timer still armed after callback Arm+Disarm")
	}
}

func TestCallbackSelfDisarmThenArmWins(t *testing.T) {
	s := New()
	var tm Timer
	fired := 0
	s.Register(&tm, func(self *Timer, _ any) {
		fired++
		if fired == 1 {
			s.Disarm(self)
			s.Arm(self, 4, false)
		}
	}, nil)
	s.Arm(&tm, 2, true)
	advance(t, s, 2)
	if !tm.Armed() {
		t.Fatal("final callback Arm did not stick")
	}
	if tm.Deadline() != 6 {
		t.Errorf("deadline = %d, want 6", tm.Deadline())
	}
	advance(t, s, 8)
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
	if tm.Armed() {
		t.Error("callback-armed one-shot still armed after firing")
	}
}

func TestContextDelivery(t *testing.T) {
	s := New()
	var tm Timer
	type payload struct{ n int }
	var got any
	s.Register(&tm, func(_ *Timer, ctx any) { got = ctx }, &payload{n: 42})
	s.Arm(&tm, 1, false)
	advance(t, s, 1)
	p, ok := got.(*payload)
	if !ok || p.n != 42 {
		t.Errorf("context = %#v, want the registered payload", got)
	}
}

func TestStatsCounters(t *testing.T) {
	s := New()
	var tm Timer
	s.Register(&tm, func(*Timer, any) {}, nil)
	s.Arm(&tm, 2, true)
	advance(t, s, 6)
	st := s.Stats()
	if st.Ticks != 6 {
		t.Errorf("ticks = %d, want 6", st.Ticks)
	}
	if st.Fired != 3 {
		t.Errorf("fired = %d, want 3", st.Fired)
	}
	if st.Rearmed != 3 {
		t.Errorf("rearmed = %d, want 3", st.Rearmed)
	}
}
