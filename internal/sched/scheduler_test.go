package sched

import (
	"reflect"
	"testing"
	"time"
)

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	count := 0
	s.After(450*time.Millisecond, func() { count++ })

	s.Advance(449 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired early: count = %d", count)
	}

	s.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d, expected 1", count)
	}

	s.Advance(10 * time.Second)
	if count != 1 {
		t.Errorf("one-shot fired again: count = %d", count)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestEveryFiresInOrderWithoutOverlap(t *testing.T) {
	s := New()
	var got []time.Duration
	s.Every(time.Second, func() { got = append(got, s.Now()) })

	// One big jump must still deliver every tick at its own time.
	s.Advance(3500 * time.Millisecond)

	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ticks = %v, expected %v", got, want)
	}
	if s.Now() != 3500*time.Millisecond {
		t.Errorf("Now() = %v, expected 3.5s", s.Now())
	}
}

func TestSameDueTimeUsesIssueOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(time.Second, func() { order = append(order, "a") })
	s.After(time.Second, func() { order = append(order, "b") })
	s.Every(time.Second, func() { order = append(order, "tick") })

	s.Advance(time.Second)

	want := []string{"a", "b", "tick"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, expected %v", order, want)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	h := s.After(time.Second, func() { fired = true })

	if !s.Active(h) {
		t.Fatal("timer should be active")
	}
	s.Cancel(h)
	s.Cancel(h) // idempotent
	s.Cancel(0) // zero handle is ignored

	s.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestIntervalCanCancelItself(t *testing.T) {
	s := New()
	count := 0
	var h Handle
	h = s.Every(100*time.Millisecond, func() {
		count++
		if count == 3 {
			s.Cancel(h)
		}
	})

	s.Advance(time.Second)
	if count != 3 {
		t.Errorf("count = %d, expected 3", count)
	}
}

func TestChainedDelaysFireWithinWindow(t *testing.T) {
	s := New()
	var steps []time.Duration
	var step func()
	step = func() {
		steps = append(steps, s.Now())
		if len(steps) < 3 {
			s.After(450*time.Millisecond, step)
		}
	}
	s.After(0, step)

	s.Advance(time.Second)

	want := []time.Duration{0, 450 * time.Millisecond, 900 * time.Millisecond}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("steps = %v, expected %v", steps, want)
	}
}

func TestStopCancelsEverything(t *testing.T) {
	s := New()
	fired := 0
	s.After(time.Second, func() { fired++ })
	s.Every(time.Second, func() { fired++ })

	s.Stop()
	if h := s.After(time.Millisecond, func() { fired++ }); h != 0 {
		t.Errorf("After on stopped scheduler returned handle %d", h)
	}

	s.Advance(5 * time.Second)
	if fired != 0 {
		t.Errorf("fired = %d after Stop, expected 0", fired)
	}
	if !s.Stopped() || s.Pending() != 0 {
		t.Error("scheduler should be stopped and empty")
	}
}

func TestStopInsideCallbackHaltsAdvance(t *testing.T) {
	s := New()
	fired := 0
	s.After(time.Second, func() {
		fired++
		s.Stop()
	})
	s.After(time.Second, func() { fired++ })

	s.Advance(2 * time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, expected 1", fired)
	}
}

func TestZeroIntervalIsClamped(t *testing.T) {
	s := New()
	count := 0
	s.Every(0, func() { count++ })

	s.Advance(5 * time.Millisecond)
	if count != 5 {
		t.Errorf("count = %d, expected 5", count)
	}
}
