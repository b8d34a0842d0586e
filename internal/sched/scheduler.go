// Package sched provides a single-threaded virtual-time scheduler.
//
// Game engines never start goroutines or wall-clock timers. Instead they
// register delays and intervals on a Scheduler, and the platform's fixed
// tick loop advances virtual time. Callbacks therefore run on the UI
// goroutine, in a deterministic order, and can be cancelled synchronously.
package sched

import "time"

// Handle identifies a scheduled timer. The zero Handle is never issued, so
// it can be used as "no timer".
type Handle uint64

// minInterval keeps a zero or negative interval from spinning forever.
const minInterval = time.Millisecond

type timer struct {
	due      time.Duration
	seq      uint64
	interval time.Duration // zero for one-shot delays
	fn       func()
}

// Scheduler fires callbacks at virtual times.
// It is not safe for concurrent use; all calls must come from one goroutine.
type Scheduler struct {
	now     time.Duration
	nextID  Handle
	nextSeq uint64
	timers  map[Handle]*timer
	stopped bool
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{timers: make(map[Handle]*timer)}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current virtual time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.add(max(d, 0), 0, fn)
}

// Every runs fn every d, first at now+d.
func (s *Scheduler) Every(d time.Duration, fn func()) Handle {
	d = max(d, minInterval)
	return s.add(d, d, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) Handle {
	if s.stopped || fn == nil {
		return 0
	}
	s.nextID++
	s.nextSeq++
	s.timers[s.nextID] = &timer{
		due:      s.now + delay,
		seq:      s.nextSeq,
		interval: interval,
		fn:       fn,
	}
	return s.nextID
}

// Cancel stops a timer. Cancelling an unknown, fired or zero handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	delete(s.timers, h)
}

// Active reports whether the handle still refers to a pending timer.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Pending returns the number of pending timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Stop cancels every pending timer and rejects later scheduling.
func (s *Scheduler) Stop() {
	s.stopped = true
	clear(s.timers)
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Advance moves virtual time forward by d, firing every timer that falls due
// on the way. Timers fire in (due time, issue order). A callback may schedule
// or cancel timers, including itself; new timers due within the window fire
// in the same Advance.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for !s.stopped {
		h, t := s.earliest(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
			s.nextSeq++
			t.seq = s.nextSeq
		} else {
			delete(s.timers, h)
		}
		t.fn()
	}

	if target > s.now {
		s.now = target
	}
}

func (s *Scheduler) earliest(limit time.Duration) (Handle, *timer) {
	var (
		bestH Handle
		best  *timer
	)
	for h, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			bestH, best = h, t
		}
	}
	return bestH, best
}
