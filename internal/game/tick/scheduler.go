// Package tick implements the game's single authoritative clock: a
// fixed-rate heartbeat with a registry of named subscribers. All time-based
// behavior (player cadence, spy patrols, UI refresh, timed screens) hangs
// off this one scheduler so nothing drifts against anything else.
//
// The scheduler itself is pure: it never touches wall-clock time. The
// platform layer calls Advance once per heartbeat (one Bubble Tea TickMsg),
// which keeps every consumer deterministic and testable.
package tick

import "strings"

// Callback is a subscriber function. It receives the current tick and
// returns false to remove itself from the registry.
type Callback func(tick uint64) bool

// subscription is one registry entry. One-shots are stored explicitly
// (with their delay) rather than as wrapper closures, so they can be
// cancelled and re-armed like any other subscription.
type subscription struct {
	id       string
	fn       Callback
	interval uint64 // recurring: fire every interval ticks
	oneShot  bool
	delay    uint64 // one-shot: fire delay ticks after arming
	due      uint64 // one-shot: absolute tick to fire at
	last     uint64 // recurring: tick of last firing
	removed  bool
}

// Scheduler dispatches tick callbacks at per-subscriber cadences.
// It is not safe for concurrent use; everything runs on the platform's
// single cooperative event loop.
type Scheduler struct {
	running bool
	current uint64
	subs    []*subscription
	byID    map[string]*subscription
}

// NewScheduler creates a stopped scheduler at tick zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[string]*subscription),
	}
}

// Start begins dispatching. Every subscriber's schedule is reset so it
// fires within its configured interval of the new start instead of
// carrying stale skew from before a Stop. Idempotent.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	for _, sub := range s.subs {
		if sub.oneShot {
			sub.due = s.current + sub.delay
		} else {
			sub.last = s.current
		}
	}
}

// Stop halts dispatching. Subscriptions persist but Advance becomes a
// no-op until the next Start.
func (s *Scheduler) Stop() {
	s.running = false
}

// Running reports whether the heartbeat is being dispatched.
func (s *Scheduler) Running() bool {
	return s.running
}

// Current returns the tick counter. The counter is monotonic for the
// scheduler's lifetime: Stop/Start re-anchor subscriber schedules but
// never rewind the count, so tick values recorded by consumers stay
// comparable across a pause.
func (s *Scheduler) Current() uint64 {
	return s.current
}

// Subscribe registers fn to fire every interval ticks, keyed by id.
// Re-subscribing an existing id replaces the callback in place (same fire
// slot, fresh schedule) so a logical subscriber can be swapped without
// duplicate firing. An interval below 1 is clamped to 1.
func (s *Scheduler) Subscribe(id string, interval uint64, fn Callback) {
	if interval < 1 {
		interval = 1
	}
	if existing, ok := s.byID[id]; ok && !existing.removed {
		existing.fn = fn
		existing.interval = interval
		existing.oneShot = false
		existing.last = s.current
		return
	}
	sub := &subscription{
		id:       id,
		fn:       fn,
		interval: interval,
		last:     s.current,
	}
	s.subs = append(s.subs, sub)
	s.byID[id] = sub
}

// After registers a one-shot that fires once when the current tick reaches
// delay ticks from now, then removes itself. Cancelled like any other
// subscription, by id or prefix.
func (s *Scheduler) After(id string, delay uint64, fn func(tick uint64)) {
	s.Unsubscribe(id)
	sub := &subscription{
		id:      id,
		oneShot: true,
		delay:   delay,
		due:     s.current + delay,
		fn: func(tick uint64) bool {
			fn(tick)
			return false
		},
	}
	s.subs = append(s.subs, sub)
	s.byID[id] = sub
}

// Unsubscribe removes the subscription with the given id, if any.
// Takes effect immediately for future ticks.
func (s *Scheduler) Unsubscribe(id string) {
	if sub, ok := s.byID[id]; ok {
		sub.removed = true
		delete(s.byID, id)
	}
}

// UnsubscribeByPrefix removes every subscription whose id begins with the
// literal prefix. Used for blanket subsystem teardown on screen exit
// (e.g. all "gameplay:" subscriptions).
func (s *Scheduler) UnsubscribeByPrefix(prefix string) {
	for id, sub := range s.byID {
		if strings.HasPrefix(id, prefix) {
			sub.removed = true
			delete(s.byID, id)
		}
	}
}

// Has reports whether a live subscription with the given id exists.
func (s *Scheduler) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Advance processes one heartbeat: increments the tick and fires every due
// subscriber in registration order. Removals (explicit, returned-false, or
// fired one-shots) are applied after the full pass; removing mid-iteration
// is unsafe. Subscribers added during the pass first become eligible on the
// next tick. No-op while stopped.
func (s *Scheduler) Advance() {
	if !s.running {
		return
	}
	s.current++

	// Snapshot the length: entries appended by callbacks are not visited
	// this pass.
	n := len(s.subs)
	for i := 0; i < n; i++ {
		sub := s.subs[i]
		if sub.removed {
			continue
		}
		if sub.oneShot {
			if s.current >= sub.due {
				sub.removed = true
				delete(s.byID, sub.id)
				sub.fn(s.current)
			}
			continue
		}
		if s.current-sub.last >= sub.interval {
			sub.last = s.current
			if !sub.fn(s.current) {
				sub.removed = true
				delete(s.byID, sub.id)
			}
		}
	}

	s.compact()
}

// compact drops removed entries, preserving registration order.
func (s *Scheduler) compact() {
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if !sub.removed {
			kept = append(kept, sub)
		}
	}
	// Zero the tail so removed subscriptions can be collected.
	for i := len(kept); i < len(s.subs); i++ {
		s.subs[i] = nil
	}
	s.subs = kept
}
