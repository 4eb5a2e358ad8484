package timer

import "time"

type entry struct {
	at time.Time
	fn func()
}

// Scheduler runs one-shot callbacks from the game loop. Nothing fires on
// its own: the host calls Tick once per frame, so callbacks run on the same
// goroutine as every other state mutation.
type Scheduler struct {
	now func() time.Time
	q   []entry
}

func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// SetNowFunc replaces the clock. Tests use it to advance time by hand.
func (s *Scheduler) SetNowFunc(f func() time.Time) {
	s.now = f
}

// After schedules fn to run on the first Tick at least d from now. There is
// no cancellation; callbacks check whether they are still relevant.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.q = append(s.q, entry{at: s.now().Add(d), fn: fn})
}

// Tick runs every due callback in the order they were scheduled. Callbacks
// scheduled during Tick wait for the next one.
func (s *Scheduler) Tick() {
	if len(s.q) == 0 {
		return
	}
	now := s.now()
	due := s.q[:0:0]
	keep := s.q[:0]
	for _, e := range s.q {
		if now.Before(e.at) {
			keep = append(keep, e)
			continue
		}
		due = append(due, e)
	}
	s.q = keep
	for _, e := range due {
		e.fn()
	}
}

// Pending reports how many callbacks are waiting.
func (s *Scheduler) Pending() int { return len(s.q) }

// Reset drops every pending callback.
func (s *Scheduler) Reset() { s.q = nil }
