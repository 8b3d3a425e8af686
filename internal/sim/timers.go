package sim

// TimerHandle identifies a scheduled callback so it can be cancelled.
type TimerHandle uint64

type scheduled struct {
	handle    TimerHandle
	remaining float64
	fn        func()
}

// TimerQueue schedules callbacks against simulation time. It is advanced
// with scaled delta time, so a pause freezes every pending timer exactly.
// Unlike detached sleeps, pending work is inspectable and cancelable, which
// lets a state machine revoke callbacks belonging to a state it is leaving.
type TimerQueue struct {
	timers []scheduled
	nextID TimerHandle
}

// NewTimerQueue returns an empty queue.
func NewTimerQueue() *TimerQueue {
	return &TimerQueue{}
}

// After schedules fn to run once delay seconds of simulation time have
// elapsed.
func (q *TimerQueue) After(delay float64, fn func()) TimerHandle {
	q.nextID++
	q.timers = append(q.timers, scheduled{handle: q.nextID, remaining: delay, fn: fn})
	return q.nextID
}

// Cancel removes a pending timer. Returns false if it already fired or was
// cancelled.
func (q *TimerQueue) Cancel(h TimerHandle) bool {
	for i, t := range q.timers {
		if t.handle == h {
			q.timers = append(q.timers[:i], q.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves simulation time forward and fires due callbacks in
// scheduling order. Callbacks may schedule or cancel other timers; timers
// scheduled during Advance start counting from the next call.
func (q *TimerQueue) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	due := make([]func(), 0, 2)
	n := 0
	for i := range q.timers {
		q.timers[i].remaining -= dt
		if q.timers[i].remaining <= 0 {
			due = append(due, q.timers[i].fn)
			continue
		}
		q.timers[n] = q.timers[i]
		n++
	}
	q.timers = q.timers[:n]
	for _, fn := range due {
		fn()
	}
}

// Pending returns the number of scheduled timers.
func (q *TimerQueue) Pending() int {
	return len(q.timers)
}

// Remaining reports the time left on a pending timer.
func (q *TimerQueue) Remaining(h TimerHandle) (float64, bool) {
	for _, t := range q.timers {
		if t.handle == h {
			return t.remaining, true
		}
	}
	return 0, false
}
