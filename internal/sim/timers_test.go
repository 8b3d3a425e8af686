package sim

import "testing"

func TestTimerFiresOnce(t *testing.T) {
	q := NewTimerQueue()
	fired := 0
	q.After(1.0, func() { fired++ })

	q.Advance(0.5)
	if fired != 0 {
		t.Fatalf("timer fired early")
	}
	q.Advance(0.5)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	q.Advance(5)
	if fired != 1 {
		t.Fatalf("timer fired again, fired = %d", fired)
	}
}

func TestTimerCancel(t *testing.T) {
	q := NewTimerQueue()
	fired := false
	h := q.After(1.0, func() { fired = true })

	if !q.Cancel(h) {
		t.Fatal("Cancel returned false for pending timer")
	}
	if q.Cancel(h) {
		t.Fatal("Cancel returned true for already-cancelled timer")
	}
	q.Advance(2)
	if fired {
		t.Fatal("cancelled timer fired")
	}
}

func TestTimerZeroAdvanceFreezes(t *testing.T) {
	q := NewTimerQueue()
	fired := false
	h := q.After(0.1, func() { fired = true })

	// A paused simulation advances with dt 0; nothing may fire.
	for i := 0; i < 100; i++ {
		q.Advance(0)
	}
	if fired {
		t.Fatal("timer fired while frozen")
	}
	if got, ok := q.Remaining(h); !ok || got != 0.1 {
		t.Fatalf("Remaining = %v, %v; want 0.1, true", got, ok)
	}
}

func TestTimerScheduledDuringAdvance(t *testing.T) {
	q := NewTimerQueue()
	order := []string{}
	q.After(1.0, func() {
		order = append(order, "outer")
		q.After(0.5, func() { order = append(order, "inner") })
	})

	q.Advance(1.0)
	if len(order) != 1 || order[0] != "outer" {
		t.Fatalf("order after first advance = %v", order)
	}
	// Timers scheduled during Advance start counting on the next call.
	q.Advance(0.5)
	if len(order) != 2 || order[1] != "inner" {
		t.Fatalf("order = %v, want [outer inner]", order)
	}
}
