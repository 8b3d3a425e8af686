package sim

import "testing"

func TestTimeScaleDefaultsToNormal(t *testing.T) {
	ta := NewTimeAuthority()
	if got := ta.Scale(); got != 1.0 {
		t.Fatalf("Scale() = %v, want 1.0", got)
	}
	if ta.Active() != "" {
		t.Fatalf("Active() = %q, want empty", ta.Active())
	}
}

func TestTimeScalePriorityWins(t *testing.T) {
	ta := NewTimeAuthority()

	slow := ta.Request("goal_celebration", 0.3, PrioritySlowMotion)
	if got := ta.Scale(); got != 0.3 {
		t.Fatalf("after slow motion Scale() = %v, want 0.3", got)
	}

	pause := ta.Request("pause", 0, PriorityPause)
	if got := ta.Scale(); got != 0 {
		t.Fatalf("pause should override slow motion, Scale() = %v", got)
	}
	if ta.Active() != "pause" {
		t.Fatalf("Active() = %q, want pause", ta.Active())
	}

	// Releasing the pause restores the next highest request.
	ta.Release(pause)
	if got := ta.Scale(); got != 0.3 {
		t.Fatalf("after releasing pause Scale() = %v, want 0.3", got)
	}

	ta.Release(slow)
	if got := ta.Scale(); got != 1.0 {
		t.Fatalf("after releasing all Scale() = %v, want 1.0", got)
	}
}

func TestTimeScaleTieGoesToMostRecent(t *testing.T) {
	ta := NewTimeAuthority()

	ta.Request("first", 0.5, PrioritySlowMotion)
	ta.Request("second", 0.25, PrioritySlowMotion)

	if got := ta.Scale(); got != 0.25 {
		t.Fatalf("equal priority should favor the most recent request, Scale() = %v", got)
	}
	if ta.Active() != "second" {
		t.Fatalf("Active() = %q, want second", ta.Active())
	}
}

func TestTimeScaleReleaseIsIdempotent(t *testing.T) {
	ta := NewTimeAuthority()

	h := ta.Request("freeze", 0, PriorityFreeze)
	other := ta.Request("slow", 0.3, PrioritySlowMotion)

	ta.Release(h)
	ta.Release(h) // double release must not disturb remaining requests

	if got := ta.Scale(); got != 0.3 {
		t.Fatalf("Scale() = %v, want 0.3", got)
	}
	ta.Release(other)
	if got := ta.Scale(); got != 1.0 {
		t.Fatalf("Scale() = %v, want 1.0", got)
	}
}
