package sim

import "testing"

func TestPenaltyServesAndExpires(t *testing.T) {
	b := NewPenaltyBox()
	released := 0
	b.OnExpire(func(*PenaltyRecord) { released++ })

	p := testPlayer(TeamHome, RoleDefense, 1)
	p.OnIce = true

	rec := b.Add(p, "tripping", PenaltyMinor)
	if p.OnIce {
		t.Fatal("player still on the ice while boxed")
	}
	if rec.Duration != MinorPenaltyDuration {
		t.Fatalf("duration = %v, want %v", rec.Duration, MinorPenaltyDuration)
	}
	if p.PenaltyMin != 2 {
		t.Fatalf("PenaltyMin = %d, want 2", p.PenaltyMin)
	}
	if !b.Shorthanded(TeamHome) {
		t.Fatal("team not shorthanded with a man in the box")
	}

	b.Tick(MinorPenaltyDuration - 1)
	if p.OnIce || released != 0 {
		t.Fatal("penalty ended early")
	}
	b.Tick(2)
	if !p.OnIce {
		t.Fatal("player not released at expiry")
	}
	if released != 1 {
		t.Fatalf("expire callbacks = %d, want 1", released)
	}
	if b.Shorthanded(TeamHome) {
		t.Fatal("team still shorthanded after release")
	}
}

func TestPowerPlayGoalEndsEarliestMinor(t *testing.T) {
	b := NewPenaltyBox()

	first := testPlayer(TeamHome, RoleDefense, 1)
	second := testPlayer(TeamHome, RoleWing, 2)
	b.Add(first, "tripping", PenaltyMinor)
	b.Tick(30) // first has 90s left
	b.Add(second, "hooking", PenaltyMinor)

	// Away scores: only the earliest-expiring minor ends.
	out := b.OnGoal(TeamAway)
	if out == nil || out.Player != first {
		t.Fatalf("released %+v, want the earliest-expiring record", out)
	}
	if !first.OnIce {
		t.Fatal("released player not back on the ice")
	}
	if second.OnIce {
		t.Fatal("second penalty cancelled too")
	}
	if !b.Shorthanded(TeamHome) {
		t.Fatal("team should still be shorthanded")
	}
}

func TestMajorsServedInFull(t *testing.T) {
	b := NewPenaltyBox()
	p := testPlayer(TeamHome, RoleDefense, 1)
	b.Add(p, "boarding", PenaltyMajor)

	if out := b.OnGoal(TeamAway); out != nil {
		t.Fatal("goal cancelled a major penalty")
	}
	if p.OnIce {
		t.Fatal("major released early")
	}
}

func TestShorthandedGoalDoesNotEndOwnPenalty(t *testing.T) {
	b := NewPenaltyBox()
	p := testPlayer(TeamAway, RoleDefense, 1)
	b.Add(p, "tripping", PenaltyMinor)

	// The shorthanded team scores: only penalties against the team scored
	// on could end, and there are none.
	if out := b.OnGoal(TeamAway); out != nil {
		t.Fatalf("shorthanded goal released %v", out.Player.ID)
	}
	if p.OnIce {
		t.Fatal("penalty ended by the serving team's own goal")
	}
}
