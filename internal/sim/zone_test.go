package sim

import "testing"

func TestZoneBoundaries(t *testing.T) {
	zt := NewZoneTracker(RinkLength, BlueLineFraction)

	if got := zt.HomeBlueLine(); got != -10 {
		t.Fatalf("home blue line = %v, want -10", got)
	}
	if got := zt.AwayBlueLine(); got != 10 {
		t.Fatalf("away blue line = %v, want 10", got)
	}

	cases := []struct {
		x    float64
		want Zone
	}{
		{-30, ZoneHomeDefensive},
		{-10.001, ZoneHomeDefensive},
		{-10, ZoneNeutral}, // exactly on the line is neutral
		{0, ZoneNeutral},
		{10, ZoneNeutral}, // both lines pin to neutral
		{10.001, ZoneAwayDefensive},
		{30, ZoneAwayDefensive},
	}
	for _, c := range cases {
		if got := zt.ZoneAt(c.x); got != c.want {
			t.Errorf("ZoneAt(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestZonePartitionIsTotal(t *testing.T) {
	zt := NewZoneTracker(RinkLength, BlueLineFraction)

	// Sweeping the rink must classify every point into exactly one zone with
	// no gaps at the lines.
	for x := -30.0; x <= 30.0; x += 0.25 {
		z := zt.ZoneAt(x)
		if z != ZoneNeutral && z != ZoneHomeDefensive && z != ZoneAwayDefensive {
			t.Fatalf("ZoneAt(%v) returned invalid zone %d", x, z)
		}
	}
}

func TestDefensiveAndOffensiveZones(t *testing.T) {
	zt := NewZoneTracker(RinkLength, BlueLineFraction)

	if zt.DefensiveZone(TeamHome) != ZoneHomeDefensive {
		t.Error("home defends the home zone")
	}
	if zt.OffensiveZone(TeamHome) != ZoneAwayDefensive {
		t.Error("home attacks the away zone")
	}
	if zt.DefensiveZone(TeamAway) != ZoneAwayDefensive {
		t.Error("away defends the away zone")
	}
	if zt.OffensiveZone(TeamAway) != ZoneHomeDefensive {
		t.Error("away attacks the home zone")
	}
}
