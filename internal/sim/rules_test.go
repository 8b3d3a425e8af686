package sim

import "testing"

func newRules() (*RulesEngine, *Puck) {
	zt := NewZoneTracker(RinkLength, BlueLineFraction)
	return NewRulesEngine(zt, RinkLength/2-GoalLineInset), NewPuck(Vec3{})
}

func TestIcingCalledWhenPuckCrossesFarLine(t *testing.T) {
	r, pk := newRules()
	var got []Violation
	r.OnViolation(func(v Violation) { got = append(got, v) })

	shooter := testPlayer(TeamHome, RoleDefense, 1)

	// Touch in the home defensive zone arms icing.
	pk.Pos = Vec3{X: -15, Z: 3}
	r.RegisterTouch(shooter, pk.Pos)
	if !r.IcingPending() {
		t.Fatal("defensive-zone touch did not arm icing")
	}

	// Puck reaches the far goal line untouched.
	pk.Pos = Vec3{X: 26.5}
	r.Update(pk, nil)

	if len(got) != 1 || got[0].Type != ViolationIcing || got[0].Team != TeamHome {
		t.Fatalf("violations = %+v, want one home icing", got)
	}
	// Faceoff returns to the offender's zone, on the side play was on.
	if got[0].Spot.X != -20 || got[0].Spot.Z != FaceoffDotHalfSpacing {
		t.Fatalf("icing spot = %+v, want {-20, 7}", got[0].Spot)
	}
	if r.IcingPending() {
		t.Fatal("icing still pending after the call")
	}
}

func TestIcingNegatedByAnyTouch(t *testing.T) {
	r, pk := newRules()
	called := 0
	r.OnViolation(func(Violation) { called++ })

	shooter := testPlayer(TeamHome, RoleDefense, 1)
	pk.Pos = Vec3{X: -15}
	r.RegisterTouch(shooter, pk.Pos)

	// An opponent touches in the neutral zone before the line.
	defender := testPlayer(TeamAway, RoleCenter, 2)
	pk.Pos = Vec3{X: 5}
	r.RegisterTouch(defender, pk.Pos)
	if r.IcingPending() {
		t.Fatal("touch did not negate pending icing")
	}

	pk.Pos = Vec3{X: 26.5}
	r.Update(pk, nil)
	if called != 0 {
		t.Fatalf("icing called after negation, calls = %d", called)
	}
}

func TestIcingRearmedByDefensiveTouch(t *testing.T) {
	r, pk := newRules()

	home := testPlayer(TeamHome, RoleDefense, 1)
	pk.Pos = Vec3{X: -15}
	r.RegisterTouch(home, pk.Pos)

	// The away team touches it inside their own zone: home's icing clears
	// and away's arms in the same touch.
	away := testPlayer(TeamAway, RoleDefense, 2)
	pk.Pos = Vec3{X: 15}
	r.RegisterTouch(away, pk.Pos)

	if !r.IcingPending() {
		t.Fatal("defensive touch did not re-arm icing for the new team")
	}

	var got []Violation
	r.OnViolation(func(v Violation) { got = append(got, v) })
	pk.Pos = Vec3{X: -26.5}
	r.Update(pk, nil)
	if len(got) != 1 || got[0].Team != TeamAway {
		t.Fatalf("violations = %+v, want one away icing", got)
	}
}

func TestIcingWaivedWhileShorthanded(t *testing.T) {
	r, pk := newRules()
	called := 0
	r.OnViolation(func(Violation) { called++ })
	r.SetShorthandedCheck(func(team Team) bool { return team == TeamHome })

	shooter := testPlayer(TeamHome, RoleDefense, 1)
	pk.Pos = Vec3{X: -15}
	r.RegisterTouch(shooter, pk.Pos)

	pk.Pos = Vec3{X: 26.5}
	r.Update(pk, nil)
	if called != 0 {
		t.Fatal("shorthanded team was called for icing")
	}
}

func TestOffsidesFiresOnceOnEntry(t *testing.T) {
	r, pk := newRules()
	var got []Violation
	r.OnViolation(func(v Violation) { got = append(got, v) })

	winger := testPlayer(TeamHome, RoleWing, 1)
	winger.Pos = Vec3{X: 12} // home's offensive zone
	pk.Pos = Vec3{X: 0}      // puck still neutral

	players := []*Player{winger}
	r.Update(pk, players)
	r.Update(pk, players) // same occupancy must not re-fire
	r.Update(pk, players)

	if len(got) != 1 || got[0].Type != ViolationOffsides || got[0].Team != TeamHome {
		t.Fatalf("violations = %+v, want exactly one home offsides", got)
	}

	// Leaving and re-entering before a reset stays latched.
	winger.Pos = Vec3{X: 0}
	r.Update(pk, players)
	winger.Pos = Vec3{X: 12}
	r.Update(pk, players)
	if len(got) != 1 {
		t.Fatalf("offsides re-fired before reset, violations = %d", len(got))
	}

	// After the faceoff reset a fresh entry fires again.
	r.Reset()
	winger.Pos = Vec3{X: 0}
	r.Update(pk, players)
	winger.Pos = Vec3{X: 12}
	r.Update(pk, players)
	if len(got) != 2 {
		t.Fatalf("offsides did not fire after reset, violations = %d", len(got))
	}
}

func TestOffsidesFaceoffHeldOutsideZoneEntered(t *testing.T) {
	r, pk := newRules()
	var got []Violation
	r.OnViolation(func(v Violation) { got = append(got, v) })

	winger := testPlayer(TeamHome, RoleWing, 1)
	winger.Pos = Vec3{X: 12}
	pk.Pos = Vec3{X: 0}
	r.Update(pk, []*Player{winger})

	if len(got) != 1 {
		t.Fatalf("violations = %d, want 1", len(got))
	}
	// The draw moves to the neutral dot outside the away zone, not back
	// to the offender's own blue line.
	zt := NewZoneTracker(RinkLength, BlueLineFraction)
	if want := zt.AwayBlueLine() - FaceoffDotNeutralX; got[0].Spot.X != want {
		t.Fatalf("offsides spot X = %v, want %v", got[0].Spot.X, want)
	}

	// Mirrored for an away entry into the home zone.
	r.Reset()
	away := testPlayer(TeamAway, RoleWing, 2)
	away.Pos = Vec3{X: -12}
	r.Update(pk, []*Player{away})
	if len(got) != 2 {
		t.Fatalf("violations = %d, want 2", len(got))
	}
	if want := zt.HomeBlueLine() + FaceoffDotNeutralX; got[1].Spot.X != want {
		t.Fatalf("away offsides spot X = %v, want %v", got[1].Spot.X, want)
	}
}

func TestNoOffsidesWhenPuckLeadsTheRush(t *testing.T) {
	r, pk := newRules()
	called := 0
	r.OnViolation(func(Violation) { called++ })

	winger := testPlayer(TeamHome, RoleWing, 1)
	winger.Pos = Vec3{X: 12}
	pk.Pos = Vec3{X: 14} // puck already in the zone

	r.Update(pk, []*Player{winger})
	if called != 0 {
		t.Fatal("offsides called on a legal entry")
	}
}

func TestGoaliesExemptFromOffsides(t *testing.T) {
	r, pk := newRules()
	called := 0
	r.OnViolation(func(Violation) { called++ })

	goalie := testPlayer(TeamHome, RoleGoalie, 1)
	goalie.Pos = Vec3{X: 12}
	pk.Pos = Vec3{X: 0}

	r.Update(pk, []*Player{goalie})
	if called != 0 {
		t.Fatal("goalie triggered offsides")
	}
}
