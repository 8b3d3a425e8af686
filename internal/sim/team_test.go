package sim

import "testing"

func TestDefaultLineup(t *testing.T) {
	tm := NewTeamManager("Reds", "Blues")

	onIce := tm.OnIce()
	if len(onIce) != 12 {
		t.Fatalf("on-ice count = %d, want 12", len(onIce))
	}

	for _, team := range []Team{TeamHome, TeamAway} {
		if tm.Goalie(team) == nil {
			t.Fatalf("%s has no goalie", team)
		}
		if tm.Center(team) == nil {
			t.Fatalf("%s has no center", team)
		}
	}

	// Away anchors mirror home anchors along X.
	hg := tm.Goalie(TeamHome)
	ag := tm.Goalie(TeamAway)
	if hg.HomePos.X != -ag.HomePos.X {
		t.Fatalf("goalie anchors not mirrored: %v vs %v", hg.HomePos.X, ag.HomePos.X)
	}
	if hg.HomePos.X >= 0 {
		t.Fatalf("home goalie on the wrong side: %v", hg.HomePos.X)
	}
}

func TestStaminaDrainAndRegen(t *testing.T) {
	tm := NewTeamManager("Reds", "Blues")

	var onIce, bench *Player
	for _, p := range tm.Roster(TeamHome).Players {
		if p.Role == RoleGoalie {
			continue
		}
		if p.OnIce && onIce == nil {
			onIce = p
		}
		if !p.OnIce && bench == nil {
			bench = p
		}
	}
	bench.Stamina = 50

	tm.UpdateStamina(10)
	if onIce.Stamina >= StaminaMax {
		t.Fatal("on-ice skater did not drain")
	}
	if bench.Stamina <= 50 {
		t.Fatal("bench skater did not recover")
	}

	goalie := tm.Goalie(TeamHome)
	if goalie.Stamina != StaminaMax {
		t.Fatal("goalie stamina changed")
	}
}

func TestTiredSkaterMovesSlower(t *testing.T) {
	p := testPlayer(TeamHome, RoleWing, 1)
	fresh := p.MaxSpeed()
	p.Stamina = 0
	tired := p.MaxSpeed()

	if tired >= fresh {
		t.Fatalf("tired speed %v not below fresh speed %v", tired, fresh)
	}
	if tired != fresh*TiredSpeedScale {
		t.Fatalf("tired speed = %v, want %v", tired, fresh*TiredSpeedScale)
	}
}

func TestLineChangeSwapsTiredForRested(t *testing.T) {
	tm := NewTeamManager("Reds", "Blues")

	tired := tm.Center(TeamHome)
	tired.Stamina = StaminaTired - 5

	var fresh *Player
	for _, p := range tm.Roster(TeamHome).Players {
		if !p.OnIce && p.Role == RoleCenter {
			fresh = p
		}
	}
	fresh.Stamina = StaminaMax

	swaps := tm.LineChanges()
	if swaps != 1 {
		t.Fatalf("swaps = %d, want 1", swaps)
	}
	if tired.OnIce {
		t.Fatal("tired center still on the ice")
	}
	if !fresh.OnIce {
		t.Fatal("fresh center not on the ice")
	}
	if fresh.HomePos != tired.HomePos {
		t.Fatal("fresh center did not inherit the formation anchor")
	}
}

func TestNoLineChangeWithoutRestedReplacement(t *testing.T) {
	tm := NewTeamManager("Reds", "Blues")

	tired := tm.Center(TeamHome)
	tired.Stamina = 5
	for _, p := range tm.Roster(TeamHome).Players {
		if !p.OnIce && p.Role == RoleCenter {
			p.Stamina = StaminaRested - 10 // not rested enough
		}
	}

	if swaps := tm.LineChanges(); swaps != 0 {
		t.Fatalf("swaps = %d, want 0", swaps)
	}
	if !tired.OnIce {
		t.Fatal("tired center pulled with no replacement")
	}
}

func TestLineChangeSkipsBoxedPlayer(t *testing.T) {
	tm := NewTeamManager("Reds", "Blues")
	box := NewPenaltyBox()

	var boxed, tired, bench *Player
	for _, p := range tm.Roster(TeamHome).Players {
		if p.Role != RoleWing {
			continue
		}
		switch {
		case p.OnIce && boxed == nil:
			boxed = p
		case p.OnIce:
			tired = p
		default:
			bench = p
		}
	}

	box.Add(boxed, "slashing", PenaltyMinor)
	tired.Stamina = StaminaTired - 5
	bench.Stamina = StaminaRested - 10 // not rested enough

	// The boxed wing sits off the ice at full stamina, but serving time
	// makes them ineligible to come back on.
	if swaps := tm.LineChanges(); swaps != 0 {
		t.Fatalf("swaps = %d, want 0", swaps)
	}
	if boxed.OnIce {
		t.Fatal("boxed wing returned to the ice mid-penalty")
	}
	if len(box.Active()) != 1 {
		t.Fatalf("box records = %d, want 1", len(box.Active()))
	}

	// Release restores eligibility.
	box.Tick(MinorPenaltyDuration + 1)
	if boxed.InBox {
		t.Fatal("box flag survived release")
	}
	if !boxed.OnIce {
		t.Fatal("released wing not back on the ice")
	}
}

func TestScoresAndReset(t *testing.T) {
	tm := NewTeamManager("Reds", "Blues")

	tm.AddScore(TeamHome)
	tm.AddScore(TeamHome)
	tm.AddScore(TeamAway)

	h, a := tm.Scores()
	if h != 2 || a != 1 {
		t.Fatalf("scores = %d-%d, want 2-1", h, a)
	}

	scorer := tm.Center(TeamHome)
	scorer.Goals = 2
	scorer.Stamina = 10

	tm.ResetMatch()
	h, a = tm.Scores()
	if h != 0 || a != 0 {
		t.Fatal("scores survived reset")
	}
	if scorer.Goals != 0 || scorer.Stamina != StaminaMax {
		t.Fatal("player state survived reset")
	}
}
