package sim

import (
	"math/rand"
	"testing"
)

func faceoffFixture() (*FaceoffSystem, *Puck, []*Player) {
	f := NewFaceoffSystem(rand.New(rand.NewSource(1)))
	pk := NewPuck(Vec3{})
	players := []*Player{
		testPlayer(TeamHome, RoleCenter, 1),
		testPlayer(TeamHome, RoleWing, 2),
		testPlayer(TeamAway, RoleCenter, 3),
		testPlayer(TeamAway, RoleWing, 4),
	}
	return f, pk, players
}

// run advances the system in fixed steps until the predicate holds or the
// budget runs out.
func run(f *FaceoffSystem, pk *Puck, players []*Player, seconds float64, until func() bool) bool {
	dt := 1.0 / 60
	for t := 0.0; t < seconds; t += dt {
		f.Update(dt, pk, players)
		if until() {
			return true
		}
	}
	return until()
}

func TestFaceoffStagesPlayersFrozen(t *testing.T) {
	f, pk, players := faceoffFixture()
	spot := Vec3{X: 8, Z: -7}
	f.Begin(spot, pk, players)

	if f.Phase() != FaceoffWaiting {
		t.Fatalf("phase = %v, want waiting", f.Phase())
	}
	if pk.Pos.X != 8 || pk.Pos.Z != -7 || pk.Pos.Y != FaceoffDropHeight {
		t.Fatalf("puck not held above the dot: %+v", pk.Pos)
	}
	for _, p := range players {
		if !p.Frozen {
			t.Fatalf("player %s not frozen for the draw", p.ID)
		}
		if p.Vel.Length() != 0 {
			t.Fatalf("player %s still moving", p.ID)
		}
	}

	// Centers square up across the dot.
	home, away := players[0], players[2]
	if home.Pos.X >= spot.X || away.Pos.X <= spot.X {
		t.Fatalf("centers not opposed: home %v away %v", home.Pos.X, away.Pos.X)
	}
}

func TestFaceoffStagingHoldsWhilePaused(t *testing.T) {
	f, pk, players := faceoffFixture()
	f.Begin(Vec3{}, pk, players)

	// Zero delta time must not advance the staging.
	for i := 0; i < 120; i++ {
		f.Update(0, pk, players)
	}
	if f.Phase() != FaceoffWaiting {
		t.Fatalf("phase = %v while paused, want waiting", f.Phase())
	}

	f.Update(1.0/60, pk, players)
	if f.Phase() != FaceoffReady {
		t.Fatalf("phase = %v after resume, want ready", f.Phase())
	}
}

func TestFaceoffCountdownDigitsAndDrop(t *testing.T) {
	f, pk, players := faceoffFixture()
	var digits []int
	dropped := false
	f.OnDigit(func(d int) { digits = append(digits, d) })
	f.OnDrop(func(Vec3) { dropped = true })

	f.Begin(Vec3{}, pk, players)

	if !run(f, pk, players, 6, func() bool { return f.Phase() == FaceoffInPlay }) {
		t.Fatalf("faceoff never reached in-play, phase = %v", f.Phase())
	}
	if !dropped {
		t.Fatal("drop callback never fired")
	}
	if len(digits) != 3 || digits[0] != 3 || digits[1] != 2 || digits[2] != 1 {
		t.Fatalf("digits = %v, want [3 2 1]", digits)
	}
	for _, p := range players {
		if p.Frozen {
			t.Fatalf("player %s still frozen after the drop", p.ID)
		}
	}
	if pk.Owner != nil {
		t.Fatal("puck dropped with an owner")
	}
}

func TestFaceoffWinCreditedOnceInsideWindow(t *testing.T) {
	f, pk, players := faceoffFixture()
	var winners []*Player
	f.OnWon(func(_ Team, p *Player) { winners = append(winners, p) })

	f.Begin(Vec3{}, pk, players)
	run(f, pk, players, 6, func() bool { return f.InPlay() })

	first := players[0]
	second := players[2]
	f.RegisterTouch(first)
	f.RegisterTouch(second) // second touch is ordinary play

	if len(winners) != 1 || winners[0] != first {
		t.Fatalf("winners = %v, want only the first toucher", winners)
	}
	if first.FaceoffWins != 1 {
		t.Fatalf("FaceoffWins = %d, want 1", first.FaceoffWins)
	}
	if second.FaceoffWins != 0 {
		t.Fatal("losing toucher credited with a win")
	}
}

func TestFaceoffWinWindowExpires(t *testing.T) {
	f, pk, players := faceoffFixture()
	won := 0
	f.OnWon(func(Team, *Player) { won++ })

	f.Begin(Vec3{}, pk, players)
	run(f, pk, players, 6, func() bool { return f.InPlay() })

	// Let the win window lapse before the first touch.
	run(f, pk, players, FaceoffWinWindow+0.5, func() bool { return false })

	f.RegisterTouch(players[0])
	if won != 0 {
		t.Fatal("faceoff win credited after the window expired")
	}
	if players[0].FaceoffWins != 0 {
		t.Fatal("stat incremented after the window expired")
	}
}
