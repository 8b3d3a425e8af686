package sim

import (
	"math/rand"
	"testing"
)

func TestProfileForMapsDifficultyLinearly(t *testing.T) {
	easy := ProfileFor(0)
	if easy.ReactionTime != ReactionTimeEasy || easy.ChaseSpeed != ChaseSpeedEasy {
		t.Fatalf("easy profile wrong: %+v", easy)
	}

	hard := ProfileFor(1)
	if hard.ReactionTime != ReactionTimeHard || hard.ShootAccuracy != ShootAccuracyHard {
		t.Fatalf("hard profile wrong: %+v", hard)
	}

	mid := ProfileFor(0.5)
	if mid.ReactionTime <= hard.ReactionTime || mid.ReactionTime >= easy.ReactionTime {
		t.Fatalf("mid reaction time %v not between bounds", mid.ReactionTime)
	}

	// Out-of-range difficulty clamps.
	if got := ProfileFor(5); got != hard {
		t.Fatalf("difficulty above 1 did not clamp: %+v", got)
	}
	if got := ProfileFor(-1); got != easy {
		t.Fatalf("difficulty below 0 did not clamp: %+v", got)
	}
}

func aiFixture(p *Player) (*AIController, situation) {
	sign := p.Team.AttackSign()
	goalX := RinkLength/2 - GoalLineInset
	sit := situation{
		puck:    NewPuck(Vec3{}),
		zones:   NewZoneTracker(RinkLength, BlueLineFraction),
		onIce:   []*Player{p},
		ownGoal: Vec3{X: -sign * goalX},
		oppGoal: Vec3{X: sign * goalX},
	}
	return NewAIController(p, ProfileFor(1), rand.New(rand.NewSource(3))), sit
}

func TestGoalieAlwaysHoldsCrease(t *testing.T) {
	g := testPlayer(TeamHome, RoleGoalie, 1)
	ctrl, sit := aiFixture(g)
	sit.puck.Owner = g // even with the puck, goalies never join the rush

	ctrl.Update(1.0, sit)
	if ctrl.State() != AIGoalieHold {
		t.Fatalf("state = %v, want goalie_hold", ctrl.State())
	}
}

func TestCarrierAttacksInShootingRange(t *testing.T) {
	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: 20} // 7m from the away goal line
	ctrl, sit := aiFixture(p)
	sit.puck.Owner = p
	sit.puck.Pos = p.StickTip()

	shoot := false
	for i := 0; i < 120 && !shoot; i++ {
		s, _ := ctrl.Update(1.0/60, sit)
		shoot = s
	}
	if ctrl.State() != AIAttack {
		t.Fatalf("state = %v, want attack", ctrl.State())
	}
	if !shoot {
		t.Fatal("carrier inside shooting range never requested a shot")
	}
}

func TestCarrierOutsideRangeCarriesOrPasses(t *testing.T) {
	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: -20}
	ctrl, sit := aiFixture(p)
	sit.puck.Owner = p
	sit.puck.Pos = p.StickTip()

	ctrl.Update(1.0, sit)
	if s := ctrl.State(); s != AICarry && s != AIPass {
		t.Fatalf("state = %v, want carry or pass", s)
	}
	if ctrl.State() == AICarry && p.Steering.X <= 0 {
		t.Fatal("carrier not skating toward the attacking end")
	}
}

func TestLaneClearDetectsBlockers(t *testing.T) {
	passer := testPlayer(TeamHome, RoleCenter, 1)
	receiver := testPlayer(TeamHome, RoleWing, 2)
	receiver.Pos = Vec3{X: 10}

	blocker := testPlayer(TeamAway, RoleDefense, 3)
	blocker.Pos = Vec3{X: 5, Z: 0.5} // inside the lane width

	onIce := []*Player{passer, receiver, blocker}
	if laneClear(passer.Pos, receiver.Pos, onIce, TeamHome) {
		t.Fatal("blocked lane reported clear")
	}

	blocker.Pos = Vec3{X: 5, Z: 4} // well off the lane
	if !laneClear(passer.Pos, receiver.Pos, onIce, TeamHome) {
		t.Fatal("open lane reported blocked")
	}

	// Players behind the passer or past the receiver do not block.
	blocker.Pos = Vec3{X: -3, Z: 0}
	if !laneClear(passer.Pos, receiver.Pos, onIce, TeamHome) {
		t.Fatal("player behind the passer blocked the lane")
	}
}

func TestBestPassTargetPrefersForward(t *testing.T) {
	passer := testPlayer(TeamHome, RoleCenter, 1)
	ahead := testPlayer(TeamHome, RoleWing, 2)
	ahead.Pos = Vec3{X: 8}
	behind := testPlayer(TeamHome, RoleWing, 3)
	behind.Pos = Vec3{X: -8}

	ctrl, sit := aiFixture(passer)
	sit.onIce = []*Player{passer, ahead, behind}

	if got := ctrl.bestPassTarget(sit); got != ahead {
		t.Fatalf("bestPassTarget = %v, want the forward option", got)
	}
}

func TestDefenderHoldsWhilePuckDeep(t *testing.T) {
	d := testPlayer(TeamHome, RoleDefense, 1)
	d.Pos = Vec3{X: -12}
	carrier := testPlayer(TeamHome, RoleCenter, 2)
	carrier.Pos = Vec3{X: 20}

	ctrl, sit := aiFixture(d)
	sit.onIce = []*Player{d, carrier}
	sit.puck.Owner = carrier
	sit.puck.Pos = carrier.StickTip()

	ctrl.Update(1.0, sit)
	if s := ctrl.State(); s != AISupport && s != AIDefend {
		t.Fatalf("state = %v, want support or defend", s)
	}
}

func TestFrozenPlayerDoesNotSteer(t *testing.T) {
	p := testPlayer(TeamHome, RoleWing, 1)
	p.Frozen = true
	p.Steering = Vec3{X: 5}

	ctrl, sit := aiFixture(p)
	sit.puck.Pos = Vec3{X: 20}

	ctrl.Update(1.0, sit)
	if p.Steering.Length() != 0 {
		t.Fatalf("frozen player steering = %+v, want zero", p.Steering)
	}
}
